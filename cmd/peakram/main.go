package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/peakram/peakram"
	"github.com/peakram/peakram/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a peakram.yaml config file")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("log_level: %v", err)
	}
	log.SetLevel(level)

	acct, err := newAccountant(cfg, log)
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("accountant=%s elements=%d sample_interval=%s settle_passes=%d",
		cfg.Accountant, cfg.Elements, cfg.SampleInterval, cfg.SettlePasses)

	table, err := peakram.Run(peakram.Config{
		Accountant:     acct,
		Logger:         log,
		SampleInterval: cfg.SampleInterval,
		SettlePasses:   cfg.SettlePasses,
	}, workloads(cfg.Elements)...)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(render(table))
}

// newAccountant returns nil for the heap accountant: Run builds its own
// default from SampleInterval and SettlePasses.
func newAccountant(cfg config.Config, log *logrus.Logger) (peakram.Accountant, error) {
	if cfg.Accountant != "rss" {
		return nil, nil
	}
	return peakram.NewRSSAccountant(peakram.RSSAccountantConfig{
		SampleInterval: cfg.SampleInterval,
		SettlePasses:   cfg.SettlePasses,
		Logger:         log,
	})
}
