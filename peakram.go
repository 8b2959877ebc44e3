package peakram

import (
	"fmt"
	"time"
)

const (
	DefaultSampleInterval = 5 * time.Millisecond
	DefaultSettlePasses   = 1
)

type Config struct {
	// Accountant is the memory accounting service to measure against.
	// When nil, a heap accountant built from SampleInterval and
	// SettlePasses is used.
	Accountant Accountant
	Logger     Logger
	// SampleInterval and SettlePasses configure the default heap
	// accountant; ignored when Accountant is set.
	SampleInterval time.Duration
	SettlePasses   int
}

// Logger is the minimal logging interface the library asks its users for.
// It is shaped after logrus, so a *logrus.Logger satisfies it directly,
// but much smaller: users don't have to implement all of logrus.
type Logger interface {
	Infof(_ string, _ ...interface{})
	Debugf(_ string, _ ...interface{})
	Errorf(_ string, _ ...interface{})
}

type noopLoggerImpl struct{}

func (*noopLoggerImpl) Infof(_ string, _ ...interface{})  {}
func (*noopLoggerImpl) Debugf(_ string, _ ...interface{}) {}
func (*noopLoggerImpl) Errorf(_ string, _ ...interface{}) {}

type standardLoggerImpl struct{}

func (*standardLoggerImpl) Infof(a string, b ...interface{})  { fmt.Printf("[INFO]  "+a+"\n", b...) }
func (*standardLoggerImpl) Debugf(a string, b ...interface{}) { fmt.Printf("[DEBUG] "+a+"\n", b...) }
func (*standardLoggerImpl) Errorf(a string, b ...interface{}) { fmt.Printf("[ERROR] "+a+"\n", b...) }

var noopLogger = &noopLoggerImpl{}
var StandardLogger = &standardLoggerImpl{}

// Run measures each unit of work in order and returns one row per unit, in
// the same order. On any failure the whole call fails: no partial table is
// returned, and the error names the failing unit by label and position.
//
// Runs must not overlap with each other or with other code that forces
// collections or reads the peak watermark; see the package documentation.
func Run(cfg Config, units ...UnitOfWork) (*Table, error) {
	if cfg.Logger == nil {
		cfg.Logger = noopLogger
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if cfg.SettlePasses <= 0 {
		cfg.SettlePasses = DefaultSettlePasses
	}
	acct := cfg.Accountant
	if acct == nil {
		acct = NewHeapAccountant(HeapAccountantConfig{
			SampleInterval: cfg.SampleInterval,
			SettlePasses:   cfg.SettlePasses,
			Logger:         cfg.Logger,
		})
	}
	if svc, ok := acct.(service); ok {
		if err := svc.Start(); err != nil {
			return nil, fmt.Errorf("start accountant: %w", err)
		}
		defer svc.Stop()
	}

	cfg.Logger.Infof("measuring %d units of work", len(units))
	r := &runner{acct: acct, logger: cfg.Logger}
	return r.run(units)
}

// Measure runs the units with the default configuration.
func Measure(units ...UnitOfWork) (*Table, error) {
	return Run(Config{}, units...)
}
