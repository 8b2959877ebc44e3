package peakram

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// RSSAccountantConfig configures the resident-set accounting service.
type RSSAccountantConfig struct {
	SampleInterval time.Duration
	SettlePasses   int
	Logger         Logger
}

// rssAccountant accounts for the whole process resident set instead of the
// Go heap. Useful when the measured work allocates outside the runtime's
// allocator (cgo, mmap). Collection pairs runtime.GC with FreeOSMemory so
// the resident set actually responds to freed heap.
type rssAccountant struct {
	interval time.Duration
	passes   int
	logger   Logger
	proc     *process.Process

	mu        sync.Mutex
	watermark uint64

	startOnce sync.Once
	stopOnce  sync.Once
	halt      chan struct{}
	done      chan struct{}
}

// NewRSSAccountant returns an accounting service over the operating
// system's view of the current process.
func NewRSSAccountant(cfg RSSAccountantConfig) (Accountant, error) {
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if cfg.SettlePasses <= 0 {
		cfg.SettlePasses = DefaultSettlePasses
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open current process: %w", err)
	}
	return &rssAccountant{
		interval: cfg.SampleInterval,
		passes:   cfg.SettlePasses,
		logger:   cfg.Logger,
		proc:     proc,
		halt:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (a *rssAccountant) Start() error {
	a.startOnce.Do(func() {
		a.logger.Debugf("rss accountant: sampler started, interval %s", a.interval)
		go a.sample()
	})
	return nil
}

func (a *rssAccountant) Stop() {
	a.stopOnce.Do(func() {
		close(a.halt)
		<-a.done
		a.logger.Debugf("rss accountant: sampler stopped")
	})
}

func (a *rssAccountant) sample() {
	t := time.NewTicker(a.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			a.mu.Lock()
			if rss, err := a.rss(); err == nil && rss > a.watermark {
				a.watermark = rss
			}
			a.mu.Unlock()
		case <-a.halt:
			close(a.done)
			return
		}
	}
}

func (a *rssAccountant) rss() (uint64, error) {
	info, err := a.proc.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if info == nil {
		return 0, ErrBadSnapshot
	}
	return info.RSS, nil
}

func (a *rssAccountant) Collect(resetPeak bool) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rss, err := a.rss()
	if err != nil {
		return Snapshot{}, err
	}
	if rss > a.watermark {
		a.watermark = rss
	}

	for i := 0; i < a.passes; i++ {
		runtime.GC()
	}
	// Hand freed spans back so the resident set reflects the collection.
	debug.FreeOSMemory()

	rss, err = a.rss()
	if err != nil {
		return Snapshot{}, err
	}
	if resetPeak {
		a.watermark = rss
	} else if rss > a.watermark {
		a.watermark = rss
	}

	return Snapshot{Current: toMiB(rss), Peak: toMiB(a.watermark)}, nil
}
