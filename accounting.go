package peakram

import "errors"

const bytesPerMiB = 1 << 20

// Snapshot is one paired reading from the accounting service, in MiB.
// Current is memory attributed to live data after a collection pass; Peak
// is the maximum attributed since the last peak reset.
type Snapshot struct {
	Current float64
	Peak    float64
}

// Accountant is the memory accounting service the runner measures against.
//
// Collect synchronously forces a full collection pass and returns a
// snapshot. When resetPeak is true, the Peak field of all subsequent
// snapshots is measured relative to this call, until the next reset.
//
// Implementations wrap process-wide collector state and are not reentrant:
// only one measurement run may use an accountant at a time.
type Accountant interface {
	Collect(resetPeak bool) (Snapshot, error)
}

// service is the optional lifecycle of accountants that keep a background
// watermark sampler. The runner starts it before the first unit and stops
// it after the last.
type service interface {
	Start() error
	Stop()
}

// ErrBadSnapshot reports an accounting response missing the expected
// readings. The collaborator is assumed incompatible; never retried.
var ErrBadSnapshot = errors.New("accounting service returned malformed snapshot")

func toMiB(b uint64) float64 {
	return float64(b) / bytesPerMiB
}
