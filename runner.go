package peakram

import (
	"fmt"
	"time"
)

// runner executes units of work strictly one at a time, in input order,
// against a single accounting service.
type runner struct {
	acct   Accountant
	logger Logger
}

func (r *runner) run(units []UnitOfWork) (*Table, error) {
	rows := make([]Row, 0, len(units))
	for i, u := range units {
		row, err := r.measure(i+1, u)
		if err != nil {
			r.logger.Errorf("measurement aborted: %v", err)
			return nil, err
		}
		rows = append(rows, row)
	}
	return &Table{Rows: rows}, nil
}

// measure runs the per-unit protocol: rebase the peak watermark and take
// the baseline snapshot, evaluate, drop the produced value, take the
// closing snapshot, report the deltas. pos is 1-based.
func (r *runner) measure(pos int, u UnitOfWork) (Row, error) {
	r.logger.Debugf("unit %d (%s): taking baseline", pos, u.Label)
	start, err := r.acct.Collect(true)
	if err != nil {
		return Row{}, fmt.Errorf("unit %d (%s): baseline snapshot: %w", pos, u.Label, err)
	}

	elapsed, err := r.evaluate(u)
	if err != nil {
		return Row{}, fmt.Errorf("unit %d (%s): %w", pos, u.Label, err)
	}

	end, err := r.acct.Collect(false)
	if err != nil {
		return Row{}, fmt.Errorf("unit %d (%s): closing snapshot: %w", pos, u.Label, err)
	}

	row := Row{
		Index:           pos,
		FunctionCall:    u.Label,
		ElapsedTimeSec:  elapsed.Seconds(),
		TotalRAMUsedMiB: end.Current - start.Current,
		PeakRAMUsedMiB:  end.Peak - start.Peak,
	}
	r.logger.Debugf("unit %d (%s): elapsed %.3fs total %.1f MiB peak %.1f MiB",
		pos, u.Label, row.ElapsedTimeSec, row.TotalRAMUsedMiB, row.PeakRAMUsedMiB)
	return row, nil
}

// evaluate runs the unit and returns the wall-clock cost of the step that
// matters: the unit itself or, when the unit evaluates to another thunk,
// that thunk's invocation (replacing, not adding to, the outer timing).
// The produced value is dropped before returning so the closing snapshot
// sees it as garbage. A panic aborts the whole batch.
func (r *runner) evaluate(u UnitOfWork) (d time.Duration, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unit of work panicked: %v", p)
		}
	}()

	begin := time.Now()
	v := u.Run()
	d = time.Since(begin)

	if inner, ok := unwrap(v); ok {
		begin = time.Now()
		v = inner()
		d = time.Since(begin)
	}
	v = nil

	return d, nil
}
