package peakram

import (
	"fmt"
	"strings"
)

// Row is one measurement. Field names mirror the output columns:
// Function_Call, Elapsed_Time_sec, Total_RAM_Used_MiB, Peak_RAM_Used_MiB.
// Index is the 1-based input position of the measured unit.
//
// TotalRAMUsedMiB can be negative: evaluating a unit may free more memory
// than it allocated. That is a real signal and is reported unclamped.
type Row struct {
	Index           int
	FunctionCall    string
	ElapsedTimeSec  float64
	TotalRAMUsedMiB float64
	PeakRAMUsedMiB  float64
}

// Table is the ordered measurement result, one row per input unit, in
// input order.
type Table struct {
	Rows []Row
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// String renders a plain fixed-width table, a debugging convenience.
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-32s %18s %20s %20s\n",
		"#", "Function_Call", "Elapsed_Time_sec", "Total_RAM_Used_MiB", "Peak_RAM_Used_MiB")
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "%-4d %-32s %18.3f %20.1f %20.1f\n",
			r.Index, r.FunctionCall, r.ElapsedTimeSec, r.TotalRAMUsedMiB, r.PeakRAMUsedMiB)
	}
	return b.String()
}
