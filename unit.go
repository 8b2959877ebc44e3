package peakram

import (
	"reflect"
	"runtime"
	"strings"
)

// Thunk is a deferred, zero-argument computation.
type Thunk func() any

// UnitOfWork couples one deferred computation with a human-readable label.
// The label is what appears in the Function_Call column of the result
// table; by convention it is the source text of the call being measured.
// A unit is consumed exactly once by the runner.
type UnitOfWork struct {
	Label string
	Run   Thunk
}

// F builds a unit of work with an explicit label.
func F(label string, fn Thunk) UnitOfWork {
	return UnitOfWork{Label: label, Run: fn}
}

// Func builds a unit of work labeled with the function's symbol name.
// Anonymous functions get names like "main.main.func1"; pass F with an
// explicit label when that is not descriptive enough.
func Func(fn Thunk) UnitOfWork {
	return UnitOfWork{Label: funcName(fn), Run: fn}
}

func funcName(fn Thunk) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "func()"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// unwrap reports whether an evaluated value is itself a zero-argument
// computation. Such values are invoked and re-timed by the runner, so that
// callers can pass anonymous thunks whose execution, not construction, is
// what gets measured. One level only, never recursive.
func unwrap(v any) (Thunk, bool) {
	switch fn := v.(type) {
	case Thunk:
		return fn, true
	case func() any:
		return fn, true
	}
	return nil, false
}
