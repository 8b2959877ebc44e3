package main

import (
	"fmt"

	"github.com/peakram/peakram"
)

// workloads builds the four synthetic measurement subjects, n elements
// each. Results are retained in kept so the net figures show the survivor,
// not zero; the slice accumulates on purpose so a later workload never
// frees an earlier one mid-measurement.
//
// Expected shape for n = 1e7 (int32 sequences, ~38.1 MiB each): the first
// three rows net ~38 MiB; the sum holds two full sequences at once, so its
// peak doubles; the widening doubles the element size, so its survivor
// nets ~76 MiB with a higher peak still.
func workloads(n int) []peakram.UnitOfWork {
	kept := make([]any, 0, 4)

	return []peakram.UnitOfWork{
		peakram.F(fmt.Sprintf("func() { sequence(%d) }", n), func() any {
			return peakram.Thunk(func() any {
				kept = append(kept, sequence(n))
				return nil
			})
		}),
		peakram.F(fmt.Sprintf("sequence(%d)", n), func() any {
			kept = append(kept, sequence(n))
			return nil
		}),
		peakram.F(fmt.Sprintf("sum(sequence(%d))", n), func() any {
			a := sequence(n)
			c := make([]int32, n)
			for i := range a {
				c[i] = a[i] + a[i]
			}
			kept = append(kept, c)
			return nil
		}),
		peakram.F(fmt.Sprintf("widen(sequence(%d))", n), func() any {
			a := sequence(n)
			w := make([]int64, n)
			for i := range a {
				w[i] = int64(a[i]) * 2
			}
			kept = append(kept, w)
			return nil
		}),
	}
}

func sequence(n int) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = int32(i + 1)
	}
	return s
}
