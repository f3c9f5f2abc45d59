package netcdf3

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestConcurrentReadsAreSafe exercises §5's concurrency contract: a File
// opened for reading may be read from multiple goroutines concurrently, as
// long as the underlying ReaderAt is itself safe for concurrent ReadAt
// calls (memFile is, since each call computes its own slice bounds without
// mutating shared state). Grounded on inmaputil's use of
// golang.org/x/sync/errgroup to fan out and join concurrent work.
func TestConcurrentReadsAreSafe(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 100)
	ds.AddVar("a", []string{"x"}, Float64)
	ds.AddVar("b", []string{"x"}, Float64)
	ds.AddVar("c", []string{"x"}, Float64)

	mk := func(seed float64) []float64 {
		v := make([]float64, 100)
		for i := range v {
			v[i] = seed + float64(i)
		}
		return v
	}
	f := &memFile{}
	data := &WriteData{Vars: map[string]interface{}{
		"a": mk(0), "b": mk(1000), "c": mk(2000),
	}}
	if err := Write(f, ds, data, VersionAuto); err != nil {
		t.Fatal(err)
	}

	rf, err := Open(f)
	if err != nil {
		t.Fatal(err)
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, name := range []string{"a", "b", "c"} {
		name := name
		g.Go(func() error {
			for i := 0; i < 50; i++ {
				if _, err := rf.ReadVar(name); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
