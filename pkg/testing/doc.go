// Package testing provides test doubles for clock face rendering.
//
// [Surface] is a rendering.Surface whose canvas serializes every drawing
// call into a [DisplayOp], so tests can assert on what a frame drew without
// a raster backend:
//
//	surface := clocktest.NewSurface()
//	r, err := clockface.New(cfg, clockface.WithMeasurer(clocktest.FixedWidthMeasurer))
//	if err != nil {
//	    t.Fatal(err)
//	}
//	if err := r.Attach(surface); err != nil {
//	    t.Fatal(err)
//	}
//	ticks := clocktest.Filter(surface.LastFrame(), "drawLine")
//
// [CaptureFrame] and [CaptureDisplayList] turn a frame into a [Snapshot]
// that can be compared against a golden file with [Snapshot.MatchesFile].
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import clocktest "github.com/go-drift/clockface/pkg/testing"
package testing
