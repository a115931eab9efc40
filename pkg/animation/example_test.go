package animation_test

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
)

// This example shows the second hand of a railway station clock: it sweeps
// round in 58 seconds and rests at the top for 2.
func ExamplePauseAtEnd() {
	pause, err := animation.PauseAtEnd(60, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	seconds := animation.Compose(pause, animation.Sweep)
	fmt.Printf("%.2f %.2f %.2f\n", seconds(29), seconds(58), seconds(59.5))
	// Output: 30.00 60.00 60.00
}

// This example shows a hand that eases between ticks.
func ExampleStepped() {
	motion := animation.Stepped(animation.EaseInOut)
	fmt.Printf("%.1f %.1f\n", motion(12), motion(13))
	// Output: 12.0 13.0
}

// This example shows how to drive frames until a context ends.
func ExampleTicker() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ticker := animation.NewTicker(func(now time.Time) {
		_ = now // draw a frame
	}).WithInterval(10 * time.Millisecond)

	if err := ticker.Run(ctx); err != nil {
		fmt.Println(err)
	}
}
