package rendering

// Canvas records or renders drawing commands.
//
// Coordinates are in pixels with the Y axis pointing down. Rotations are in
// radians and clockwise for positive values, so rotating by 0 keeps a line
// drawn toward negative Y pointing at 12 o'clock.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Rotate rotates the coordinate system by radians.
	Rotate(radians float64)

	// Clear fills the entire canvas with the given color, ignoring the
	// current transform.
	Clear(color Color)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawText draws a measured text layout. The position is the left edge of
	// the text at the baseline selected by the layout's style.
	DrawText(layout *TextLayout, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}

// Surface is a resizable drawing target that hands out a Canvas.
//
// Resize discards the pixel contents and resets the canvas transform to the
// identity, so callers must re-establish their origin afterwards.
type Surface interface {
	Resize(size Size)
	Canvas() Canvas
}
