package render

import "image/color"

// Point is a pixel coordinate in screen space.
type Point struct {
	X, Y int
}

// Sink receives the 2D draw calls the pipeline emits each frame. The
// terminal sink is the production implementation; tests substitute a
// recording sink to assert on pipeline output without a terminal.
//
// Calls between ClearRect and PresentFrame accumulate into one frame;
// nothing is visible until PresentFrame.
type Sink interface {
	// ClearRect erases a pixel rectangle to the background color.
	ClearRect(x, y, w, h int)

	// DrawText places an overlay string at a pixel position.
	DrawText(x, y int, s string)

	// DrawPoints plots individual pixels.
	DrawPoints(pts []Point, c color.RGBA)

	// DrawPolygonOutline strokes the closed edge loop of a polygon.
	DrawPolygonOutline(pts []Point, c color.RGBA)

	// DrawPolygonFilled fills a polygon's interior.
	DrawPolygonFilled(pts []Point, c color.RGBA)

	// PresentFrame flushes the completed frame to the display.
	PresentFrame() error
}
