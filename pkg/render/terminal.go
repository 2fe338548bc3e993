package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows via ▀ (upper
// half block): fg is the top pixel, bg the bottom.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalSink rasterizes pipeline draw calls into a framebuffer and
// presents it as half-block cells, with a text overlay on top.
type TerminalSink struct {
	term *uv.Terminal
	fb   *Framebuffer
	cols int
	rows int
	bg   color.RGBA
	text []textItem
}

// textItem is an overlay string anchored at a terminal cell.
type textItem struct {
	col, row int
	s        string
}

// NewTerminalSink creates a sink covering the whole terminal. The
// backing framebuffer has twice as many pixel rows as terminal rows.
func NewTerminalSink(term *uv.Terminal, cols, rows int) *TerminalSink {
	return &TerminalSink{
		term: term,
		fb:   NewFramebuffer(cols, rows*2),
		cols: cols,
		rows: rows,
		bg:   RGB(15, 15, 25),
	}
}

// FramebufferSize returns the pixel dimensions the pipeline should
// target.
func (t *TerminalSink) FramebufferSize() (w, h int) {
	return t.fb.Width, t.fb.Height
}

// SetBackground sets the color ClearRect erases to.
func (t *TerminalSink) SetBackground(c color.RGBA) {
	t.bg = c
}

// Resize reallocates the framebuffer for a new terminal size.
func (t *TerminalSink) Resize(cols, rows int) {
	t.cols = cols
	t.rows = rows
	t.fb = NewFramebuffer(cols, rows*2)
	t.text = t.text[:0]
}

// ClearRect erases a pixel rectangle to the background color and drops
// overlay text anchored inside it.
func (t *TerminalSink) ClearRect(x, y, w, h int) {
	t.fb.FillRect(x, y, w, h, t.bg)

	kept := t.text[:0]
	for _, item := range t.text {
		py := item.row * 2
		inside := item.col >= x && item.col < x+w && py >= y && py < y+h
		if !inside {
			kept = append(kept, item)
		}
	}
	t.text = kept
}

// DrawText queues an overlay string; the pixel position maps to the
// enclosing terminal cell.
func (t *TerminalSink) DrawText(x, y int, s string) {
	t.text = append(t.text, textItem{col: x, row: y / 2, s: s})
}

// DrawPoints plots pixels.
func (t *TerminalSink) DrawPoints(pts []Point, c color.RGBA) {
	for _, p := range pts {
		t.fb.SetPixel(p.X, p.Y, c)
	}
}

// DrawPolygonOutline strokes the closed polygon edge loop.
func (t *TerminalSink) DrawPolygonOutline(pts []Point, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		t.fb.DrawLine(a.X, a.Y, b.X, b.Y, c)
	}
}

// DrawPolygonFilled fills the polygon, then strokes it so slivers
// thinner than a scanline still appear.
func (t *TerminalSink) DrawPolygonFilled(pts []Point, c color.RGBA) {
	t.fb.FillPolygon(pts, c)
	t.DrawPolygonOutline(pts, c)
}

// PresentFrame pushes the framebuffer and text overlay to the terminal.
func (t *TerminalSink) PresentFrame() error {
	t.fb.Draw(t.term, uv.Rect(0, 0, t.cols, t.rows))
	for _, item := range t.text {
		drawString(t.term, item.col, item.row, item.s)
	}
	return t.term.Display()
}

// SavePNG writes the last rasterized frame as a PNG screenshot.
func (t *TerminalSink) SavePNG(path string) error {
	return t.fb.SavePNG(path)
}

// drawString writes s one cell per rune with default styling.
func drawString(scr uv.Screen, x, y int, s string) {
	for i, r := range []rune(s) {
		scr.SetCell(x+i, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: ColorWhite},
		})
	}
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
