package ruler

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/welllog/canvas"
)

// Style controls how the depth scale is drawn.
type Style struct {
	Background gg.RGBA
	Line       gg.RGBA
	Text       gg.RGBA
	MajorLen   float64
	MinorLen   float64
	FontSize   float64
	// Unit is drawn at the top of the column when not empty.
	Unit string
}

// DefaultStyle returns the standard ruler look.
func DefaultStyle() Style {
	return Style{
		Background: gg.Hex("#f7f7f7"),
		Line:       gg.Hex("#444444"),
		Text:       gg.Hex("#222222"),
		MajorLen:   12,
		MinorLen:   5,
		FontSize:   10,
	}
}

// Render clears the ruler column of size width x height and draws ticks
// against its right edge. Major ticks carry their label to the left.
func Render(c canvas.Canvas, ticks []Tick, st Style, width, height float64) error {
	c.Save()
	defer c.Restore()
	c.ClipRect(0, 0, width, height)

	c.SetColor(st.Background)
	if err := c.FillRect(0, 0, width, height); err != nil {
		return err
	}

	c.SetColor(st.Line)
	c.SetLineWidth(1)
	c.SetDash()
	c.MoveTo(width-0.5, 0)
	c.LineTo(width-0.5, height)
	if err := c.Stroke(); err != nil {
		return err
	}

	if err := strokeTicks(c, ticks, false, width, st.MinorLen); err != nil {
		return err
	}
	if err := strokeTicks(c, ticks, true, width, st.MajorLen); err != nil {
		return err
	}

	c.SetColor(st.Text)
	for _, tk := range ticks {
		if tk.Major && tk.Label != "" {
			c.DrawText(tk.Label, width-st.MajorLen-3, tk.Y, 1, 0.5, st.FontSize)
		}
	}
	if st.Unit != "" {
		c.DrawText(st.Unit, 3, 3, 0, 1, st.FontSize)
	}
	return nil
}

// strokeTicks batches all ticks of one kind into a single path.
func strokeTicks(c canvas.Canvas, ticks []Tick, major bool, width, length float64) error {
	n := 0
	for _, tk := range ticks {
		if tk.Major != major {
			continue
		}
		c.MoveTo(width-length, tk.Y)
		c.LineTo(width, tk.Y)
		n++
	}
	if n == 0 {
		return nil
	}
	return c.Stroke()
}
