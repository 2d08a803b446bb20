package canvas

import (
	"slices"

	"github.com/gogpu/gg"
)

// CommandType identifies a recorded drawing operation.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save current state
	CmdRestore                      // Restore previous state
	CmdTranslate                    // Move the origin
	CmdClipRect                     // Intersect the clip with a rectangle

	// Style commands
	CmdSetColor     // Set the current color
	CmdSetLineWidth // Set the stroke width
	CmdSetDash      // Set the dash pattern

	// Drawing commands
	CmdStrokePath // Stroke the current path
	CmdFillPath   // Fill the current path
	CmdFillRect   // Fill a rectangle
	CmdDrawText   // Draw a text label
)

var commandTypeNames = [...]string{
	CmdSave:         "Save",
	CmdRestore:      "Restore",
	CmdTranslate:    "Translate",
	CmdClipRect:     "ClipRect",
	CmdSetColor:     "SetColor",
	CmdSetLineWidth: "SetLineWidth",
	CmdSetDash:      "SetDash",
	CmdStrokePath:   "StrokePath",
	CmdFillPath:     "FillPath",
	CmdFillRect:     "FillRect",
	CmdDrawText:     "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	Type() CommandType
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Subpath is a connected run of points started by MoveTo.
type Subpath struct {
	Points []Point
	Closed bool
}

// SaveCommand saves the drawing state.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the drawing state.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// TranslateCommand moves the origin.
type TranslateCommand struct {
	DX, DY float64
}

// Type implements Command.
func (TranslateCommand) Type() CommandType { return CmdTranslate }

// ClipRectCommand intersects the clip with a rectangle.
type ClipRectCommand struct {
	Rect Rect
}

// Type implements Command.
func (ClipRectCommand) Type() CommandType { return CmdClipRect }

// SetColorCommand sets the current color.
type SetColorCommand struct {
	Color gg.RGBA
}

// Type implements Command.
func (SetColorCommand) Type() CommandType { return CmdSetColor }

// SetLineWidthCommand sets the stroke width.
type SetLineWidthCommand struct {
	Width float64
}

// Type implements Command.
func (SetLineWidthCommand) Type() CommandType { return CmdSetLineWidth }

// SetDashCommand sets the dash pattern. Empty means solid.
type SetDashCommand struct {
	Lengths []float64
}

// Type implements Command.
func (SetDashCommand) Type() CommandType { return CmdSetDash }

// StrokePathCommand strokes the path built since the last paint.
type StrokePathCommand struct {
	Subpaths []Subpath
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillPathCommand fills the path built since the last paint.
type FillPathCommand struct {
	Subpaths []Subpath
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// FillRectCommand fills a rectangle.
type FillRectCommand struct {
	Rect Rect
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawTextCommand draws a label.
type DrawTextCommand struct {
	Text   string
	X, Y   float64
	AX, AY float64
	Size   float64
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// Recorder is a Canvas that captures commands instead of rasterizing.
//
// Paths are accumulated from MoveTo/LineTo/ClosePath and emitted as a
// single StrokePath or FillPath command when painted.
type Recorder struct {
	width, height float64
	commands      []Command
	path          []Subpath
}

// NewRecorder creates a recorder for a surface of the given logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) add(c Command) { r.commands = append(r.commands, c) }

// Save implements Canvas.
func (r *Recorder) Save() { r.add(SaveCommand{}) }

// Restore implements Canvas.
func (r *Recorder) Restore() { r.add(RestoreCommand{}) }

// Translate implements Canvas.
func (r *Recorder) Translate(dx, dy float64) { r.add(TranslateCommand{DX: dx, DY: dy}) }

// ClipRect implements Canvas.
func (r *Recorder) ClipRect(x, y, w, h float64) {
	r.add(ClipRectCommand{Rect: Rect{X: x, Y: y, W: w, H: h}})
}

// SetColor implements Canvas.
func (r *Recorder) SetColor(c gg.RGBA) { r.add(SetColorCommand{Color: c}) }

// SetLineWidth implements Canvas.
func (r *Recorder) SetLineWidth(w float64) { r.add(SetLineWidthCommand{Width: w}) }

// SetDash implements Canvas.
func (r *Recorder) SetDash(lengths ...float64) {
	r.add(SetDashCommand{Lengths: slices.Clone(lengths)})
}

// MoveTo implements Canvas.
func (r *Recorder) MoveTo(x, y float64) {
	r.path = append(r.path, Subpath{Points: []Point{{X: x, Y: y}}})
}

// LineTo implements Canvas. Without a current point it behaves as MoveTo.
func (r *Recorder) LineTo(x, y float64) {
	if len(r.path) == 0 {
		r.MoveTo(x, y)
		return
	}
	last := &r.path[len(r.path)-1]
	last.Points = append(last.Points, Point{X: x, Y: y})
}

// ClosePath implements Canvas.
func (r *Recorder) ClosePath() {
	if len(r.path) > 0 {
		r.path[len(r.path)-1].Closed = true
	}
}

// Stroke implements Canvas.
func (r *Recorder) Stroke() error {
	r.add(StrokePathCommand{Subpaths: r.takePath()})
	return nil
}

// Fill implements Canvas.
func (r *Recorder) Fill() error {
	r.add(FillPathCommand{Subpaths: r.takePath()})
	return nil
}

func (r *Recorder) takePath() []Subpath {
	p := r.path
	r.path = nil
	return p
}

// FillRect implements Canvas.
func (r *Recorder) FillRect(x, y, w, h float64) error {
	r.add(FillRectCommand{Rect: Rect{X: x, Y: y, W: w, H: h}})
	return nil
}

// DrawText implements Canvas.
func (r *Recorder) DrawText(s string, x, y, ax, ay, size float64) {
	r.add(DrawTextCommand{Text: s, X: x, Y: y, AX: ax, AY: ay, Size: size})
}

// Finish returns the recording. The recorder is reset.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{Width: r.width, Height: r.height, Commands: r.commands}
	r.commands = nil
	r.path = nil
	return rec
}

// Recording is an immutable list of drawing commands.
type Recording struct {
	Width, Height float64
	Commands      []Command
}

// Count returns the number of commands of type t.
func (rec *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range rec.Commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Texts returns the strings of all DrawText commands in order.
func (rec *Recording) Texts() []string {
	var out []string
	for _, c := range rec.Commands {
		if t, ok := c.(DrawTextCommand); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

// Strokes returns all StrokePath commands in order.
func (rec *Recording) Strokes() []StrokePathCommand {
	var out []StrokePathCommand
	for _, c := range rec.Commands {
		if s, ok := c.(StrokePathCommand); ok {
			out = append(out, s)
		}
	}
	return out
}

// Playback replays the recording onto c. It stops at the first paint error.
func (rec *Recording) Playback(c Canvas) error {
	for _, cmd := range rec.Commands {
		if err := play(c, cmd); err != nil {
			return err
		}
	}
	return nil
}

func play(c Canvas, cmd Command) error {
	switch v := cmd.(type) {
	case SaveCommand:
		c.Save()
	case RestoreCommand:
		c.Restore()
	case TranslateCommand:
		c.Translate(v.DX, v.DY)
	case ClipRectCommand:
		c.ClipRect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H)
	case SetColorCommand:
		c.SetColor(v.Color)
	case SetLineWidthCommand:
		c.SetLineWidth(v.Width)
	case SetDashCommand:
		c.SetDash(v.Lengths...)
	case StrokePathCommand:
		tracePath(c, v.Subpaths)
		return c.Stroke()
	case FillPathCommand:
		tracePath(c, v.Subpaths)
		return c.Fill()
	case FillRectCommand:
		return c.FillRect(v.Rect.X, v.Rect.Y, v.Rect.W, v.Rect.H)
	case DrawTextCommand:
		c.DrawText(v.Text, v.X, v.Y, v.AX, v.AY, v.Size)
	}
	return nil
}

func tracePath(c Canvas, subpaths []Subpath) {
	for _, sp := range subpaths {
		for i, p := range sp.Points {
			if i == 0 {
				c.MoveTo(p.X, p.Y)
			} else {
				c.LineTo(p.X, p.Y)
			}
		}
		if sp.Closed {
			c.ClosePath()
		}
	}
}
