package handler

import (
	"strings"

	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

// Interpreter executes one console line and returns its printed output.
type Interpreter interface {
	Exec(line string) (string, error)
}

const (
	consoleScrollback = 64
	consoleRecall     = 32
	consolePrompt     = "> "
)

// Console is a line editor over an Interpreter. Lines starting with "." are
// console commands handled here; everything else goes to the interpreter.
type Console struct {
	interp  Interpreter
	log     *zap.Logger
	line    []rune
	output  []string
	entered []string
	recall  int
}

func NewConsole(interp Interpreter, deps *Deps) *Console {
	return &Console{interp: interp, log: deps.log()}
}

// Open pushes the console unless it is already stacked.
func (c *Console) Open(w *world.World) {
	if w.Input.Contains(c) {
		return
	}
	c.recall = len(c.entered)
	w.Input.Push(c)
}

// Output returns the scrollback, oldest first.
func (c *Console) Output() []string { return c.output }

// Line returns the text being edited.
func (c *Console) Line() string { return string(c.line) }

func (c *Console) HandleInput(w *world.World, in world.Snapshot) {
	switch {
	case in.Pressed(world.KeyConsole), in.Pressed(world.KeyCancel):
		closeFrame(w, c)
		return
	case in.Pressed(world.KeyConfirm):
		c.Submit(w)
		return
	case in.Pressed(world.KeyBackspace):
		if len(c.line) > 0 {
			c.line = c.line[:len(c.line)-1]
		}
	// letters like w and k also map to directions; only bare arrows recall
	case in.Pressed(world.KeyUp) && len(in.Text) == 0:
		if c.recall > 0 {
			c.recall--
			c.line = []rune(c.entered[c.recall])
		}
	case in.Pressed(world.KeyDown) && len(in.Text) == 0:
		if c.recall < len(c.entered)-1 {
			c.recall++
			c.line = []rune(c.entered[c.recall])
		} else {
			c.recall = len(c.entered)
			c.line = c.line[:0]
		}
	}
	for _, r := range in.Text {
		if r >= ' ' && r != 0x7f {
			c.line = append(c.line, r)
		}
	}
}

// Submit runs the edited line and clears it.
func (c *Console) Submit(w *world.World) {
	line := strings.TrimSpace(string(c.line))
	c.line = c.line[:0]
	if line == "" {
		return
	}
	c.remember(line)
	c.print(consolePrompt + line)

	if strings.HasPrefix(line, ".") {
		c.command(w, strings.Fields(line[1:]))
		return
	}
	if c.interp == nil {
		c.print("error: no interpreter")
		return
	}
	out, err := c.interp.Exec(line)
	if out != "" {
		c.print(out)
	}
	if err != nil {
		c.log.Debug("console error", zap.String("line", line), zap.Error(err))
		c.print("error: " + err.Error())
	}
}

func (c *Console) command(w *world.World, args []string) {
	if len(args) == 0 {
		return
	}
	switch strings.ToLower(args[0]) {
	case "help":
		c.print(".help .clear .history .close  (anything else runs as lua)")
	case "clear":
		c.output = c.output[:0]
	case "history":
		for _, l := range c.entered {
			c.print("  " + l)
		}
	case "close":
		closeFrame(w, c)
	default:
		c.print("unknown command ." + args[0])
	}
}

func (c *Console) print(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		c.output = append(c.output, l)
	}
	if over := len(c.output) - consoleScrollback; over > 0 {
		c.output = append(c.output[:0], c.output[over:]...)
	}
}

func (c *Console) remember(line string) {
	if n := len(c.entered); n == 0 || c.entered[n-1] != line {
		c.entered = append(c.entered, line)
	}
	if over := len(c.entered) - consoleRecall; over > 0 {
		c.entered = append(c.entered[:0], c.entered[over:]...)
	}
	c.recall = len(c.entered)
}

func (c *Console) DrawOverlay(w *world.World, dst render.Surface) {
	font := w.Scenes.Font()
	vw, vh := viewSize(w)
	_, ch := cellSize(font)
	box := render.Rect{X: 0, Y: 0, W: vw, H: vh / 2}
	dst.FillRect(box, render.Shadow)

	rows := int(box.H/ch) - 1
	if rows < 0 {
		rows = 0
	}
	start := len(c.output) - rows
	if start < 0 {
		start = 0
	}
	y := box.Y
	for _, l := range c.output[start:] {
		render.DrawText(dst, font, l, 2, y, render.White)
		y += ch
	}
	render.DrawText(dst, font, consolePrompt+string(c.line)+"_", 2, box.H-ch, render.White)
}
