package world

import (
	"reflect"

	"github.com/driftwood2d/driftwood/internal/render"
	"go.uber.org/zap"
)

// Key is one entry of the fixed key set the driver reports.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyJump
	KeyInteract
	KeyFire
	KeyMenu
	KeyConsole
	KeyConfirm
	KeyCancel
	KeyBackspace
	KeyCount
)

var keyNames = [KeyCount]string{
	"left", "right", "up", "down", "jump", "interact", "fire",
	"menu", "console", "confirm", "cancel", "backspace",
}

func (k Key) String() string {
	if k < KeyCount {
		return keyNames[k]
	}
	return "?"
}

// Snapshot is the raw input state for one frame.
type Snapshot struct {
	Down [KeyCount]bool
	Prev [KeyCount]bool
	Text []rune // printable runes typed this frame
}

// Next builds the following frame's snapshot, carrying s.Down into Prev.
func (s Snapshot) Next(down [KeyCount]bool, text []rune) Snapshot {
	return Snapshot{Down: down, Prev: s.Down, Text: text}
}

func (s Snapshot) Held(k Key) bool     { return s.Down[k] }
func (s Snapshot) Pressed(k Key) bool  { return s.Down[k] && !s.Prev[k] }
func (s Snapshot) Released(k Key) bool { return !s.Down[k] && s.Prev[k] }

// Handler is an input handler frame.
type Handler interface {
	HandleInput(w *World, in Snapshot)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(w *World, in Snapshot)

func (f HandlerFunc) HandleInput(w *World, in Snapshot) { f(w, in) }

// Overlay is implemented by frames that draw on top of the world while stacked.
type Overlay interface {
	DrawOverlay(w *World, dst render.Surface)
}

// Stack is the LIFO of input handler frames. Only the top frame runs.
// Frames are values owned by whatever opened them; popping never frees one.
type Stack struct {
	frames []Handler
	log    *zap.Logger
}

func NewStack(log *zap.Logger) *Stack {
	return &Stack{frames: make([]Handler, 0, 4), log: log}
}

// Push makes h the active frame.
func (s *Stack) Push(h Handler) {
	s.frames = append(s.frames, h)
}

// Pop removes and returns the active frame, reactivating its predecessor.
// Popping an empty stack is a contract violation and returns nil.
func (s *Stack) Pop() Handler {
	if len(s.frames) == 0 {
		contract(s.log, "pop of empty input stack")
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Remove pops h only if it is the active frame. Modal frames close
// themselves through Remove so a stale close cannot pop someone else.
func (s *Stack) Remove(h Handler) bool {
	top := s.Top()
	if top == nil || !sameFrame(top, h) {
		return false
	}
	s.Pop()
	return true
}

// Top returns the active frame, or nil when the stack is empty.
func (s *Stack) Top() Handler {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Contains reports whether h is anywhere on the stack.
func (s *Stack) Contains(h Handler) bool {
	for _, f := range s.frames {
		if sameFrame(f, h) {
			return true
		}
	}
	return false
}

func (s *Stack) Len() int { return len(s.frames) }

// Dispatch hands the snapshot to the active frame only.
func (s *Stack) Dispatch(w *World, in Snapshot) {
	if top := s.Top(); top != nil {
		top.HandleInput(w, in)
	}
}

// each visits frames bottom to top.
func (s *Stack) each(fn func(Handler)) {
	frames := append([]Handler(nil), s.frames...)
	for _, f := range frames {
		fn(f)
	}
}

// sameFrame compares frames by identity; func-typed frames are never equal.
func sameFrame(a, b Handler) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
