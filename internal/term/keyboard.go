package term

import (
	"sync/atomic"

	"github.com/driftwood2d/driftwood/internal/world"
	"github.com/gdamore/tcell/v2"
)

// holdFrames is how long a key counts as held after its last event.
// Terminals report presses and auto-repeat but never releases.
const holdFrames = 6

// Keyboard turns tcell key events into world snapshots. Events arrive on a
// channel from the polling goroutine; Poll drains it on the game loop.
type Keyboard struct {
	events chan tcell.Event
	seen   [world.KeyCount]uint64
	fresh  [world.KeyCount]bool // an event arrived for the key this frame
	frame  uint64
	prev   world.Snapshot
	quit   atomic.Bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{events: make(chan tcell.Event, 128)}
}

// Listen polls scr until it is finalized. Run it on its own goroutine.
func (k *Keyboard) Listen(scr tcell.Screen) {
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		k.Feed(ev)
	}
}

// Feed queues one event. Events beyond the buffer are dropped.
func (k *Keyboard) Feed(ev tcell.Event) {
	if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
		k.quit.Store(true)
		return
	}
	select {
	case k.events <- ev:
	default:
	}
}

// Interrupted reports whether Ctrl-C was pressed.
func (k *Keyboard) Interrupted() bool { return k.quit.Load() }

// Poll builds this frame's snapshot from the events received since the last one.
func (k *Keyboard) Poll() world.Snapshot {
	k.frame++
	k.fresh = [world.KeyCount]bool{}
	var text []rune
drain:
	for {
		select {
		case ev := <-k.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				text = k.key(key, text)
			}
		default:
			break drain
		}
	}
	var down [world.KeyCount]bool
	for i := range down {
		down[i] = k.seen[i] != 0 && k.frame-k.seen[i] < holdFrames
	}
	k.prev = k.prev.Next(down, text)
	// a new event on a held key is a new press; the hold window only covers Held
	for i, f := range k.fresh {
		if f {
			k.prev.Prev[i] = false
		}
	}
	return k.prev
}

func (k *Keyboard) key(ev *tcell.EventKey, text []rune) []rune {
	hit := func(keys ...world.Key) {
		for _, key := range keys {
			k.seen[key] = k.frame
			k.fresh[key] = true
		}
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		hit(world.KeyLeft)
	case tcell.KeyRight:
		hit(world.KeyRight)
	case tcell.KeyUp:
		hit(world.KeyUp)
	case tcell.KeyDown:
		hit(world.KeyDown)
	case tcell.KeyEnter:
		hit(world.KeyConfirm)
	case tcell.KeyEscape:
		hit(world.KeyMenu, world.KeyCancel)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		hit(world.KeyBackspace)
	case tcell.KeyTab:
		hit(world.KeyConsole)
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case '`', '~':
			hit(world.KeyConsole)
			return text
		case ' ':
			hit(world.KeyJump)
		case 'a', 'h':
			hit(world.KeyLeft)
		case 'd', 'l':
			hit(world.KeyRight)
		case 'w', 'k':
			hit(world.KeyUp)
		case 's', 'j':
			hit(world.KeyDown)
		case 'e':
			hit(world.KeyInteract)
		case 'f':
			hit(world.KeyFire)
		}
		text = append(text, r)
	}
	return text
}
