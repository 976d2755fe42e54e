package event

import "testing"

func TestEventsDeliveredNextFrame(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e SceneEntered) { got = append(got, e.Scene) })

	Emit(b, SceneEntered{Scene: "meadow"})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatal("event delivered in the frame it was emitted")
	}
	if b.Queued() != 1 {
		t.Fatalf("queued = %d, want 1", b.Queued())
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != "meadow" {
		t.Fatalf("got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatal("event delivered twice")
	}
}

func TestEmitNilBus(t *testing.T) {
	Emit[PlayerHurt](nil, PlayerHurt{Life: 1})
}
