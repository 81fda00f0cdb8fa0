package events_test

import (
	"testing"

	"github.com/ardanlabs/pallets/foundation/events"
)

func Test_Events(t *testing.T) {
	evts := events.New()

	id, ch := evts.Acquire()
	_, other := evts.Acquire()

	if n := evts.Count(); n != 2 {
		t.Fatalf("Should have two subscribers: got %d", n)
	}

	evts.Send("block 1")

	if msg := <-ch; msg != "block 1" {
		t.Fatalf("Should receive the event: got %q", msg)
	}
	if msg := <-other; msg != "block 1" {
		t.Fatalf("Should fan the event out: got %q", msg)
	}

	if err := evts.Release(id); err != nil {
		t.Fatalf("Should be able to release the subscriber: %s", err)
	}
	if _, open := <-ch; open {
		t.Fatalf("Should close the released channel.")
	}
	if err := evts.Release(id); err == nil {
		t.Fatalf("Should not release the same subscriber twice.")
	}

	evts.Shutdown()
	if _, open := <-other; open {
		t.Fatalf("Should close every channel on shutdown.")
	}
	if n := evts.Count(); n != 0 {
		t.Fatalf("Should have no subscribers after shutdown: got %d", n)
	}
}
