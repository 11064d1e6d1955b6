package storefront

import (
	"testing"
	"time"
)

func TestNoteCenter_RoutesBySession(t *testing.T) {
	c := NewNoteCenter()
	ch1, cancel1 := c.Subscribe("s1")
	defer cancel1()
	ch2, cancel2 := c.Subscribe("s2")
	defer cancel2()

	c.For("s1").Success("Added to cart")

	select {
	case n := <-ch1:
		if n.Level != "success" || n.Text != "Added to cart" {
			t.Errorf("note = %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("s1 never received its note")
	}

	select {
	case n := <-ch2:
		t.Errorf("s2 received a foreign note: %+v", n)
	default:
	}
}

func TestNoteCenter_CancelStopsDelivery(t *testing.T) {
	c := NewNoteCenter()
	ch, cancel := c.Subscribe("s1")
	cancel()
	cancel() // idempotent

	c.For("s1").Failure("Could not save your cart. Please try again.")

	if _, ok := <-ch; ok {
		t.Error("cancelled subscriber should see a closed channel, no notes")
	}
}

func TestNoteCenter_SlowSubscriberDropsNotes(t *testing.T) {
	c := NewNoteCenter()
	ch, cancel := c.Subscribe("s1")
	defer cancel()

	for i := 0; i < 20; i++ {
		c.For("s1").Success("note")
	}
	// Channel buffer is 8; the rest were dropped, nothing blocked.
	if got := len(ch); got != 8 {
		t.Errorf("buffered notes = %d, want 8", got)
	}
}
