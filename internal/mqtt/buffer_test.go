package mqtt

import (
	"fmt"
	"testing"
)

func TestOutboxFIFOOrder(t *testing.T) {
	o := newOutbox(8)
	for i := 0; i < 5; i++ {
		o.add(queuedMsg{topic: Topic, payload: []byte(fmt.Sprintf("m%d", i))})
	}
	if o.size() != 5 {
		t.Fatalf("size: got %d, want 5", o.size())
	}

	msgs := o.drain()
	if len(msgs) != 5 {
		t.Fatalf("drained: got %d, want 5", len(msgs))
	}
	for i, m := range msgs {
		want := fmt.Sprintf("m%d", i)
		if string(m.payload) != want {
			t.Errorf("msg %d: got %q, want %q", i, m.payload, want)
		}
	}
	if o.size() != 0 {
		t.Errorf("size after drain: got %d, want 0", o.size())
	}
}

func TestOutboxDropsOldestOnOverflow(t *testing.T) {
	o := newOutbox(3)
	for i := 0; i < 5; i++ {
		o.add(queuedMsg{payload: []byte(fmt.Sprintf("m%d", i))})
	}
	if o.size() != 3 {
		t.Fatalf("size: got %d, want 3", o.size())
	}

	msgs := o.drain()
	want := []string{"m2", "m3", "m4"}
	for i, m := range msgs {
		if string(m.payload) != want[i] {
			t.Errorf("msg %d: got %q, want %q", i, m.payload, want[i])
		}
	}
}

func TestOutboxDrainEmpty(t *testing.T) {
	o := newOutbox(4)
	if msgs := o.drain(); msgs != nil {
		t.Errorf("drain on empty: got %v, want nil", msgs)
	}
}

func TestOutboxReusableAfterDrain(t *testing.T) {
	o := newOutbox(2)
	o.add(queuedMsg{payload: []byte("a")})
	o.add(queuedMsg{payload: []byte("b")})
	o.add(queuedMsg{payload: []byte("c")}) // drops "a"
	o.drain()

	o.add(queuedMsg{payload: []byte("d"), qos: 1, retained: true})
	msgs := o.drain()
	if len(msgs) != 1 || string(msgs[0].payload) != "d" {
		t.Fatalf("after reuse: got %v", msgs)
	}
	if msgs[0].qos != 1 || !msgs[0].retained {
		t.Errorf("qos/retained lost: got %+v", msgs[0])
	}
}
