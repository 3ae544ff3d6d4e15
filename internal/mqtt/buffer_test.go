package mqtt

import "testing"

func msg(i int) bufferedMsg {
	return bufferedMsg{topic: Topic, payload: []byte{byte(i)}}
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(4)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestRingBufferOrder(t *testing.T) {
	rb := newRingBuffer(8)
	for i := 0; i < 5; i++ {
		rb.push(msg(i))
	}
	if rb.len() != 5 {
		t.Fatalf("expected len 5, got %d", rb.len())
	}

	got := rb.drainAll()
	for i, m := range got {
		if m.payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, m.payload[0])
		}
	}
	if rb.len() != 0 || rb.drainAll() != nil {
		t.Error("expected empty buffer after drain")
	}
}

func TestRingBufferDropsOldest(t *testing.T) {
	rb := newRingBuffer(3)
	for i := 0; i < 7; i++ {
		rb.push(msg(i))
	}
	if rb.dropped != 4 {
		t.Errorf("expected 4 dropped, got %d", rb.dropped)
	}

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i, want := range []byte{4, 5, 6} {
		if got[i].payload[0] != want {
			t.Errorf("item %d: expected %d, got %d", i, want, got[i].payload[0])
		}
	}
	if rb.dropped != 0 {
		t.Error("drain should reset the dropped count")
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(2)
	rb.push(msg(1))
	rb.push(msg(2))
	rb.push(msg(3))
	rb.drainAll()

	rb.push(msg(9))
	got := rb.drainAll()
	if len(got) != 1 || got[0].payload[0] != 9 {
		t.Errorf("unexpected contents after reuse: %v", got)
	}
}

func TestRingBufferZeroCapacity(t *testing.T) {
	rb := newRingBuffer(0)
	rb.push(msg(1))
	if rb.len() != 0 || rb.drainAll() != nil {
		t.Error("zero-capacity buffer should hold nothing")
	}
}
