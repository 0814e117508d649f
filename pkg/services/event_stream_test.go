package services

import "testing"

func TestEventStream_PublishToSubscribers(t *testing.T) {
	stream := NewEventStream()

	ch1 := stream.Subscribe("conv-1")
	ch2 := stream.Subscribe("conv-1")
	other := stream.Subscribe("conv-2")

	stream.Publish("conv-1", StreamEvent{Name: "delta", Data: "hi"})

	for _, ch := range []chan StreamEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Name != "delta" || ev.Data != "hi" {
				t.Errorf("event = %+v", ev)
			}
		default:
			t.Error("subscriber did not receive event")
		}
	}

	select {
	case ev := <-other:
		t.Errorf("unrelated conversation received %+v", ev)
	default:
	}
}

func TestEventStream_Unsubscribe(t *testing.T) {
	stream := NewEventStream()

	ch := stream.Subscribe("conv-1")
	stream.Unsubscribe("conv-1", ch)

	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}

	// Publishing after the last unsubscribe must not panic.
	stream.Publish("conv-1", StreamEvent{Name: "delta", Data: "late"})
}

func TestEventStream_DropsWhenBufferFull(t *testing.T) {
	stream := NewEventStream()

	ch := stream.Subscribe("conv-1")
	for i := 0; i < 100; i++ {
		stream.Publish("conv-1", StreamEvent{Name: "delta", Data: i})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", got, cap(ch))
	}
}
