// Package mailbox provides a single-slot, latest-wins handoff between
// exactly one producer goroutine and one consumer goroutine.
package mailbox

// Mailbox holds zero or one value. Put replaces an unconsumed value instead
// of queueing behind it, and neither Put nor Take ever blocks.
//
// The slot is a channel of capacity 1, so a value is owned either by the
// sender, the channel, or the receiver, never by two of them at once.
type Mailbox[T any] struct {
	slot chan T
}

func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{slot: make(chan T, 1)}
}

// Put stores v, discarding any value that has not been taken yet.
// It reports whether an older value was discarded.
//
// Only one goroutine may call Put; with a single producer the retry loop
// runs at most twice, since only the consumer can empty the slot meanwhile.
func (m *Mailbox[T]) Put(v T) (replaced bool) {
	for {
		select {
		case m.slot <- v:
			return replaced
		default:
		}

		select {
		case <-m.slot:
			replaced = true
		default:
			// consumer emptied it first, retry the send
		}
	}
}

// Take removes and returns the pending value, if any.
func (m *Mailbox[T]) Take() (v T, ok bool) {
	select {
	case v = <-m.slot:
		return v, true
	default:
		return v, false
	}
}

// Pending reports whether a value is waiting. The answer may be stale by
// the time the caller acts on it; use it for diagnostics only.
func (m *Mailbox[T]) Pending() bool {
	return len(m.slot) > 0
}
