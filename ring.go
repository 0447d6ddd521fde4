package winterm

// ringCapacity is the size of the decoded-input queue. It must be a power of
// two; index arithmetic wraps with a mask.
const ringCapacity = 256

// ring is a fixed-capacity circular byte queue between the key decoder
// (producer) and ReadByte (consumer). Both run on the same goroutine, so no
// locking is involved.
type ring struct {
	buf   [ringCapacity]byte
	head  int
	count int
}

func (r *ring) len() int {
	return r.count
}

// push appends the given bytes in order. The append is all or nothing: a
// push that would exceed the remaining capacity is dropped silently, leaving
// the queue untouched. Losing a burst is preferable to splitting an escape
// sequence or a multi-byte character.
func (r *ring) push(bs ...byte) bool {
	if r.count+len(bs) > ringCapacity {
		return false
	}
	for _, b := range bs {
		r.buf[(r.head+r.count)&(ringCapacity-1)] = b
		r.count++
	}
	return true
}

// pop removes and returns the oldest byte. The second return value is false
// when the queue is empty.
func (r *ring) pop() (byte, bool) {
	if r.count == 0 {
		return 0, false
	}
	b := r.buf[r.head]
	r.head = (r.head + 1) & (ringCapacity - 1)
	r.count--
	return b, true
}
