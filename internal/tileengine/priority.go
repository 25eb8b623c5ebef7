package tileengine

import "math"

// candidate is one proposed merge of tiles a and b (master indices at the
// time the candidate was created), with the weighted cost
// of performing that merge and the flip orientation that achieves it.
type candidate struct {
	a, b   int
	weight float64
	flip   int
}

// priorityBuffer is a small bounded min-priority structure: it keeps at
// most capacity candidates, sorted ascending by weight, and silently
// drops anything that wouldn't make the cut. A flat sorted slice rather
// than a heap, since the expected occupancy is tiny.
type priorityBuffer struct {
	items []candidate
	cap   int
}

func newPriorityBuffer(capacity int) *priorityBuffer {
	return &priorityBuffer{items: make([]candidate, 0, capacity), cap: capacity}
}

func (pb *priorityBuffer) Len() int { return len(pb.items) }

func (pb *priorityBuffer) Full() bool { return len(pb.items) >= pb.cap }

// Ceiling returns the admission bound: +Inf while below capacity, otherwise
// the last item's weight, which a new candidate must be strictly below.
func (pb *priorityBuffer) Ceiling() float64 {
	if len(pb.items) < pb.cap {
		return math.Inf(1)
	}
	return pb.items[len(pb.items)-1].weight
}

// Insert adds c in sorted position, evicting the worst entry if the
// buffer is already at capacity and c is strictly below the current
// ceiling. Returns whether c was kept.
func (pb *priorityBuffer) Insert(c candidate) bool {
	if len(pb.items) >= pb.cap && c.weight >= pb.items[len(pb.items)-1].weight {
		return false
	}
	pos := len(pb.items)
	for pos > 0 && pb.items[pos-1].weight > c.weight {
		pos--
	}
	pb.items = append(pb.items, candidate{})
	copy(pb.items[pos+1:], pb.items[pos:])
	pb.items[pos] = c
	if len(pb.items) > pb.cap {
		pb.items = pb.items[:pb.cap]
	}
	return true
}

// PopMin removes and returns the lowest-weight candidate.
func (pb *priorityBuffer) PopMin() (candidate, bool) {
	if len(pb.items) == 0 {
		return candidate{}, false
	}
	c := pb.items[0]
	pb.items = pb.items[1:]
	return c, true
}

// Invalidate drops any queued candidate referencing tile index id (used
// once id has merged into another tile and is no longer a master).
func (pb *priorityBuffer) Invalidate(id int) {
	out := pb.items[:0]
	for _, c := range pb.items {
		if c.a == id || c.b == id {
			continue
		}
		out = append(out, c)
	}
	pb.items = out
}
