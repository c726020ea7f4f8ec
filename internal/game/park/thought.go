package park

// ThoughtType is the subject of a guest thought. The zero value is
// ThoughtNone, which terminates a ThoughtQueue.
type ThoughtType uint8

const (
	ThoughtNone ThoughtType = iota
	ThoughtCantAffordRide
	ThoughtSpentMoney
	ThoughtSick
	ThoughtRideWasGreat
	ThoughtWantToGoOn
	ThoughtQueueTooLong
	ThoughtNotSafe
	ThoughtGoodValue
	ThoughtHungry
)

const (
	// MaxThoughts is the capacity of a ThoughtQueue.
	MaxThoughts = 5
	// ThoughtItemNone marks a thought that refers to nothing.
	ThoughtItemNone uint16 = 0xFFFF
)

// Thought is one remembered thought and the ride or item it refers to.
type Thought struct {
	Type ThoughtType
	Item uint16
}

var noneThought = Thought{Type: ThoughtNone, Item: ThoughtItemNone}

// ThoughtQueue is a bounded, newest-first sequence of thoughts. Entries after
// the first ThoughtNone are not valid and are never inspected.
type ThoughtQueue struct {
	entries [MaxThoughts]Thought
}

// Len returns the number of valid thoughts.
func (q *ThoughtQueue) Len() int {
	for i, t := range q.entries {
		if t.Type == ThoughtNone {
			return i
		}
	}
	return MaxThoughts
}

// At returns the thought at position i.
//
// Precondition: 0 <= i < MaxThoughts.
func (q *ThoughtQueue) At(i int) Thought {
	return q.entries[i]
}

// Entries returns a copy of the full backing array, including invalid tail
// entries.
func (q *ThoughtQueue) Entries() [MaxThoughts]Thought {
	return q.entries
}

// Valid returns the thoughts before the first ThoughtNone.
func (q *ThoughtQueue) Valid() []Thought {
	n := q.Len()
	out := make([]Thought, n)
	copy(out, q.entries[:n])
	return out
}

// Add inserts t as the newest thought, discarding the oldest when full.
//
// Precondition: t.Type != ThoughtNone.
func (q *ThoughtQueue) Add(t Thought) {
	copy(q.entries[1:], q.entries[:MaxThoughts-1])
	q.entries[0] = t
}

// RemoveWhere removes every valid thought matching pred, shifting later
// thoughts left and padding the tail with ThoughtNone.
//
// Postcondition: No valid thought matches pred; there are no gaps before
// the first ThoughtNone. Returns the number removed.
func (q *ThoughtQueue) RemoveWhere(pred func(Thought) bool) int {
	removed := 0
	for i := 0; i < MaxThoughts; i++ {
		if q.entries[i].Type == ThoughtNone {
			break
		}
		if !pred(q.entries[i]) {
			continue
		}
		copy(q.entries[i:], q.entries[i+1:])
		q.entries[MaxThoughts-1] = noneThought
		removed++
		i--
	}
	return removed
}
