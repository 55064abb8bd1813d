package questions

// Tracker is the set of question ids with an outstanding mutation. A row is
// in the set from Begin until its single matching End.
type Tracker struct {
	inflight map[int]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[int]struct{})}
}

// Begin marks id busy. It returns false and does nothing if id is already busy.
func (t *Tracker) Begin(id int) bool {
	if _, ok := t.inflight[id]; ok {
		return false
	}
	t.inflight[id] = struct{}{}
	return true
}

// End clears id.
func (t *Tracker) End(id int) {
	delete(t.inflight, id)
}

// Busy reports whether id has an outstanding mutation.
func (t *Tracker) Busy(id int) bool {
	_, ok := t.inflight[id]
	return ok
}

// Len returns the number of busy rows.
func (t *Tracker) Len() int {
	return len(t.inflight)
}
