package bitfields

type trackerState int

const (
	trackerClean trackerState = iota
	trackerDirty
	trackerCommitted
)

// Transition is the (old, new) pair of one flag within one change cycle.
type Transition struct {
	Old bool
	New bool
}

// ChangeTracker records flag transitions between two persistence commits of a
// single record. It is driven by exactly two host notifications: a flag
// assignment (Record) and a successful save (Commit). A failed save is no
// notification at all, so pending transitions survive for the retry.
type ChangeTracker struct {
	state    trackerState
	pending  map[string]Transition
	previous map[string]Transition
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		pending:  map[string]Transition{},
		previous: map[string]Transition{},
	}
}

// Record notes that a flag was assigned. old is the flag's value as of the
// last commit; assigning a flag back to that value removes its pending
// transition.
func (this *ChangeTracker) Record(name string, old, new bool) {
	if prior, ok := this.pending[name]; ok {
		old = prior.Old
	}
	if old == new {
		delete(this.pending, name)
		if len(this.pending) == 0 {
			if len(this.previous) > 0 {
				this.state = trackerCommitted
			} else {
				this.state = trackerClean
			}
		}
		return
	}
	this.pending[name] = Transition{Old: old, New: new}
	this.state = trackerDirty
}

// Commit moves the pending transitions into the since-last-commit snapshot
// and starts a fresh cycle.
func (this *ChangeTracker) Commit() {
	this.previous = this.pending
	this.pending = map[string]Transition{}
	this.state = trackerCommitted
}

// Dirty reports whether unsaved transitions exist.
func (this *ChangeTracker) Dirty() bool {
	return this.state == trackerDirty
}

// Changed reports whether the named flag has a pending transition.
func (this *ChangeTracker) Changed(name string) bool {
	_, ok := this.pending[name]
	return ok
}

// Change returns the pending transition of the named flag, or nil if the
// flag is unchanged in this cycle.
func (this *ChangeTracker) Change(name string) *Transition {
	if t, ok := this.pending[name]; ok {
		return &t
	}
	return nil
}

// BecameTrue reports a pending false → true transition.
func (this *ChangeTracker) BecameTrue(name string) bool {
	t, ok := this.pending[name]
	return ok && !t.Old && t.New
}

// BecameFalse reports a pending true → false transition.
func (this *ChangeTracker) BecameFalse(name string) bool {
	t, ok := this.pending[name]
	return ok && t.Old && !t.New
}

// Changes returns a copy of all pending transitions.
func (this *ChangeTracker) Changes() map[string]Transition {
	return copyTransitions(this.pending)
}

// PreviousChanged reports whether the named flag changed in the last
// committed cycle.
func (this *ChangeTracker) PreviousChanged(name string) bool {
	_, ok := this.previous[name]
	return ok
}

// PreviousChange returns the named flag's transition from the last committed
// cycle, or nil.
func (this *ChangeTracker) PreviousChange(name string) *Transition {
	if t, ok := this.previous[name]; ok {
		return &t
	}
	return nil
}

// PreviousBecameTrue reports a false → true transition in the last committed
// cycle.
func (this *ChangeTracker) PreviousBecameTrue(name string) bool {
	t, ok := this.previous[name]
	return ok && !t.Old && t.New
}

// PreviousBecameFalse reports a true → false transition in the last
// committed cycle.
func (this *ChangeTracker) PreviousBecameFalse(name string) bool {
	t, ok := this.previous[name]
	return ok && t.Old && !t.New
}

// PreviousChanges returns a copy of the last committed cycle's transitions.
func (this *ChangeTracker) PreviousChanges() map[string]Transition {
	return copyTransitions(this.previous)
}

func copyTransitions(m map[string]Transition) map[string]Transition {
	out := make(map[string]Transition, len(m))
	for name, t := range m {
		out[name] = t
	}
	return out
}
