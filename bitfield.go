package bitfields

// Bitfield is the per-record surface over one packed column value: the
// current in-memory bits, the bits as of the last commit, and the change
// tracker fed by the two host notifications (flag assigned, persistence
// committed). A Bitfield belongs to exactly one record and is not shared.
type Bitfield struct {
	group   *Group
	packed  uint64
	clean   uint64
	tracker *ChangeTracker
}

// NewBitfield wraps a stored packed value. The storage contract requires a
// concrete non-negative integer; anything else is a caller error.
func NewBitfield(group *Group, packed int64) (*Bitfield, error) {
	if packed < 0 {
		return nil, &InvalidPackedValueError{Value: packed}
	}
	return &Bitfield{
		group:   group,
		packed:  uint64(packed),
		clean:   uint64(packed),
		tracker: NewChangeTracker(),
	}, nil
}

// Group returns the field group this record belongs to.
func (this *Bitfield) Group() *Group {
	return this.group
}

// Get returns the current value of the named flag.
func (this *Bitfield) Get(name string) (bool, error) {
	weight, err := this.group.assignment.WeightOf(name)
	if err != nil {
		return false, err
	}
	return this.packed&weight == weight, nil
}

// Set assigns the named flag, recording the transition against the value as
// of the last commit.
func (this *Bitfield) Set(name string, value bool) error {
	weight, err := this.group.assignment.WeightOf(name)
	if err != nil {
		return err
	}
	old := this.clean&weight == weight
	if value {
		this.packed |= weight
	} else {
		this.packed &^= weight
	}
	this.tracker.Record(name, old, value)
	return nil
}

// SetBits replaces the packed value wholesale, recording a transition for
// every flag whose bit differs from the last committed state. Bits outside
// the assignment's mask are carried over untracked.
func (this *Bitfield) SetBits(packed int64) error {
	if packed < 0 {
		return &InvalidPackedValueError{Value: packed}
	}
	bits := uint64(packed)
	for _, name := range this.group.assignment.Names() {
		weight := this.group.assignment.weights[name]
		this.tracker.Record(name, this.clean&weight == weight, bits&weight == weight)
	}
	this.packed = bits
	return nil
}

// Bits returns the current raw packed value.
func (this *Bitfield) Bits() int64 {
	return int64(this.packed)
}

// Map returns the full decoded flag state.
func (this *Bitfield) Map() FlagState {
	state, _ := Decode(this.group.assignment, int64(this.packed))
	return state
}

// Dirty reports whether unsaved flag transitions exist.
func (this *Bitfield) Dirty() bool {
	return this.tracker.Dirty()
}

// Changed reports whether the named flag has a pending transition.
func (this *Bitfield) Changed(name string) bool {
	return this.tracker.Changed(name)
}

// Change returns the named flag's pending transition, or nil.
func (this *Bitfield) Change(name string) *Transition {
	return this.tracker.Change(name)
}

// BecameTrue reports a pending false → true transition.
func (this *Bitfield) BecameTrue(name string) bool {
	return this.tracker.BecameTrue(name)
}

// BecameFalse reports a pending true → false transition.
func (this *Bitfield) BecameFalse(name string) bool {
	return this.tracker.BecameFalse(name)
}

// Changes returns all pending transitions.
func (this *Bitfield) Changes() map[string]Transition {
	return this.tracker.Changes()
}

// Tracker exposes the underlying change tracker, including the
// since-last-commit query variants.
func (this *Bitfield) Tracker() *ChangeTracker {
	return this.tracker
}

// Commit is the host's persistence-success notification: the current bits
// become the clean state and the cycle's transitions move to the
// since-last-commit snapshot. Failed saves simply never call Commit, so the
// pending transitions survive for the retry.
func (this *Bitfield) Commit() {
	this.clean = this.packed
	this.tracker.Commit()
}

// UpdateSQL renders the record's pending flag changes as a single update
// fragment. With no pending changes it yields the identity assignment.
func (this *Bitfield) UpdateSQL() (string, error) {
	changes := this.tracker.Changes()
	desired := make(FlagState, len(changes))
	for name, t := range changes {
		desired[name] = t.New
	}
	return this.group.builder.SetStateSQL(desired)
}

// MatchSQL renders a filter matching rows whose flags all equal this
// record's current state.
func (this *Bitfield) MatchSQL() (string, error) {
	return this.group.builder.FilterStateSQL(this.Map())
}
