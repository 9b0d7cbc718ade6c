package bitfields

import (
	"sort"

	"github.com/moisespsena-go/tracederror"
	"github.com/pkg/errors"
)

// MaxWeight is the largest weight a flag may carry so that the packed value of
// a group still fits a signed 64-bit storage column.
const MaxWeight uint64 = 1 << 62

// Assignment is the immutable mapping between flag names and their
// power-of-two weights within one packed column. It is built once per field
// group and safely shared by any number of goroutines.
type Assignment struct {
	weights map[string]uint64
	names   map[uint64]string
	ordered []string
	mask    uint64
}

// NewAssignment builds an assignment from an explicit weight → name table.
func NewAssignment(spec map[uint64]string) (*Assignment, error) {
	a := &Assignment{
		weights: make(map[string]uint64, len(spec)),
		names:   make(map[uint64]string, len(spec)),
	}
	for weight, name := range spec {
		if err := a.add(name, weight); err != nil {
			return nil, err
		}
	}
	a.order()
	return a, nil
}

// NewAssignmentOf builds an assignment from an ordered list of names,
// auto-numbered with ascending powers of two starting at 1.
func NewAssignmentOf(names ...string) (*Assignment, error) {
	if len(names) > 63 {
		return nil, &ConfigurationError{Msg: "too many flags for a signed 64-bit column"}
	}
	a := &Assignment{
		weights: make(map[string]uint64, len(names)),
		names:   make(map[uint64]string, len(names)),
	}
	for i, name := range names {
		if err := a.add(name, 1<<uint(i)); err != nil {
			return nil, err
		}
	}
	a.order()
	return a, nil
}

// MustNewAssignment is NewAssignment, panicking with a traced error on
// misconfiguration.
func MustNewAssignment(spec map[uint64]string) *Assignment {
	a, err := NewAssignment(spec)
	if err != nil {
		panic(tracederror.New(errors.Wrap(err, "assignment")))
	}
	return a
}

// MustNewAssignmentOf is NewAssignmentOf, panicking with a traced error on
// misconfiguration.
func MustNewAssignmentOf(names ...string) *Assignment {
	a, err := NewAssignmentOf(names...)
	if err != nil {
		panic(tracederror.New(errors.Wrap(err, "assignment")))
	}
	return a
}

func (this *Assignment) add(name string, weight uint64) error {
	if name == "" {
		return &ConfigurationError{Weight: weight, Msg: "empty flag name"}
	}
	if weight == 0 {
		return &ConfigurationError{Name: name, Msg: "zero weight"}
	}
	if weight&(weight-1) != 0 {
		return &ConfigurationError{Name: name, Weight: weight, Msg: "weight is not a power of two"}
	}
	if weight > MaxWeight {
		return &ConfigurationError{Name: name, Weight: weight, Msg: "weight exceeds the storage column width"}
	}
	if other, ok := this.names[weight]; ok {
		return &ConfigurationError{Name: name, Weight: weight, Msg: "weight already assigned to flag " + other}
	}
	if _, ok := this.weights[name]; ok {
		return &ConfigurationError{Name: name, Weight: weight, Msg: "duplicate flag name"}
	}
	this.weights[name] = weight
	this.names[weight] = name
	this.mask |= weight
	return nil
}

func (this *Assignment) order() {
	this.ordered = make([]string, 0, len(this.weights))
	for name := range this.weights {
		this.ordered = append(this.ordered, name)
	}
	sort.Slice(this.ordered, func(i, j int) bool {
		return this.weights[this.ordered[i]] < this.weights[this.ordered[j]]
	})
}

// WeightOf returns the weight of the named flag.
func (this *Assignment) WeightOf(name string) (uint64, error) {
	weight, ok := this.weights[name]
	if !ok {
		return 0, &UnknownFlagError{Name: name}
	}
	return weight, nil
}

// NameOf returns the flag name carrying the given weight.
func (this *Assignment) NameOf(weight uint64) (string, error) {
	name, ok := this.names[weight]
	if !ok {
		return "", &UnknownFlagError{Weight: weight}
	}
	return name, nil
}

// Has reports whether the named flag is part of the assignment.
func (this *Assignment) Has(name string) bool {
	_, ok := this.weights[name]
	return ok
}

// Names returns the flag names in ascending bit order. The ordering is what
// keeps generated SQL stable across calls; callers must not mutate the slice.
func (this *Assignment) Names() []string {
	return this.ordered
}

// Mask returns the union of all weights.
func (this *Assignment) Mask() uint64 {
	return this.mask
}

// Len returns the number of flags.
func (this *Assignment) Len() int {
	return len(this.ordered)
}

// FlagsOf converts a flag state into an ordered flag list, known names first
// in ascending bit order so downstream fragments are deterministic.
func (this *Assignment) FlagsOf(state FlagState) []Flag {
	flags := make([]Flag, 0, len(state))
	for _, name := range this.ordered {
		if value, ok := state[name]; ok {
			flags = append(flags, Flag{Name: name, Value: value})
		}
	}
	if len(flags) < len(state) {
		var unknown []string
		for name := range state {
			if !this.Has(name) {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		for _, name := range unknown {
			flags = append(flags, Flag{Name: name, Value: state[name]})
		}
	}
	return flags
}
