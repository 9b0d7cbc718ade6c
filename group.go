package bitfields

import (
	"fmt"

	"github.com/moisespsena-go/tracederror"
	"github.com/pkg/errors"
)

// Opt configures a Group at construction time.
type Opt interface {
	Apply(g *Group)
}

type OptFunc func(g *Group)

func (o OptFunc) Apply(g *Group) {
	o(g)
}

// OptDisableAccessors skips building the per-flag accessor registry.
func OptDisableAccessors() Opt {
	return OptFunc(func(g *Group) {
		g.withAccessors = false
	})
}

// OptDisableScopes skips building the per-flag scope registry.
func OptDisableScopes() Opt {
	return OptFunc(func(g *Group) {
		g.withScopes = false
	})
}

// OptQueryMode sets the group's default filter mode.
func OptQueryMode(mode QueryMode) Opt {
	return OptFunc(func(g *Group) {
		g.mode = mode
	})
}

// OptDialect selects a registered dialect by name, falling back to common
// with a warning when the name is unknown.
func OptDialect(name string) Opt {
	return OptFunc(func(g *Group) {
		dialect, ok := GetDialect(name)
		if !ok {
			log.Warningf("dialect %q is not registered, using common", name)
			dialect = MustGetDialect("common")
		}
		g.dialect = dialect
	})
}

// OptTable qualifies the group's column as table.column in every fragment.
func OptTable(table string) Opt {
	return OptFunc(func(g *Group) {
		g.table = table
	})
}

// OptModel qualifies the group's column with the table name derived from a
// model struct name (pluralized snake case, honoring the caller package's
// registered table prefix).
func OptModel(model string) Opt {
	return OptFunc(func(g *Group) {
		g.table = TableNameOf(model)
	})
}

// Accessor holds the get/set function objects of one flag, looked up by name
// instead of generated identifiers.
type Accessor struct {
	Get func(record *Bitfield) bool
	Set func(record *Bitfield, value bool)
}

// Scope builds a single-flag filter predicate in the group's default mode.
type Scope func(value bool) (string, error)

// Group is one configured field group: a column, its bit assignment, the
// dialect and default query mode, plus the accessor and scope registries.
// Groups are immutable after construction and shared by all records.
type Group struct {
	column        string
	table         string
	assignment    *Assignment
	dialect       Dialector
	mode          QueryMode
	withAccessors bool
	withScopes    bool
	builder       *FragmentBuilder
	accessors     map[string]Accessor
	scopes        map[string]Scope
}

// NewGroup builds a field group over the named column. spec is the flag
// declaration: an explicit map[uint64]string weight table, an ordered
// []string name list, a tag-form string, or a prebuilt *Assignment.
func NewGroup(column string, spec interface{}, opts ...Opt) (*Group, error) {
	if column == "" {
		return nil, &ConfigurationError{Msg: "empty column name"}
	}
	assignment, err := assignmentOfSpec(spec)
	if err != nil {
		return nil, err
	}
	g := &Group{
		column:        column,
		assignment:    assignment,
		dialect:       MustGetDialect("common"),
		mode:          BitOperator,
		withAccessors: true,
		withScopes:    true,
	}
	for _, opt := range opts {
		opt.Apply(g)
	}
	g.builder = NewFragmentBuilder(assignment, column).
		WithDialect(g.dialect).
		WithTable(g.table).
		WithMode(g.mode)
	g.buildRegistries()
	return g, nil
}

// MustNewGroup is NewGroup, panicking with a traced error on
// misconfiguration.
func MustNewGroup(column string, spec interface{}, opts ...Opt) *Group {
	g, err := NewGroup(column, spec, opts...)
	if err != nil {
		panic(tracederror.New(errors.Wrap(err, "group "+column)))
	}
	return g
}

func assignmentOfSpec(spec interface{}) (*Assignment, error) {
	switch s := spec.(type) {
	case *Assignment:
		return s, nil
	case map[uint64]string:
		return NewAssignment(s)
	case []string:
		return NewAssignmentOf(s...)
	case string:
		return AssignmentOfTag(s)
	}
	return nil, &ConfigurationError{Msg: fmt.Sprintf("unsupported flag spec type %T", spec)}
}

func (this *Group) buildRegistries() {
	if this.withAccessors {
		this.accessors = make(map[string]Accessor, this.assignment.Len())
	}
	if this.withScopes {
		this.scopes = make(map[string]Scope, this.assignment.Len())
	}
	for _, name := range this.assignment.Names() {
		name := name
		if this.withAccessors {
			this.accessors[name] = Accessor{
				Get: func(record *Bitfield) bool {
					value, _ := record.Get(name)
					return value
				},
				Set: func(record *Bitfield, value bool) {
					_ = record.Set(name, value)
				},
			}
		}
		if this.withScopes {
			this.scopes[name] = func(value bool) (string, error) {
				return this.builder.FilterSQL(Flag{Name: name, Value: value})
			}
		}
	}
}

// Column returns the group's column name.
func (this *Group) Column() string {
	return this.column
}

// Assignment returns the group's bit assignment.
func (this *Group) Assignment() *Assignment {
	return this.assignment
}

// Builder returns the group's fragment builder.
func (this *Group) Builder() *FragmentBuilder {
	return this.builder
}

// Accessor looks up the named flag's accessor pair.
func (this *Group) Accessor(name string) (Accessor, error) {
	if this.accessors == nil {
		return Accessor{}, &ConfigurationError{Msg: "accessors are disabled for column " + this.column}
	}
	accessor, ok := this.accessors[name]
	if !ok {
		return Accessor{}, &UnknownFlagError{Name: name}
	}
	return accessor, nil
}

// Scope looks up the named flag's scope builder.
func (this *Group) Scope(name string) (Scope, error) {
	if this.scopes == nil {
		return nil, &ConfigurationError{Msg: "scopes are disabled for column " + this.column}
	}
	scope, ok := this.scopes[name]
	if !ok {
		return nil, &UnknownFlagError{Name: name}
	}
	return scope, nil
}

// FilterSQL builds a filter in the group's default mode.
func (this *Group) FilterSQL(desired ...Flag) (string, error) {
	return this.builder.FilterSQL(desired...)
}

// SetSQL builds an update fragment for the desired flag states.
func (this *Group) SetSQL(desired ...Flag) (string, error) {
	return this.builder.SetSQL(desired...)
}

// NewRecord returns the per-record surface over a stored packed value.
func (this *Group) NewRecord(packed int64) (*Bitfield, error) {
	return NewBitfield(this, packed)
}
