package bitfields

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// QueryMode selects how a filter fragment combines the desired flag states.
type QueryMode int

const (
	// BitOperator folds all desired flags into a single masked comparison,
	// (column & M) = T. One predicate regardless of flag count.
	BitOperator QueryMode = iota
	// BitOperatorOr joins one masked comparison per flag with OR: the row
	// matches any of the desired flag states.
	BitOperatorOr
	// InList enumerates every packed value consistent with the desired
	// states and emits column IN (…). Scales combinatorially with flag
	// count; only useful for planners that prefer membership predicates.
	InList
)

const inListWarnFlags = 16

func (m QueryMode) String() string {
	switch m {
	case BitOperator:
		return "bit_operator"
	case BitOperatorOr:
		return "bit_operator_or"
	case InList:
		return "in_list"
	}
	return fmt.Sprintf("QueryMode(%d)", int(m))
}

// ParseQueryMode parses a configuration mode name.
func ParseQueryMode(s string) (QueryMode, error) {
	switch s {
	case "bit_operator":
		return BitOperator, nil
	case "bit_operator_or":
		return BitOperatorOr, nil
	case "in_list":
		return InList, nil
	}
	return 0, &ConfigurationError{Msg: fmt.Sprintf("unknown query mode %q", s)}
}

// Flag is one desired flag state in a filter or update call.
type Flag struct {
	Name  string
	Value bool
}

// FragmentBuilder synthesizes WHERE predicates and UPDATE right-hand sides
// over one packed column. It holds no record state and may be shared.
type FragmentBuilder struct {
	assignment *Assignment
	column     string
	table      string
	dialect    Dialector
	mode       QueryMode
}

// NewFragmentBuilder returns a builder over the common dialect in
// BitOperator mode. The column is emitted verbatim unless a table is set.
func NewFragmentBuilder(assignment *Assignment, column string) *FragmentBuilder {
	return &FragmentBuilder{
		assignment: assignment,
		column:     column,
		dialect:    MustGetDialect("common"),
		mode:       BitOperator,
	}
}

// WithDialect returns a copy of the builder using the given dialect.
func (this *FragmentBuilder) WithDialect(dialect Dialector) *FragmentBuilder {
	clone := *this
	clone.dialect = dialect
	return &clone
}

// WithTable returns a copy of the builder qualifying the column as
// table.column, both quoted with the dialect's quote char.
func (this *FragmentBuilder) WithTable(table string) *FragmentBuilder {
	clone := *this
	clone.table = table
	return &clone
}

// WithMode returns a copy of the builder with a different default query mode.
func (this *FragmentBuilder) WithMode(mode QueryMode) *FragmentBuilder {
	clone := *this
	clone.mode = mode
	return &clone
}

// Assignment returns the builder's flag assignment.
func (this *FragmentBuilder) Assignment() *Assignment {
	return this.assignment
}

// ColumnSQL returns the column reference as it appears in fragments.
func (this *FragmentBuilder) ColumnSQL() string {
	return QualifyColumn(this.dialect, this.table, this.column)
}

// masks folds the desired flags into the mentioned-bits mask, the
// requested-true bits and the requested-false bits. A flag requested both
// true and false aborts before any fragment text is produced.
func (this *FragmentBuilder) masks(desired []Flag) (mask, truth, clear uint64, err error) {
	seen := map[string]bool{}
	for _, flag := range desired {
		var weight uint64
		if weight, err = this.assignment.WeightOf(flag.Name); err != nil {
			return 0, 0, 0, err
		}
		if prior, ok := seen[flag.Name]; ok && prior != flag.Value {
			return 0, 0, 0, &ConflictingFlagError{Name: flag.Name}
		}
		seen[flag.Name] = flag.Value
		mask |= weight
		if flag.Value {
			truth |= weight
		} else {
			clear |= weight
		}
	}
	return
}

// FilterSQL builds a WHERE predicate for the desired flag states using the
// builder's default query mode. An empty desired list yields the identity
// predicate, which matches every row; callers should special-case it rather
// than issue a meaningless statement.
func (this *FragmentBuilder) FilterSQL(desired ...Flag) (string, error) {
	return this.FilterSQLMode(this.mode, desired...)
}

// FilterSQLMode builds a WHERE predicate using an explicit query mode.
func (this *FragmentBuilder) FilterSQLMode(mode QueryMode, desired ...Flag) (string, error) {
	mask, truth, _, err := this.masks(desired)
	if err != nil {
		return "", err
	}
	column := this.ColumnSQL()
	if mask == 0 {
		return fmt.Sprintf("(%s & 0) = 0", column), nil
	}
	switch mode {
	case BitOperator:
		return fmt.Sprintf("(%s & %d) = %d", column, mask, truth), nil
	case BitOperatorOr:
		return this.orFilterSQL(column, desired), nil
	case InList:
		return this.inListSQL(column, mask, truth), nil
	}
	return "", &ConfigurationError{Msg: fmt.Sprintf("unknown query mode %d", int(mode))}
}

func (this *FragmentBuilder) orFilterSQL(column string, desired []Flag) string {
	values := map[string]bool{}
	for _, flag := range desired {
		values[flag.Name] = flag.Value
	}
	var predicates []string
	for _, name := range this.assignment.Names() {
		value, ok := values[name]
		if !ok {
			continue
		}
		weight := this.assignment.weights[name]
		if value {
			predicates = append(predicates, fmt.Sprintf("(%s & %d) = %d", column, weight, weight))
		} else {
			predicates = append(predicates, fmt.Sprintf("(%s & %d) = 0", column, weight))
		}
	}
	return strings.Join(predicates, " OR ")
}

// inListSQL enumerates the packed values over the assignment's bits that are
// consistent with the desired constraints, ascending.
func (this *FragmentBuilder) inListSQL(column string, mask, truth uint64) string {
	names := this.assignment.Names()
	if len(names) > inListWarnFlags {
		log.Warningf("in_list filter on %s enumerates up to %d values over %d flags", column, uint64(1)<<uint(len(names)), len(names))
	}
	candidates := roaring64.NewBitmap()
	for i := uint64(0); i < 1<<uint(len(names)); i++ {
		var value uint64
		for j, name := range names {
			if i>>uint(j)&1 == 1 {
				value |= this.assignment.weights[name]
			}
		}
		if value&mask == truth {
			candidates.Add(value)
		}
	}
	values := make([]string, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		values = append(values, fmt.Sprintf("%d", it.Next()))
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(values, ", "))
}

// SetSQL builds a full assignment fragment (column = expression) that flips
// the desired bits of the column's current value without touching any other
// bit. An empty desired list yields the identity assignment column = column.
func (this *FragmentBuilder) SetSQL(desired ...Flag) (string, error) {
	_, set, clear, err := this.masks(desired)
	if err != nil {
		return "", err
	}
	column := this.ColumnSQL()
	return fmt.Sprintf("%s = %s", column, this.dialect.SetBitsExpr(column, set, clear)), nil
}

// FilterStateSQL is FilterSQL over a FlagState map, ordered by the
// assignment so output is deterministic.
func (this *FragmentBuilder) FilterStateSQL(state FlagState) (string, error) {
	return this.FilterSQL(this.assignment.FlagsOf(state)...)
}

// SetStateSQL is SetSQL over a FlagState map.
func (this *FragmentBuilder) SetStateSQL(state FlagState) (string, error) {
	return this.SetSQL(this.assignment.FlagsOf(state)...)
}
