package bitfields

import (
	"fmt"

	"github.com/pkg/errors"
)

// Dialector renders the engine-specific parts of generated fragments: the
// identifier quote char and the set-bits update expression.
type Dialector interface {
	Quoter
	GetName() string
	// SetBitsExpr renders the right-hand side of an update that sets the
	// bits of set and clears the bits of clear on column. set and clear are
	// disjoint and column is already quoted/qualified.
	SetBitsExpr(column string, set, clear uint64) string
}

var dialectsMap = map[string]Dialector{}

// RegisterDialect registers a new dialect.
func RegisterDialect(name string, dialect Dialector) {
	dialectsMap[name] = dialect
}

// GetDialect gets the dialect for the specified dialect name.
func GetDialect(name string) (dialect Dialector, ok bool) {
	dialect, ok = dialectsMap[name]
	return
}

// MustGetDialect gets the dialect for the specified dialect name.
func MustGetDialect(name string) (dialect Dialector) {
	var ok bool
	if dialect, ok = dialectsMap[name]; !ok {
		panic(errors.New(fmt.Sprintf("dialect %q is not registered", name)))
	}
	return
}

func init() {
	RegisterDialect("common", commonDialect{})
	RegisterDialect("mysql", mysqlDialect{})
	RegisterDialect("postgres", postgresDialect{})
}

// commonDialect avoids bitwise NOT and renders bit clearing as arithmetic
// subtraction. Folding the to-clear bits into the OR first is what makes the
// subtraction safe: every subtracted bit is guaranteed set.
type commonDialect struct{}

func (commonDialect) GetName() string { return "common" }

func (commonDialect) QuoteChar() rune { return '`' }

func (commonDialect) SetBitsExpr(column string, set, clear uint64) string {
	switch {
	case set == 0 && clear == 0:
		return column
	case clear == 0:
		return fmt.Sprintf("%s | %d", column, set)
	default:
		return fmt.Sprintf("(%s | %d) - %d", column, set|clear, clear)
	}
}

type mysqlDialect struct{}

func (mysqlDialect) GetName() string { return "mysql" }

func (mysqlDialect) QuoteChar() rune { return '`' }

func (mysqlDialect) SetBitsExpr(column string, set, clear uint64) string {
	return andNotExpr(column, set, clear)
}

type postgresDialect struct{}

func (postgresDialect) GetName() string { return "postgres" }

func (postgresDialect) QuoteChar() rune { return '"' }

func (postgresDialect) SetBitsExpr(column string, set, clear uint64) string {
	return andNotExpr(column, set, clear)
}

func andNotExpr(column string, set, clear uint64) string {
	switch {
	case set == 0 && clear == 0:
		return column
	case clear == 0:
		return fmt.Sprintf("%s | %d", column, set)
	case set == 0:
		return fmt.Sprintf("%s & ~%d", column, clear)
	default:
		return fmt.Sprintf("(%s | %d) & ~%d", column, set, clear)
	}
}
