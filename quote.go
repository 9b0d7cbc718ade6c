package bitfields

const (
	DefaultQuoter = QuoteRuner('`')
	QuoteCharS    = string(DefaultQuoter)
)

type (
	Quoter interface {
		// QuoteChar is the quote char for identifiers, to avoid SQL parsing
		// exceptions when a reserved word is used as a column name.
		QuoteChar() rune
	}

	QuoteRuner rune
)

func (this QuoteRuner) QuoteChar() rune {
	return rune(this)
}

// Quote quotes an identifier with the quoter's quote char.
func Quote(q Quoter, key string) string {
	qc := string(q.QuoteChar())
	return qc + key + qc
}

// QualifyColumn renders table.column with both identifiers quoted. With an
// empty table the column is returned verbatim: qualification and quoting of
// bare columns belong to the caller's context.
func QualifyColumn(q Quoter, table, column string) string {
	if table == "" {
		return column
	}
	return Quote(q, table) + "." + Quote(q, column)
}
