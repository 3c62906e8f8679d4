package investilearn

import (
	"iter"

	"github.com/etnz/investilearn/date"
)

// StatementKind identifies one of the three financial statements.
type StatementKind string

const (
	IncomeStatement   StatementKind = "income"
	CashFlowStatement StatementKind = "cashflow"
	BalanceSheet      StatementKind = "balance"
)

// ValidStatementKind reports whether s names a known statement.
func ValidStatementKind(s string) bool {
	switch StatementKind(s) {
	case IncomeStatement, CashFlowStatement, BalanceSheet:
		return true
	}
	return false
}

// Statement holds one financial statement as named line items over fiscal
// periods, most recent period first. Line items are stored only when the
// provider reported them: a missing item is not a zero.
type Statement struct {
	Kind    StatementKind
	columns []*Column
}

// Column holds the line items of a single fiscal period, in report order.
type Column struct {
	Period date.Date
	names  []string
	values map[string]float64
}

// NewColumn returns an empty column for the given fiscal period.
func NewColumn(period date.Date) *Column {
	return &Column{Period: period, values: make(map[string]float64)}
}

// Set records a line item value. Setting an existing item overwrites it.
func (c *Column) Set(name string, v float64) {
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = v
}

// Get returns a line item value and whether it was reported.
func (c *Column) Get(name string) (float64, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Find returns the first reported line item among the given alternative
// spellings. Providers are not consistent about naming ("Net Income" vs
// "Net Income Common Stockholders"), so lookups search an alias list.
// It returns "", 0 when none is reported.
func (c *Column) Find(names ...string) (string, float64) {
	for _, name := range names {
		if v, ok := c.values[name]; ok {
			return name, v
		}
	}
	return "", 0
}

// Len returns the number of reported line items.
func (c *Column) Len() int { return len(c.names) }

// Items iterates over the line items in report order.
func (c *Column) Items() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, name := range c.names {
			if !yield(name, c.values[name]) {
				return
			}
		}
	}
}

// NewStatement returns an empty statement of the given kind.
func NewStatement(kind StatementKind) *Statement {
	return &Statement{Kind: kind}
}

// Append adds a fiscal period column. Columns are expected most recent first.
func (s *Statement) Append(c *Column) { s.columns = append(s.columns, c) }

// Empty reports whether the statement has no periods.
func (s *Statement) Empty() bool { return s == nil || len(s.columns) == 0 }

// Latest returns the most recent fiscal period, or nil when empty.
func (s *Statement) Latest() *Column {
	if s.Empty() {
		return nil
	}
	return s.columns[0]
}

// Columns returns all fiscal period columns, most recent first.
func (s *Statement) Columns() []*Column { return s.columns }

func (c *Column) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("period", c.Period)
	var items jsonObjectWriter
	for name, v := range c.Items() {
		items.Append(name, v)
	}
	itemsJSON, err := items.MarshalJSON()
	if err != nil {
		return nil, err
	}
	w.Append("items", (jsonRaw)(itemsJSON))
	return w.MarshalJSON()
}

func (s *Statement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", s.Kind)
	w.Append("columns", s.columns)
	return w.MarshalJSON()
}

// jsonRaw embeds pre-marshaled JSON verbatim.
type jsonRaw []byte

func (r jsonRaw) MarshalJSON() ([]byte, error) { return r, nil }
