package agent

import (
	"strings"
	"testing"

	"github.com/etnz/investilearn"
	"github.com/etnz/investilearn/date"
)

func TestStatementMarkdown(t *testing.T) {
	col := investilearn.NewColumn(date.New(2023, 12, 31))
	col.Set("Total Revenue", 1.5e9)
	stmt := investilearn.NewStatement(investilearn.IncomeStatement)
	stmt.Append(col)

	got := statementMarkdown("SAP", stmt, "EUR")
	if !strings.Contains(got, "fiscal year ending 2023-12-31") {
		t.Errorf("statementMarkdown() is missing the period:\n%s", got)
	}
	if !strings.Contains(got, "€1.50B") {
		t.Errorf("statementMarkdown() does not format in the reporting currency:\n%s", got)
	}
}

func TestStatementMarkdownEmpty(t *testing.T) {
	stmt := investilearn.NewStatement(investilearn.BalanceSheet)
	got := statementMarkdown("AAPL", stmt, "USD")
	if got != "No balance statement data for AAPL." {
		t.Errorf("statementMarkdown(empty) = %q", got)
	}
}
