package investilearn

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/investilearn/date"
)

func TestColumnOrderAndLookup(t *testing.T) {
	c := NewColumn(date.New(2023, 9, 30))
	c.Set("Total Revenue", 1000.0)
	c.Set("Cost Of Revenue", 600.0)
	c.Set("Net Income", 150.0)
	c.Set("Total Revenue", 1100.0) // overwrite keeps the slot

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	var names []string
	for name := range c.Items() {
		names = append(names, name)
	}
	want := "Total Revenue,Cost Of Revenue,Net Income"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("item order = %q, want %q", got, want)
	}
	if v, ok := c.Get("Total Revenue"); !ok || v != 1100.0 {
		t.Errorf("Get(Total Revenue) = %v, %v", v, ok)
	}
	if _, ok := c.Get("EBITDA"); ok {
		t.Error("Get of an unreported item should not be ok")
	}
}

func TestColumnFindAliases(t *testing.T) {
	c := NewColumn(date.New(2023, 9, 30))
	c.Set("Net Income Common Stockholders", 150.0)

	name, v := c.Find("Net Income", "Net Income Common Stockholders")
	if name != "Net Income Common Stockholders" || v != 150.0 {
		t.Errorf("Find = %q, %v", name, v)
	}
	if name, _ := c.Find("EBITDA"); name != "" {
		t.Errorf("Find of an unreported item = %q, want empty", name)
	}
}

func TestStatementLatest(t *testing.T) {
	s := NewStatement(IncomeStatement)
	if !s.Empty() || s.Latest() != nil {
		t.Fatal("new statement should be empty")
	}

	recent := NewColumn(date.New(2023, 9, 30))
	older := NewColumn(date.New(2022, 9, 24))
	s.Append(recent)
	s.Append(older)

	if s.Empty() {
		t.Error("statement with columns should not be empty")
	}
	if got := s.Latest(); got != recent {
		t.Errorf("Latest = %v, want the 2023 column", got.Period)
	}
	if len(s.Columns()) != 2 {
		t.Errorf("Columns = %d, want 2", len(s.Columns()))
	}
}

func TestStatementNilSafe(t *testing.T) {
	var s *Statement
	if !s.Empty() {
		t.Error("nil statement should be empty")
	}
	if s.Latest() != nil {
		t.Error("nil statement Latest should be nil")
	}
}

func TestValidStatementKind(t *testing.T) {
	for _, kind := range []string{"income", "cashflow", "balance"} {
		if !ValidStatementKind(kind) {
			t.Errorf("ValidStatementKind(%q) = false", kind)
		}
	}
	for _, kind := range []string{"", "dividends", "Income"} {
		if ValidStatementKind(kind) {
			t.Errorf("ValidStatementKind(%q) = true", kind)
		}
	}
}

func TestStatementJSON(t *testing.T) {
	s := NewStatement(IncomeStatement)
	c := NewColumn(date.New(2023, 9, 30))
	c.Set("Total Revenue", 1000.0)
	c.Set("Net Income", 150.0)
	s.Append(c)

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Kind    string `json:"kind"`
		Columns []struct {
			Period string             `json:"period"`
			Items  map[string]float64 `json:"items"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshaling %s: %v", raw, err)
	}
	if decoded.Kind != "income" {
		t.Errorf("kind = %q", decoded.Kind)
	}
	if len(decoded.Columns) != 1 || decoded.Columns[0].Period != "2023-09-30" {
		t.Fatalf("columns = %+v", decoded.Columns)
	}
	if decoded.Columns[0].Items["Net Income"] != 150.0 {
		t.Errorf("items = %v", decoded.Columns[0].Items)
	}
}
