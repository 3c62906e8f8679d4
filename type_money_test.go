package investilearn

import "testing"

func TestMoneyCompact(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{2.5e12, "$2.50T"},
		{150.3e9, "$150.30B"},
		{45.1e6, "$45.10M"},
		{999999, "$999999.00"},
		{-1.2e9, "-$1.20B"},
		{0, "$0.00"},
	}
	for _, c := range cases {
		if got := M(c.value, "USD").Compact(); got != c.want {
			t.Errorf("Compact(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := M(150.25, "USD").String(); got != "$150.25" {
		t.Errorf("String = %q", got)
	}
	if got := M(150.25, "EUR").String(); got == "" {
		t.Error("euro String is empty")
	}
}
