package investilearn

import "fmt"

// ValidateSymbol checks that a string is a plausible ticker symbol:
// 1 to 10 characters, uppercase letters and digits, with '.' or '-'
// allowed as inner separators ("BRK.B", "RDS-A"). It rejects obviously
// malformed search input before any network call is made.
func ValidateSymbol(symbol string) error {
	if len(symbol) == 0 || len(symbol) > 10 {
		return fmt.Errorf("invalid symbol %q: must be 1 to 10 characters", symbol)
	}
	for i := 0; i < len(symbol); i++ {
		c := symbol[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-':
			if i == 0 || i == len(symbol)-1 {
				return fmt.Errorf("invalid symbol %q: separator %q cannot start or end a symbol", symbol, string(c))
			}
		default:
			return fmt.Errorf("invalid symbol %q: character %q is not allowed", symbol, string(c))
		}
	}
	return nil
}

// ValidateCurrency checks that a string is a plausible ISO 4217 currency
// code: exactly 3 uppercase letters.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q: must be 3 characters", code)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return fmt.Errorf("invalid currency code %q: must be uppercase letters", code)
		}
	}
	return nil
}
