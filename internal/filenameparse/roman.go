package filenameparse

import "strings"

var romanValues = []struct {
	symbol string
	value  int
}{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// RomanToArabic converts a roman numeral (case-insensitive, I..MMMCMXCIX
// range) to its decimal string form. Returns "", false if s isn't a valid
// roman numeral.
func RomanToArabic(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if !strings.ContainsRune("IVXLCDM", r) {
			return "", false
		}
	}

	total := 0
	i := 0
	for _, rv := range romanValues {
		for strings.HasPrefix(s[i:], rv.symbol) {
			total += rv.value
			i += len(rv.symbol)
		}
	}
	if i != len(s) || total == 0 {
		return "", false
	}
	return itoa(total), true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
