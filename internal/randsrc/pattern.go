package randsrc

import "strings"

// Pattern placeholders
const (
	LetterPlaceholder = 'A'
	DigitPlaceholder  = '9'
)

// Pattern walks a format template, replacing each letter placeholder with a
// random uppercase letter and each digit placeholder with a random digit.
// Every other character is copied verbatim.
func (s *Source) Pattern(format string) string {
	var b strings.Builder
	b.Grow(len(format))
	for i := 0; i < len(format); i++ {
		switch format[i] {
		case LetterPlaceholder:
			b.WriteByte(s.Letter())
		case DigitPlaceholder:
			b.WriteByte(s.Digit())
		default:
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

// MatchesPattern reports whether value could have been produced from format
func MatchesPattern(format, value string) bool {
	if len(format) != len(value) {
		return false
	}
	for i := 0; i < len(format); i++ {
		c := value[i]
		switch format[i] {
		case LetterPlaceholder:
			if c < 'A' || c > 'Z' {
				return false
			}
		case DigitPlaceholder:
			if c < '0' || c > '9' {
				return false
			}
		default:
			if c != format[i] {
				return false
			}
		}
	}
	return true
}
