package dsi

import (
	"strings"
	"unicode/utf8"
)

// Decompile renders a canonical or partly canonical unit string in human
// notation: `\kilogram\metre\second\tothe{-2}` becomes "kg*m*s^-2".
//
// It is a single left-to-right scan, not a reparse. Text that is not a
// macro is copied as is, so strings without macros come back unchanged.
// A '*' is inserted where a new unit starts directly after a previous one.
func Decompile(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	b := getPooledBuilder()
	defer putPooledBuilder(b)
	b.Grow(len(s))

	afterPrefix := false
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
			afterPrefix = false
			continue
		}

		if strings.HasPrefix(s[i:], ExponentMarker+"{") {
			i += len(ExponentMarker) + 1
			b.WriteByte('^')
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+end])
			i += end + 1
			afterPrefix = false
			continue
		}

		e, n := macros.longestMatch(s[i:])
		if e == nil {
			b.WriteByte('\\')
			i++
			afterPrefix = false
			continue
		}

		startsUnit := e.Kind != KindBaseUnit || !afterPrefix
		if startsUnit && needsSeparator(b.String()) {
			b.WriteByte('*')
		}
		b.WriteString(e.Symbol)
		afterPrefix = e.Kind != KindBaseUnit
		i += n
	}

	return b.String()
}

// needsSeparator reports whether a unit appended to out must be joined
// with '*'.
func needsSeparator(out string) bool {
	if out == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(out)
	switch r {
	case '*', '/', '(', '^', ' ', '.', '·':
		return false
	}
	return true
}

// Normalize brings a free-form or mixed unit string to the human form the
// decompiler produces for its canonical equivalent.
func Normalize(s string) string {
	return Decompile(Compile(Decompile(s)))
}
