package dsi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Token is one factor of a unit expression.
type Token struct {
	Symbol   string  // symbol part without exponent, e.g. "km"
	Exponent float64 // signed exponent; 1 when absent
	Sign     int     // +1 for numerator tokens, -1 for denominator tokens
	Raw      string  // token text as split from the expression
	Matched  bool    // false when Raw did not fit the symbol/exponent pattern
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if !t.Matched {
		return fmt.Sprintf("RAW(%q)", t.Raw)
	}
	return fmt.Sprintf("%s^%s", t.Symbol, formatExponent(t.Exponent))
}

// tokenPattern splits a factor into its symbol and an optional signed
// decimal exponent. A caret between the two is accepted so decompiled
// output can be compiled again.
var tokenPattern = regexp.MustCompile(`^([^0-9+\-*/^]+?)\^?([+-]?[0-9]+(?:\.[0-9]+)?)?$`)

// Tokenize splits a unit expression into signed tokens. It never fails:
// factors that do not fit the pattern are returned with Matched=false.
//
// Only the first '/' divides; anything after it is the denominator, and a
// further '/' stays inside a denominator token as literal text.
func Tokenize(expr string) []Token {
	expr = prepareExpression(expr)
	if expr == "" {
		return nil
	}

	numerator, denominator, hasDiv := strings.Cut(expr, "/")

	var tokens []Token
	tokens = appendTokens(tokens, numerator, 1)
	if hasDiv {
		tokens = appendTokens(tokens, denominator, -1)
	}
	return tokens
}

func appendTokens(tokens []Token, group string, sign int) []Token {
	for _, part := range strings.Split(group, "*") {
		if part == "" {
			continue
		}
		tokens = append(tokens, parseToken(part, sign))
	}
	return tokens
}

func parseToken(raw string, sign int) Token {
	m := tokenPattern.FindStringSubmatch(raw)
	if m == nil {
		return Token{Raw: raw, Sign: sign, Exponent: float64(sign)}
	}

	exp := 1.0
	if m[2] != "" {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Token{Raw: raw, Sign: sign, Exponent: float64(sign)}
		}
		exp = v
	}

	return Token{
		Symbol:   m[1],
		Exponent: exp * float64(sign),
		Sign:     sign,
		Raw:      raw,
		Matched:  true,
	}
}

// prepareExpression normalizes Unicode variants, strips whitespace and
// rewrites '.' multiplication to '*'. A '.' between two digits is a decimal
// point of a fractional exponent and is kept.
func prepareExpression(expr string) string {
	expr = normalizeSymbol(expr)

	var b strings.Builder
	b.Grow(len(expr))
	runes := []rune(expr)
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '.' || r == '·' || r == '×':
			if r == '.' && i > 0 && i+1 < len(runes) &&
				isDigit(runes[i-1]) && isDigit(runes[i+1]) {
				b.WriteRune(r)
				continue
			}
			b.WriteByte('*')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// formatExponent prints integral exponents without a decimal point and
// everything else at full precision.
func formatExponent(e float64) string {
	if e == 0 {
		return "0"
	}
	if e == float64(int64(e)) {
		return strconv.FormatInt(int64(e), 10)
	}
	return strconv.FormatFloat(e, 'f', -1, 64)
}
