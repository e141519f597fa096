package dsi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"
)

// ExponentMarker opens an exponent group in canonical strings: `\tothe{-2}`.
const ExponentMarker = `\tothe`

// UnresolvedError reports a token the dictionary could not resolve. It is a
// warning: the token is carried into the canonical string verbatim.
type UnresolvedError struct {
	Token Token
}

func (e *UnresolvedError) Error() string {
	if !e.Token.Matched {
		return fmt.Sprintf("dsi: malformed unit token %q passed through", e.Token.Raw)
	}
	return fmt.Sprintf("dsi: unknown unit symbol %q passed through", e.Token.Symbol)
}

// Result is the outcome of compiling one expression.
type Result struct {
	Input     string
	Canonical string
	Tokens    []Token
	Warnings  []*UnresolvedError
}

// HasWarnings returns true if any token fell back to pass-through.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Compile converts a human unit expression such as "kg.m/s2" into its
// canonical macro form. Unknown tokens are passed through verbatim.
func Compile(expr string) string {
	return CompileResult(expr).Canonical
}

// CompileResult is Compile with the parsed tokens and pass-through warnings.
func CompileResult(expr string) *Result {
	tokens := Tokenize(expr)
	res := &Result{Input: expr, Tokens: tokens}

	b := getPooledBuilder()
	defer putPooledBuilder(b)

	for _, tok := range tokens {
		if !tok.Matched {
			res.warn(tok)
			b.WriteString(tok.Raw)
			continue
		}

		macro, ok := resolveSymbol(tok.Symbol)
		if !ok {
			res.warn(tok)
			b.WriteString(tok.Raw)
			continue
		}

		b.WriteString(macro)
		if tok.Exponent != 1 {
			b.WriteString(ExponentMarker)
			b.WriteByte('{')
			b.WriteString(formatExponent(tok.Exponent))
			b.WriteByte('}')
		}
	}

	res.Canonical = b.String()
	return res
}

func (r *Result) warn(tok Token) {
	w := &UnresolvedError{Token: tok}
	r.Warnings = append(r.Warnings, w)
	glog.V(1).Infof("%v (in %q)", w, r.Input)
}

// resolveSymbol maps one symbol to its macro sequence.
//
// Order: binary prefix + bit/B, exact base unit, SI prefix + base unit.
// An exact base-unit hit covers the whole symbol, which is the longest
// match possible, so "cd" or "Pa" never split into prefix and unit.
func resolveSymbol(symbol string) (string, bool) {
	if bp, rest, ok := ResolveBinaryPrefix(symbol); ok {
		if bu, ok := ResolveBaseUnit(rest); ok && (bu.Macro == `\bit` || bu.Macro == `\byte`) {
			return bp.Macro + bu.Macro, true
		}
	}

	if bu, ok := ResolveBaseUnit(symbol); ok {
		return bu.Macro, true
	}

	normalized := normalizeSymbol(symbol)
	for _, p := range prefixes.longestPrefixes(normalized) {
		rest := normalized[len(normalizeSymbol(p.Symbol)):]
		if bu, ok := ResolveBaseUnit(rest); ok {
			return p.Macro + bu.Macro, true
		}
	}

	return "", false
}

// ============================================================
// Builder pool
// ============================================================

var builderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

func getPooledBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putPooledBuilder(b *strings.Builder) {
	// Only return reasonably sized builders to the pool
	if b.Cap() < 4*1024 {
		builderPool.Put(b)
	}
}
