package dsi

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ============================================================
// Unit Dictionary
// ============================================================

// EntryKind tells which table a dictionary entry belongs to.
type EntryKind uint8

const (
	KindBaseUnit EntryKind = iota
	KindPrefix
	KindBinaryPrefix
)

// String returns the kind name.
func (k EntryKind) String() string {
	switch k {
	case KindBaseUnit:
		return "unit"
	case KindPrefix:
		return "prefix"
	case KindBinaryPrefix:
		return "binary-prefix"
	default:
		return "unknown"
	}
}

// Entry is an immutable symbol <-> macro pair.
type Entry struct {
	Symbol string // human symbol, e.g. "k", "Ki", "Ω"
	Macro  string // D-SI macro, e.g. `\kilo`
	Kind   EntryKind
}

var prefixEntries = []Entry{
	{"Y", `\yotta`, KindPrefix},
	{"Z", `\zetta`, KindPrefix},
	{"E", `\exa`, KindPrefix},
	{"P", `\peta`, KindPrefix},
	{"T", `\tera`, KindPrefix},
	{"G", `\giga`, KindPrefix},
	{"M", `\mega`, KindPrefix},
	{"k", `\kilo`, KindPrefix},
	{"h", `\hecto`, KindPrefix},
	{"da", `\deca`, KindPrefix},
	{"d", `\deci`, KindPrefix},
	{"c", `\centi`, KindPrefix},
	{"m", `\milli`, KindPrefix},
	{"μ", `\micro`, KindPrefix},
	{"n", `\nano`, KindPrefix},
	{"p", `\pico`, KindPrefix},
	{"f", `\femto`, KindPrefix},
	{"a", `\atto`, KindPrefix},
	{"z", `\zepto`, KindPrefix},
	{"y", `\yocto`, KindPrefix},
}

var binaryPrefixEntries = []Entry{
	{"Ki", `\kibi`, KindBinaryPrefix},
	{"Mi", `\mebi`, KindBinaryPrefix},
	{"Gi", `\gibi`, KindBinaryPrefix},
	{"Ti", `\tebi`, KindBinaryPrefix},
	{"Pi", `\pebi`, KindBinaryPrefix},
	{"Ei", `\exbi`, KindBinaryPrefix},
	{"Zi", `\zebi`, KindBinaryPrefix},
	{"Yi", `\yobi`, KindBinaryPrefix},
}

var baseUnitEntries = []Entry{
	{"m", `\metre`, KindBaseUnit},
	{"kg", `\kilogram`, KindBaseUnit},
	{"g", `\gram`, KindBaseUnit},
	{"s", `\second`, KindBaseUnit},
	{"A", `\ampere`, KindBaseUnit},
	{"K", `\kelvin`, KindBaseUnit},
	{"mol", `\mole`, KindBaseUnit},
	{"cd", `\candela`, KindBaseUnit},
	{"Hz", `\hertz`, KindBaseUnit},
	{"rad", `\radian`, KindBaseUnit},
	{"sr", `\steradian`, KindBaseUnit},
	{"N", `\newton`, KindBaseUnit},
	{"Pa", `\pascal`, KindBaseUnit},
	{"J", `\joule`, KindBaseUnit},
	{"W", `\watt`, KindBaseUnit},
	{"C", `\coulomb`, KindBaseUnit},
	{"V", `\volt`, KindBaseUnit},
	{"F", `\farad`, KindBaseUnit},
	{"Ω", `\ohm`, KindBaseUnit},
	{"S", `\siemens`, KindBaseUnit},
	{"Wb", `\weber`, KindBaseUnit},
	{"T", `\tesla`, KindBaseUnit},
	{"H", `\henry`, KindBaseUnit},
	{"°C", `\degreecelsius`, KindBaseUnit},
	{"lm", `\lumen`, KindBaseUnit},
	{"lx", `\lux`, KindBaseUnit},
	{"Bq", `\becquerel`, KindBaseUnit},
	{"Sv", `\sievert`, KindBaseUnit},
	{"Gy", `\gray`, KindBaseUnit},
	{"kat", `\katal`, KindBaseUnit},
	{"min", `\minute`, KindBaseUnit},
	{"h", `\hour`, KindBaseUnit},
	{"d", `\day`, KindBaseUnit},
	{"°", `\degree`, KindBaseUnit},
	{"′", `\arcminute`, KindBaseUnit},
	{"″", `\arcsecond`, KindBaseUnit},
	{"ha", `\hectare`, KindBaseUnit},
	{"L", `\litre`, KindBaseUnit},
	{"t", `\tonne`, KindBaseUnit},
	{"eV", `\electronvolt`, KindBaseUnit},
	{"Da", `\dalton`, KindBaseUnit},
	{"au", `\astronomicalunit`, KindBaseUnit},
	{"Np", `\neper`, KindBaseUnit},
	{"dB", `\decibel`, KindBaseUnit},
	{"bit", `\bit`, KindBaseUnit},
	{"B", `\byte`, KindBaseUnit},
	{"%", `\percent`, KindBaseUnit},
	{"ppm", `\ppm`, KindBaseUnit},
}

// symbolTable maps normalized symbols to entries. Keys are sorted
// longest first so prefix scans are greedy.
type symbolTable struct {
	bySymbol map[string]Entry
	keys     []string
}

func newSymbolTable(entries []Entry) symbolTable {
	st := symbolTable{bySymbol: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		key := normalizeSymbol(e.Symbol)
		st.bySymbol[key] = e
		st.keys = append(st.keys, key)
	}
	sort.SliceStable(st.keys, func(i, j int) bool {
		return len(st.keys[i]) > len(st.keys[j])
	})
	return st
}

// longestPrefixes returns every key that prefixes s, longest first.
func (st symbolTable) longestPrefixes(s string) []Entry {
	var out []Entry
	for _, k := range st.keys {
		if strings.HasPrefix(s, k) {
			out = append(out, st.bySymbol[k])
		}
	}
	return out
}

var (
	prefixes       = newSymbolTable(prefixEntries)
	binaryPrefixes = newSymbolTable(binaryPrefixEntries)
	baseUnits      = newSymbolTable(baseUnitEntries)

	byMacro = buildMacroIndex()
)

func buildMacroIndex() map[string]Entry {
	idx := make(map[string]Entry)
	// Base units go in last so they win on identical macros.
	for _, group := range [][]Entry{binaryPrefixEntries, prefixEntries, baseUnitEntries} {
		for _, e := range group {
			idx[e.Macro] = e
		}
	}
	return idx
}

// normalizeSymbol folds compatibility variants (micro sign, ohm sign,
// superscript digits, double prime) onto one form.
func normalizeSymbol(s string) string {
	s = norm.NFKC.String(s)
	if strings.ContainsRune(s, '−') {
		s = strings.ReplaceAll(s, "−", "-")
	}
	return s
}

// ResolvePrefix returns the longest SI prefix that prefixes symbol and the
// remaining text.
func ResolvePrefix(symbol string) (Entry, string, bool) {
	return resolveLongest(prefixes, symbol)
}

// ResolveBinaryPrefix returns the longest binary prefix that prefixes symbol
// and the remaining text.
func ResolveBinaryPrefix(symbol string) (Entry, string, bool) {
	return resolveLongest(binaryPrefixes, symbol)
}

func resolveLongest(st symbolTable, symbol string) (Entry, string, bool) {
	symbol = normalizeSymbol(symbol)
	for _, k := range st.keys {
		if strings.HasPrefix(symbol, k) {
			return st.bySymbol[k], symbol[len(k):], true
		}
	}
	return Entry{}, "", false
}

// ResolveBaseUnit looks up a base unit by exact symbol.
func ResolveBaseUnit(symbol string) (Entry, bool) {
	e, ok := baseUnits.bySymbol[normalizeSymbol(symbol)]
	return e, ok
}

// LookupMacro returns the entry for a macro such as `\metre`.
func LookupMacro(macro string) (Entry, bool) {
	e, ok := byMacro[macro]
	return e, ok
}

// Entries returns a copy of the dictionary: base units, then SI prefixes,
// then binary prefixes, each in declaration order.
func Entries() []Entry {
	out := make([]Entry, 0, len(baseUnitEntries)+len(prefixEntries)+len(binaryPrefixEntries))
	out = append(out, baseUnitEntries...)
	out = append(out, prefixEntries...)
	out = append(out, binaryPrefixEntries...)
	return out
}
