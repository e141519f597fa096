package table

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Text Emitter
// ============================================================
//
// A table is written as a tab block, header labels carrying their span:
//
//   @tab "Hasil Kalibrasi" rows=1 cols=4 [Resistansi:2 Ketidakpastian:2]
//   |100.12346|Ω|0.001|Ω|
//   @end
//   Faktor Cakupan: 2
//
// Blank cells are empty between the bars.

// Emit writes t to w in tab block form.
func Emit(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("@tab ")
	bw.WriteString(canonLabel(t.Title))
	bw.WriteString(" rows=")
	bw.WriteString(strconv.Itoa(t.RowCount))
	bw.WriteString(" cols=")
	bw.WriteString(strconv.Itoa(t.Columns))
	bw.WriteString(" [")
	for i, h := range t.Headers {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(canonLabel(h.Label))
		bw.WriteByte(':')
		bw.WriteString(strconv.Itoa(h.Span))
	}
	bw.WriteString("]\n")

	for _, row := range t.Rows {
		bw.WriteByte('|')
		for i, c := range row {
			if i > 0 {
				bw.WriteByte('|')
			}
			if !c.IsBlank() {
				bw.WriteString(escapeTabularCell(c.Text))
			}
		}
		bw.WriteString("|\n")
	}
	bw.WriteString("@end\n")

	for _, m := range t.Metadata {
		bw.WriteString(m.String())
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// String returns the tab block form of t.
func (t *Table) String() string {
	var b strings.Builder
	_ = Emit(&b, t)
	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", `\n`, "\r", `\r`)

// escapeTabularCell escapes | and line breaks in a cell value.
func escapeTabularCell(s string) string {
	// Fast path: no escaping needed
	if !strings.ContainsAny(s, "|\n\r") {
		return s
	}
	return cellEscaper.Replace(s)
}

// canonLabel returns a label bare if safe, otherwise quoted.
func canonLabel(s string) string {
	if isBareSafe(s) {
		return s
	}
	return strconv.Quote(s)
}

// isBareSafe checks if a label can be written without quotes.
// Pattern: ^[\pL_][\pL\pN_\-.]*$
func isBareSafe(s string) bool {
	if len(s) == 0 {
		return false
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || (!unicode.IsLetter(r) && r != '_') {
		return false
	}

	for _, r := range s[size:] {
		if r == utf8.RuneError {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
