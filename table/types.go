package table

import "encoding/json"

// ValueList is one value/unit sub-list of a quantity. Units holds either a
// single unit shared by every value or one unit per value.
type ValueList struct {
	Values []string `yaml:"values" json:"values"`
	Units  []string `yaml:"units" json:"units"`
}

// Coverage describes how an expanded uncertainty was derived.
type Coverage struct {
	Factor       string `yaml:"coverage_factor" json:"coverageFactor,omitempty"`
	Probability  string `yaml:"coverage_probability" json:"coverageProbability,omitempty"`
	Distribution string `yaml:"distribution" json:"distribution,omitempty"`
}

// IsZero returns true if no field is set.
func (c Coverage) IsZero() bool {
	return c.Factor == "" && c.Probability == "" && c.Distribution == ""
}

// Quantity is a named measurand. Lists[0] is the primary sub-list; further
// sub-lists are hybrid companions such as the quantity's own uncertainty.
type Quantity struct {
	Name     string      `yaml:"name" json:"name"`
	Lists    []ValueList `yaml:"lists" json:"lists"`
	Coverage `yaml:",inline"`
}

// Uncertainty is the table-wide expanded uncertainty column.
type Uncertainty struct {
	ValueList `yaml:",inline"`
	Coverage  `yaml:",inline"`
}

// CellKind classifies a cell.
type CellKind uint8

const (
	CellBlank CellKind = iota // no sample at this row
	CellNumber
	CellUnit
	CellText // value that did not parse as a number, carried verbatim
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellBlank:
		return "blank"
	case CellNumber:
		return "number"
	case CellUnit:
		return "unit"
	case CellText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalText lets CellKind appear by name in JSON.
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Cell is one entry of the cell matrix.
type Cell struct {
	Kind  CellKind `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Value float64  `json:"value,omitempty"` // set for CellNumber
}

// Blank is the cell for rows past a sub-list's own length. It is distinct
// from a number cell holding "0".
var Blank = Cell{Kind: CellBlank}

// IsBlank returns true for the blank sentinel.
func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank
}

// HeaderSpan is a merged header covering Span columns from Col.
type HeaderSpan struct {
	Label string `json:"label"`
	Col   int    `json:"col"`
	Span  int    `json:"span"`
}

// MetadataRow is a trailing "label: value" line under the table body.
type MetadataRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// String returns "label: value".
func (m MetadataRow) String() string {
	return m.Label + ": " + m.Value
}

// Table is the tabularized result set handed to a renderer.
type Table struct {
	Title    string        `json:"title"`
	Columns  int           `json:"columns"`
	RowCount int           `json:"rowCount"`
	Headers  []HeaderSpan  `json:"headers"`
	Rows     [][]Cell      `json:"rows"`
	Metadata []MetadataRow `json:"metadata,omitempty"`
	Coverage Coverage      `json:"coverage"`

	// Warnings holds non-fatal problems such as skipped sub-lists.
	Warnings []error `json:"-"`
}

// MarshalJSON adds warning messages as plain strings.
func (t *Table) MarshalJSON() ([]byte, error) {
	type plain Table
	warnings := make([]string, 0, len(t.Warnings))
	for _, w := range t.Warnings {
		warnings = append(warnings, w.Error())
	}
	return json.Marshal(struct {
		*plain
		Warnings []string `json:"warnings,omitempty"`
	}{(*plain)(t), warnings})
}
