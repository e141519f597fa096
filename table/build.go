package table

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Neumenon/dsiunit/dsi"
)

// ============================================================
// Result Tabularizer
// ============================================================
//
// Each quantity sub-list takes two columns (value, unit); the optional
// uncertainty list takes two more at the end:
//
//   | Resistansi      | Ketidakpastian |
//   | 100.12346 | Ω   | 0.001   | Ω    |
//   Faktor Cakupan: 2

// DefaultDecimals is the number of fractional digits values are rounded to.
const DefaultDecimals = 5

// BuildOptions configures tabularization.
type BuildOptions struct {
	Labels   Labels // empty fields fall back to the DefaultLanguage labels
	Decimals *int   // fractional digits kept after rounding; nil means DefaultDecimals
}

func (o BuildOptions) decimals() int {
	if o.Decimals == nil {
		return DefaultDecimals
	}
	if *o.Decimals < 0 {
		return 0
	}
	return *o.Decimals
}

// DefaultBuildOptions returns the default options for a label language.
func DefaultBuildOptions(lang string) BuildOptions {
	return BuildOptions{Labels: DefaultLabels(lang)}
}

// Build tabularizes a result set with the default options.
func Build(title string, quantities []Quantity, unc *Uncertainty) (*Table, error) {
	return BuildWithOptions(title, quantities, unc, DefaultBuildOptions(DefaultLanguage))
}

// BuildWithOptions tabularizes a result set. A malformed sub-list is skipped
// and reported in Table.Warnings; the only error is ErrEmptyResult.
func BuildWithOptions(title string, quantities []Quantity, unc *Uncertainty, opts BuildOptions) (*Table, error) {
	if len(quantities) == 0 {
		return nil, errors.Wrapf(ErrEmptyResult, "build %q", title)
	}

	b := &builder{
		labels:   DefaultLabels(DefaultLanguage).Merge(opts.Labels),
		decimals: opts.decimals(),
		t:        &Table{Title: title},
	}

	b.decodeQuantities(quantities)
	if unc != nil {
		b.decodeUncertainty(unc)
	}
	b.t.Columns = b.col

	b.emitRows()
	b.attachCoverage(quantities, unc)

	glog.V(2).Infof("table %q: %d columns, %d rows, %d warnings",
		title, b.t.Columns, b.t.RowCount, len(b.t.Warnings))
	return b.t, nil
}

// pair is one decoded (value, unit) sample.
type pair struct {
	value Cell
	unit  Cell
}

type builder struct {
	labels   Labels
	decimals int
	t        *Table

	col      int
	lists    [][]pair // decoded quantity sub-lists in column order
	unc      []pair
	hasUnc   bool
	rowCount int
}

func (b *builder) warn(err error) {
	glog.Warningf("%v", err)
	b.t.Warnings = append(b.t.Warnings, err)
}

func (b *builder) decodeQuantities(quantities []Quantity) {
	starts := make([]int, len(quantities))
	for qi, q := range quantities {
		starts[qi] = b.col
		if len(q.Lists) == 0 {
			b.warn(&SubListError{Quantity: qi, Name: q.Name, Column: b.col,
				Err: errors.New("no value lists")})
			continue
		}

		b.t.Headers = append(b.t.Headers, HeaderSpan{
			Label: q.Name,
			Col:   b.col,
			Span:  2 * len(q.Lists),
		})

		for li, vl := range q.Lists {
			pairs, err := b.decodeList(vl, true)
			if err != nil {
				b.warn(&SubListError{Quantity: qi, Name: q.Name, List: li, Column: b.col, Err: err})
				pairs = nil
			}
			b.lists = append(b.lists, pairs)
			b.col += 2
		}

		if n := len(q.Lists[0].Values); n > b.rowCount {
			b.rowCount = n
		}
	}

	// Companion sub-lists do not add rows.
	for qi, q := range quantities {
		for li := 1; li < len(q.Lists); li++ {
			if extra := len(q.Lists[li].Values) - b.rowCount; extra > 0 {
				b.warn(&SubListError{Quantity: qi, Name: q.Name, List: li, Column: starts[qi] + 2*li,
					Err: errors.Errorf("%d values beyond the %d table rows dropped", extra, b.rowCount)})
			}
		}
	}
}

func (b *builder) decodeUncertainty(unc *Uncertainty) {
	b.t.Headers = append(b.t.Headers, HeaderSpan{
		Label: b.labels.Uncertainty,
		Col:   b.col,
		Span:  2,
	})

	// The cell unit comes from the row, so a bad unit count only warns.
	if n := len(unc.Units); n > 1 && n != len(unc.Values) {
		b.warn(&SubListError{Quantity: -1, Column: b.col, Err: ErrUnitCount})
	}

	pairs, _ := b.decodeList(ValueList{Values: unc.Values}, false)
	b.unc = pairs
	b.hasUnc = true
	if len(b.unc) > b.rowCount {
		b.warn(&SubListError{Quantity: -1, Column: b.col,
			Err: errors.Errorf("%d values beyond the %d table rows dropped", len(b.unc)-b.rowCount, b.rowCount)})
	}
	b.col += 2
}

// decodeList pairs values with units: one unit broadcasts, N units pair
// positionally. With withUnits false the unit cells are left blank.
func (b *builder) decodeList(vl ValueList, withUnits bool) ([]pair, error) {
	if withUnits && len(vl.Values) > 0 && len(vl.Units) != 1 && len(vl.Units) != len(vl.Values) {
		return nil, errors.Wrapf(ErrUnitCount, "%d values, %d units", len(vl.Values), len(vl.Units))
	}

	pairs := make([]pair, len(vl.Values))
	for i, raw := range vl.Values {
		pairs[i].value = b.decodeValue(raw)
		pairs[i].unit = Blank
		if !withUnits {
			continue
		}
		unit := vl.Units[0]
		if len(vl.Units) > 1 {
			unit = vl.Units[i]
		}
		pairs[i].unit = Cell{Kind: CellUnit, Text: dsi.Decompile(unit)}
	}
	return pairs, nil
}

// decodeValue rounds a numeric value; anything else becomes a text cell.
func (b *builder) decodeValue(raw string) Cell {
	d, err := ParseDecimal(raw)
	if err != nil {
		glog.V(1).Infof("table %q: value %q kept as text: %v", b.t.Title, raw, err)
		return Cell{Kind: CellText, Text: raw}
	}
	r := d.Round(b.decimals)
	f, err := r.Float64()
	if err != nil {
		glog.V(1).Infof("table %q: value %q kept as text: %v", b.t.Title, raw, err)
		return Cell{Kind: CellText, Text: r.String()}
	}
	return Cell{Kind: CellNumber, Text: r.String(), Value: f}
}

func (b *builder) emitRows() {
	b.t.RowCount = b.rowCount
	b.t.Rows = make([][]Cell, 0, b.rowCount)

	for i := 0; i < b.rowCount; i++ {
		row := make([]Cell, 0, b.t.Columns)
		lastUnit, haveUnit := Blank, false

		for _, pairs := range b.lists {
			if i >= len(pairs) {
				row = append(row, Blank, Blank)
				continue
			}
			row = append(row, pairs[i].value, pairs[i].unit)
			lastUnit, haveUnit = pairs[i].unit, true
		}

		if b.hasUnc {
			if i < len(b.unc) {
				// There is no separate uncertainty unit: reuse the unit of
				// the last quantity column written in this row.
				unit := Blank
				if haveUnit {
					unit = lastUnit
				}
				row = append(row, b.unc[i].value, unit)
			} else {
				row = append(row, Blank, Blank)
			}
		}

		b.t.Rows = append(b.t.Rows, row)
	}
}

// attachCoverage folds coverage metadata, first non-empty value per field
// in declaration order, and appends the metadata rows.
func (b *builder) attachCoverage(quantities []Quantity, unc *Uncertainty) {
	sources := make([]Coverage, 0, len(quantities)+1)
	for _, q := range quantities {
		sources = append(sources, q.Coverage)
	}
	if unc != nil {
		sources = append(sources, unc.Coverage)
	}

	var cov Coverage
	for _, c := range sources {
		if cov.Factor == "" {
			cov.Factor = c.Factor
		}
		if cov.Probability == "" {
			cov.Probability = c.Probability
		}
		if cov.Distribution == "" {
			cov.Distribution = c.Distribution
		}
		if cov.Factor != "" && cov.Probability != "" && cov.Distribution != "" {
			break
		}
	}
	b.t.Coverage = cov

	add := func(label, value string) {
		if value != "" {
			b.t.Metadata = append(b.t.Metadata, MetadataRow{Label: label, Value: value})
		}
	}
	add(b.labels.CoverageFactor, cov.Factor)
	add(b.labels.CoverageProbability, cov.Probability)
	add(b.labels.Distribution, cov.Distribution)
}
