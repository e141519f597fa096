package table

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func num(text string, v float64) Cell { return Cell{Kind: CellNumber, Text: text, Value: v} }
func unit(text string) Cell           { return Cell{Kind: CellUnit, Text: text} }

func resistance() []Quantity {
	return []Quantity{{
		Name:  "Resistansi",
		Lists: []ValueList{{Values: []string{"100.12345678"}, Units: []string{"Ω"}}},
	}}
}

// ============================================================
// Scenarios
// ============================================================

func TestBuild_ResistanceWithUncertainty(t *testing.T) {
	unc := &Uncertainty{
		ValueList: ValueList{Values: []string{"0.001"}},
		Coverage:  Coverage{Factor: "2"},
	}

	tbl, err := Build("Hasil", resistance(), unc)
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.Columns)
	assert.Equal(t, 1, tbl.RowCount)
	assert.Equal(t, []HeaderSpan{
		{Label: "Resistansi", Col: 0, Span: 2},
		{Label: "Ketidakpastian", Col: 2, Span: 2},
	}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []Cell{num("100.12346", 100.12346), unit("Ω"), num("0.001", 0.001), unit("Ω")}, tbl.Rows[0])
	require.Len(t, tbl.Metadata, 1)
	assert.Equal(t, "Faktor Cakupan: 2", tbl.Metadata[0].String())
	assert.Empty(t, tbl.Warnings)
}

func TestBuild_DecompilesUnits(t *testing.T) {
	qs := []Quantity{{
		Name:  "Gaya",
		Lists: []ValueList{{Values: []string{"9.81"}, Units: []string{`\kilogram\metre\second\tothe{-2}`}}},
	}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, unit("kg*m*s^-2"), tbl.Rows[0][1])
}

// ============================================================
// Pairing Rules
// ============================================================

func TestBuild_BroadcastUnit(t *testing.T) {
	qs := []Quantity{{
		Name:  "Massa",
		Lists: []ValueList{{Values: []string{"1", "2", "3"}, Units: []string{"kg"}}},
	}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	for i, row := range tbl.Rows {
		assert.Equal(t, []Cell{num(fmt.Sprint(i+1), float64(i+1)), unit("kg")}, row)
	}
}

func TestBuild_PositionalUnits(t *testing.T) {
	qs := []Quantity{{
		Name:  "Massa",
		Lists: []ValueList{{Values: []string{"1", "2"}, Units: []string{"kg", "g"}}},
	}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]Cell{
		{num("1", 1), unit("kg")},
		{num("2", 2), unit("g")},
	}, tbl.Rows)
}

func TestBuild_MalformedSubListSkipped(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"1", "2", "3"}, Units: []string{"m", "s"}}}},
		{Name: "B", Lists: []ValueList{{Values: []string{"4"}, Units: []string{"K"}}}},
	}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)

	require.Len(t, tbl.Warnings, 1)
	var sle *SubListError
	require.True(t, errors.As(tbl.Warnings[0], &sle))
	assert.Equal(t, 0, sle.Quantity)
	assert.Equal(t, "A", sle.Name)
	assert.Equal(t, 0, sle.Column)
	assert.True(t, errors.Is(tbl.Warnings[0], ErrUnitCount))

	// The bad sub-list keeps its columns, blank; the other quantity renders.
	assert.Equal(t, 3, tbl.RowCount)
	assert.Equal(t, []Cell{Blank, Blank, num("4", 4), unit("K")}, tbl.Rows[0])
	assert.Equal(t, []Cell{Blank, Blank, Blank, Blank}, tbl.Rows[1])
}

func TestBuild_HybridQuantity(t *testing.T) {
	qs := []Quantity{{
		Name: "Suhu",
		Lists: []ValueList{
			{Values: []string{"20.1", "25.2"}, Units: []string{`\degreecelsius`}},
			{Values: []string{"0.05"}, Units: []string{`\degreecelsius`}},
		},
		Coverage: Coverage{Factor: "2", Probability: "95 %", Distribution: "normal"},
	}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)

	assert.Equal(t, []HeaderSpan{{Label: "Suhu", Col: 0, Span: 4}}, tbl.Headers)
	assert.Equal(t, 4, tbl.Columns)
	assert.Equal(t, [][]Cell{
		{num("20.1", 20.1), unit("°C"), num("0.05", 0.05), unit("°C")},
		{num("25.2", 25.2), unit("°C"), Blank, Blank},
	}, tbl.Rows)
	assert.Equal(t, []MetadataRow{
		{Label: "Faktor Cakupan", Value: "2"},
		{Label: "Probabilitas Cakupan", Value: "95 %"},
		{Label: "Distribusi", Value: "normal"},
	}, tbl.Metadata)
}

// ============================================================
// Uncertainty and Blank Cells
// ============================================================

func TestBuild_UncertaintyReusesLastUnit(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"1", "2"}, Units: []string{"m"}}}},
		{Name: "B", Lists: []ValueList{{Values: []string{"3"}, Units: []string{"s"}}}},
	}
	unc := &Uncertainty{ValueList: ValueList{Values: []string{"0.1", "0.2"}, Units: []string{"ignored"}}}

	tbl, err := Build("", qs, unc)
	require.NoError(t, err)

	// Row 0: last written unit is B's "s"; row 1: B is blank, so A's "m".
	assert.Equal(t, unit("s"), tbl.Rows[0][5])
	assert.Equal(t, unit("m"), tbl.Rows[1][5])
	assert.Empty(t, tbl.Warnings)
}

func TestBuild_UncertaintyWithoutUnitInRow(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"1", "2"}, Units: []string{"m", "s", "K"}}}},
	}
	unc := &Uncertainty{ValueList: ValueList{Values: []string{"0.1"}}}

	tbl, err := Build("", qs, unc)
	require.NoError(t, err)
	require.Len(t, tbl.Warnings, 1)
	assert.Equal(t, [][]Cell{
		{Blank, Blank, num("0.1", 0.1), Blank},
		{Blank, Blank, Blank, Blank},
	}, tbl.Rows)
}

func TestBuild_BlankIsNotZero(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"0", "0"}, Units: []string{"m"}}}},
		{Name: "B", Lists: []ValueList{{Values: []string{"0"}, Units: []string{"m"}}}},
	}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)

	zero := tbl.Rows[1][0]
	assert.Equal(t, CellNumber, zero.Kind)
	assert.Equal(t, "0", zero.Text)
	assert.False(t, zero.IsBlank())

	blank := tbl.Rows[1][2]
	assert.True(t, blank.IsBlank())
	assert.NotEqual(t, zero, blank)
}

func TestBuild_UncertaintyLongerThanTable(t *testing.T) {
	unc := &Uncertainty{ValueList: ValueList{Values: []string{"0.1", "0.2"}}}

	tbl, err := Build("", resistance(), unc)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
	require.Len(t, tbl.Warnings, 1)
	assert.Contains(t, tbl.Warnings[0].Error(), "uncertainty")
}

// ============================================================
// Edge Cases
// ============================================================

func TestBuild_EmptyValues(t *testing.T) {
	qs := []Quantity{{Name: "A", Lists: []ValueList{{Units: []string{"m"}}}}}
	unc := &Uncertainty{}

	tbl, err := Build("", qs, unc)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount)
	assert.Empty(t, tbl.Rows)
	assert.Len(t, tbl.Headers, 2)
	assert.Equal(t, 4, tbl.Columns)
}

func TestBuild_NoQuantities(t *testing.T) {
	_, err := Build("Kosong", nil, nil)
	require.Error(t, err)
	assert.Equal(t, ErrEmptyResult, errors.Cause(err))
	assert.Contains(t, err.Error(), "Kosong")
}

func TestBuild_QuantityWithoutLists(t *testing.T) {
	qs := []Quantity{{Name: "A"}, {Name: "B", Lists: []ValueList{{Values: []string{"1"}, Units: []string{"m"}}}}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, []HeaderSpan{{Label: "B", Col: 0, Span: 2}}, tbl.Headers)
	assert.Len(t, tbl.Warnings, 1)
}

func TestBuild_NonNumericValue(t *testing.T) {
	qs := []Quantity{{Name: "A", Lists: []ValueList{{Values: []string{"< 0.01"}, Units: []string{"m"}}}}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, Cell{Kind: CellText, Text: "< 0.01"}, tbl.Rows[0][0])
}

func TestBuild_CoverageFirstNonEmptyWins(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"1"}, Units: []string{"m"}}},
			Coverage: Coverage{Probability: "95 %"}},
		{Name: "B", Lists: []ValueList{{Values: []string{"1"}, Units: []string{"m"}}},
			Coverage: Coverage{Factor: "2", Probability: "99 %"}},
	}
	unc := &Uncertainty{Coverage: Coverage{Factor: "3", Distribution: "rectangular"}}

	tbl, err := Build("", qs, unc)
	require.NoError(t, err)
	assert.Equal(t, Coverage{Factor: "2", Probability: "95 %", Distribution: "rectangular"}, tbl.Coverage)
}

func TestBuildWithOptions_Labels(t *testing.T) {
	unc := &Uncertainty{
		ValueList: ValueList{Values: []string{"0.001"}},
		Coverage:  Coverage{Factor: "2"},
	}
	opts := DefaultBuildOptions("en")
	opts.Labels.Uncertainty = "U (k=2)"

	tbl, err := BuildWithOptions("", resistance(), unc, opts)
	require.NoError(t, err)
	assert.Equal(t, "U (k=2)", tbl.Headers[1].Label)
	assert.Equal(t, "Coverage Factor: 2", tbl.Metadata[0].String())
}

func TestBuildWithOptions_Decimals(t *testing.T) {
	tests := []struct {
		name     string
		decimals *int
		want     string
	}{
		{"two", intPtr(2), "100.12"},
		{"zero", intPtr(0), "100"},
		{"unset uses default", nil, "100.12346"},
		{"negative rounds to integer", intPtr(-1), "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := BuildWithOptions("", resistance(), nil, BuildOptions{Decimals: tt.decimals})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Rows[0][0].Text)
		})
	}
}

func TestBuildWithOptions_ZeroValue(t *testing.T) {
	tbl, err := BuildWithOptions("", resistance(), &Uncertainty{ValueList: ValueList{Values: []string{"0.001"}}}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, num("100.12346", 100.12346), tbl.Rows[0][0])
	assert.Equal(t, "Ketidakpastian", tbl.Headers[1].Label)
}

func TestBuild_CompanionLongerThanTable(t *testing.T) {
	qs := []Quantity{{
		Name: "Suhu",
		Lists: []ValueList{
			{Values: []string{"20.1", "25.2"}, Units: []string{`\degreecelsius`}},
			{Values: []string{"0.05", "0.06", "0.07"}, Units: []string{`\degreecelsius`}},
		},
	}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.RowCount)

	require.Len(t, tbl.Warnings, 1)
	var sle *SubListError
	require.True(t, errors.As(tbl.Warnings[0], &sle))
	assert.Equal(t, 0, sle.Quantity)
	assert.Equal(t, 1, sle.List)
	assert.Equal(t, 2, sle.Column)
	assert.Contains(t, sle.Error(), "1 values beyond the 2 table rows")
}

func TestBuild_CompanionWithinOtherQuantityRows(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{
			{Values: []string{"1"}, Units: []string{"m"}},
			{Values: []string{"0.1", "0.2"}, Units: []string{"m"}},
		}},
		{Name: "B", Lists: []ValueList{{Values: []string{"1", "2"}, Units: []string{"s"}}}},
	}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Empty(t, tbl.Warnings)
	assert.Equal(t, []Cell{Blank, Blank, num("0.2", 0.2), unit("m"), num("2", 2), unit("s")}, tbl.Rows[1])
}

func TestBuild_ValueOutOfFloatRange(t *testing.T) {
	qs := []Quantity{{Name: "A", Lists: []ValueList{{Values: []string{"1e400", "-1e400", "2"}, Units: []string{"m"}}}}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, CellText, tbl.Rows[0][0].Kind)
	assert.Equal(t, "1"+strings.Repeat("0", 400), tbl.Rows[0][0].Text)
	assert.Equal(t, CellText, tbl.Rows[1][0].Kind)
	assert.Equal(t, num("2", 2), tbl.Rows[2][0])

	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rowCount":3`)
}

func TestBuild_HugeExponentKeptAsText(t *testing.T) {
	qs := []Quantity{{Name: "A", Lists: []ValueList{{Values: []string{"1e10000000"}, Units: []string{"m"}}}}}

	tbl, err := Build("", qs, nil)
	require.NoError(t, err)
	assert.Equal(t, Cell{Kind: CellText, Text: "1e10000000"}, tbl.Rows[0][0])
}

func intPtr(n int) *int { return &n }

// ============================================================
// JSON and Concurrency
// ============================================================

func TestTable_MarshalJSON(t *testing.T) {
	qs := []Quantity{
		{Name: "A", Lists: []ValueList{{Values: []string{"1", "2"}, Units: []string{"m", "s", "K"}}}},
	}
	tbl, err := Build("T", qs, nil)
	require.NoError(t, err)

	data, err := json.Marshal(tbl)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "T", decoded["title"])
	assert.Len(t, decoded["warnings"], 1)
	rows := decoded["rows"].([]any)
	first := rows[0].([]any)[0].(map[string]any)
	assert.Equal(t, "blank", first["kind"])
}

func TestBuild_Concurrent(t *testing.T) {
	var g errgroup.Group
	results := make([]*Table, 32)
	for i := range results {
		i := i // per-iteration copy for Go < 1.22
		g.Go(func() error {
			unc := &Uncertainty{
				ValueList: ValueList{Values: []string{"0.001"}},
				Coverage:  Coverage{Factor: "2"},
			}
			tbl, err := Build(fmt.Sprintf("t%d", i), resistance(), unc)
			results[i] = tbl
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, tbl := range results {
		assert.Equal(t, results[0].Rows, tbl.Rows)
	}
}
