package table

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ResultSet is a result table in file form. YAML and JSON are both read:
//
//	title: Hasil Kalibrasi
//	quantities:
//	  - name: Resistansi
//	    lists:
//	      - values: ["100.12345678"]
//	        units: ['\ohm']
//	uncertainty:
//	  values: ["0.001"]
//	  coverage_factor: "2"
type ResultSet struct {
	Title       string       `yaml:"title"`
	Quantities  []Quantity   `yaml:"quantities"`
	Uncertainty *Uncertainty `yaml:"uncertainty"`
}

// DecodeResultSet reads one result set document from r.
func DecodeResultSet(r io.Reader) (*ResultSet, error) {
	var rs ResultSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		if err == io.EOF {
			return nil, errors.New("table: empty result set document")
		}
		return nil, errors.Wrap(err, "table: decode result set")
	}
	return &rs, nil
}

// Build tabularizes the result set.
func (rs *ResultSet) Build(opts BuildOptions) (*Table, error) {
	return BuildWithOptions(rs.Title, rs.Quantities, rs.Uncertainty, opts)
}
