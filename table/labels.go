package table

// Labels are the fixed texts a table carries besides quantity names.
type Labels struct {
	Uncertainty         string `yaml:"uncertainty"`
	CoverageFactor      string `yaml:"coverage_factor"`
	CoverageProbability string `yaml:"coverage_probability"`
	Distribution        string `yaml:"distribution"`
}

var builtinLabels = map[string]Labels{
	"id": {
		Uncertainty:         "Ketidakpastian",
		CoverageFactor:      "Faktor Cakupan",
		CoverageProbability: "Probabilitas Cakupan",
		Distribution:        "Distribusi",
	},
	"en": {
		Uncertainty:         "Uncertainty",
		CoverageFactor:      "Coverage Factor",
		CoverageProbability: "Coverage Probability",
		Distribution:        "Distribution",
	},
}

// DefaultLanguage is the label language used when none is configured.
const DefaultLanguage = "id"

// DefaultLabels returns the built-in labels for lang, falling back to
// DefaultLanguage.
func DefaultLabels(lang string) Labels {
	if l, ok := builtinLabels[lang]; ok {
		return l
	}
	return builtinLabels[DefaultLanguage]
}

// HasLanguage reports whether lang has built-in labels.
func HasLanguage(lang string) bool {
	_, ok := builtinLabels[lang]
	return ok
}

// Merge returns l with every non-empty field of o applied on top.
func (l Labels) Merge(o Labels) Labels {
	if o.Uncertainty != "" {
		l.Uncertainty = o.Uncertainty
	}
	if o.CoverageFactor != "" {
		l.CoverageFactor = o.CoverageFactor
	}
	if o.CoverageProbability != "" {
		l.CoverageProbability = o.CoverageProbability
	}
	if o.Distribution != "" {
		l.Distribution = o.Distribution
	}
	return l
}
