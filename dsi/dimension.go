package dsi

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/unit"
)

// InformationDim is the dimension of bit and byte. The SI has none.
var InformationDim = unit.NewDimension("bit")

// ErrNoLinearScale is returned by Dimension for logarithmic units.
var ErrNoLinearScale = errors.New("dsi: unit has no linear scale")

const (
	mass   = unit.MassDim
	length = unit.LengthDim
	tm     = unit.TimeDim
	curr   = unit.CurrentDim
	temp   = unit.TemperatureDim
	mole   = unit.MoleDim
	lum    = unit.LuminousIntensityDim
	angle  = unit.AngleDim
)

type scale struct {
	factor float64
	dims   unit.Dimensions
}

var prefixScales = map[string]float64{
	`\yotta`: 1e24, `\zetta`: 1e21, `\exa`: 1e18, `\peta`: 1e15,
	`\tera`: 1e12, `\giga`: 1e9, `\mega`: 1e6, `\kilo`: 1e3,
	`\hecto`: 1e2, `\deca`: 1e1, `\deci`: 1e-1, `\centi`: 1e-2,
	`\milli`: 1e-3, `\micro`: 1e-6, `\nano`: 1e-9, `\pico`: 1e-12,
	`\femto`: 1e-15, `\atto`: 1e-18, `\zepto`: 1e-21, `\yocto`: 1e-24,

	`\kibi`: 1 << 10, `\mebi`: 1 << 20, `\gibi`: 1 << 30, `\tebi`: 1 << 40,
	`\pebi`: 1 << 50, `\exbi`: 1 << 60, `\zebi`: 1 << 70, `\yobi`: 1 << 80,
}

// unitScales expresses every linear unit in coherent SI units. Degree
// Celsius is taken as a temperature interval, the way uncertainties use it.
var unitScales = map[string]scale{
	`\metre`:    {1, unit.Dimensions{length: 1}},
	`\kilogram`: {1, unit.Dimensions{mass: 1}},
	`\gram`:     {1e-3, unit.Dimensions{mass: 1}},
	`\second`:   {1, unit.Dimensions{tm: 1}},
	`\ampere`:   {1, unit.Dimensions{curr: 1}},
	`\kelvin`:   {1, unit.Dimensions{temp: 1}},
	`\mole`:     {1, unit.Dimensions{mole: 1}},
	`\candela`:  {1, unit.Dimensions{lum: 1}},

	`\hertz`:         {1, unit.Dimensions{tm: -1}},
	`\radian`:        {1, unit.Dimensions{angle: 1}},
	`\steradian`:     {1, unit.Dimensions{angle: 2}},
	`\newton`:        {1, unit.Dimensions{mass: 1, length: 1, tm: -2}},
	`\pascal`:        {1, unit.Dimensions{mass: 1, length: -1, tm: -2}},
	`\joule`:         {1, unit.Dimensions{mass: 1, length: 2, tm: -2}},
	`\watt`:          {1, unit.Dimensions{mass: 1, length: 2, tm: -3}},
	`\coulomb`:       {1, unit.Dimensions{curr: 1, tm: 1}},
	`\volt`:          {1, unit.Dimensions{mass: 1, length: 2, tm: -3, curr: -1}},
	`\farad`:         {1, unit.Dimensions{mass: -1, length: -2, tm: 4, curr: 2}},
	`\ohm`:           {1, unit.Dimensions{mass: 1, length: 2, tm: -3, curr: -2}},
	`\siemens`:       {1, unit.Dimensions{mass: -1, length: -2, tm: 3, curr: 2}},
	`\weber`:         {1, unit.Dimensions{mass: 1, length: 2, tm: -2, curr: -1}},
	`\tesla`:         {1, unit.Dimensions{mass: 1, tm: -2, curr: -1}},
	`\henry`:         {1, unit.Dimensions{mass: 1, length: 2, tm: -2, curr: -2}},
	`\degreecelsius`: {1, unit.Dimensions{temp: 1}},
	`\lumen`:         {1, unit.Dimensions{lum: 1, angle: 2}},
	`\lux`:           {1, unit.Dimensions{lum: 1, angle: 2, length: -2}},
	`\becquerel`:     {1, unit.Dimensions{tm: -1}},
	`\sievert`:       {1, unit.Dimensions{length: 2, tm: -2}},
	`\gray`:          {1, unit.Dimensions{length: 2, tm: -2}},
	`\katal`:         {1, unit.Dimensions{mole: 1, tm: -1}},

	`\minute`:           {60, unit.Dimensions{tm: 1}},
	`\hour`:             {3600, unit.Dimensions{tm: 1}},
	`\day`:              {86400, unit.Dimensions{tm: 1}},
	`\degree`:           {math.Pi / 180, unit.Dimensions{angle: 1}},
	`\arcminute`:        {math.Pi / 10800, unit.Dimensions{angle: 1}},
	`\arcsecond`:        {math.Pi / 648000, unit.Dimensions{angle: 1}},
	`\hectare`:          {1e4, unit.Dimensions{length: 2}},
	`\litre`:            {1e-3, unit.Dimensions{length: 3}},
	`\tonne`:            {1e3, unit.Dimensions{mass: 1}},
	`\electronvolt`:     {1.602176634e-19, unit.Dimensions{mass: 1, length: 2, tm: -2}},
	`\dalton`:           {1.66053906660e-27, unit.Dimensions{mass: 1}},
	`\astronomicalunit`: {1.495978707e11, unit.Dimensions{length: 1}},

	`\bit`:     {1, unit.Dimensions{InformationDim: 1}},
	`\byte`:    {8, unit.Dimensions{InformationDim: 1}},
	`\percent`: {1e-2, nil},
	`\ppm`:     {1e-6, nil},
}

type dimTerm struct {
	macro string
	scale scale
	exp   float64
}

// Dimension evaluates a canonical unit string to its value in coherent SI
// units and its dimensions: `\kilo\metre\hour\tothe{-1}` is 1/3.6 m s^-1.
//
// Unlike Decompile it is strict. Text that is not a macro, a dangling
// prefix, a fractional exponent or a logarithmic unit (neper, decibel) is
// an error.
func Dimension(canonical string) (*unit.Unit, error) {
	terms, err := parseTerms(canonical)
	if err != nil {
		return nil, err
	}

	u := unit.New(1, nil)
	for _, t := range terms {
		if t.exp != math.Trunc(t.exp) {
			return nil, errors.Errorf("dsi: fractional exponent %s on %s has no dimension",
				formatExponent(t.exp), t.macro)
		}
		n := int(t.exp)
		base := unit.New(t.scale.factor, t.scale.dims)
		if n < 0 {
			base = unit.New(1/t.scale.factor, invertDims(t.scale.dims))
			n = -n
		}
		for k := 0; k < n; k++ {
			u.Mul(base)
		}
	}
	return u, nil
}

// SameDimension reports whether two canonical strings measure the same kind
// of quantity, e.g. `\joule` and `\newton\metre`.
func SameDimension(a, b string) (bool, error) {
	ua, err := Dimension(a)
	if err != nil {
		return false, err
	}
	ub, err := Dimension(b)
	if err != nil {
		return false, err
	}
	return unit.DimensionsMatch(ua, ub), nil
}

func parseTerms(s string) ([]dimTerm, error) {
	var (
		terms  []dimTerm
		prefix *Entry
		hasExp bool
	)

	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], ExponentMarker+"{") {
			if len(terms) == 0 || prefix != nil || hasExp {
				return nil, errors.Errorf("dsi: exponent without unit at offset %d in %q", i, s)
			}
			i += len(ExponentMarker) + 1
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, errors.Errorf("dsi: unterminated exponent in %q", s)
			}
			exp, err := strconv.ParseFloat(s[i:i+end], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dsi: exponent in %q", s)
			}
			terms[len(terms)-1].exp = exp
			hasExp = true
			i += end + 1
			continue
		}

		e, n := macros.longestMatch(s[i:])
		if e == nil {
			return nil, errors.Errorf("dsi: no unit macro at offset %d in %q", i, s)
		}
		i += n

		if e.Kind != KindBaseUnit {
			if prefix != nil {
				return nil, errors.Errorf("dsi: prefix %s directly after prefix %s", e.Macro, prefix.Macro)
			}
			prefix = e
			continue
		}

		sc, ok := unitScales[e.Macro]
		if !ok {
			return nil, errors.Wrap(ErrNoLinearScale, e.Macro)
		}
		macro := e.Macro
		if prefix != nil {
			sc.factor *= prefixScales[prefix.Macro]
			macro = prefix.Macro + macro
			prefix = nil
		}
		terms = append(terms, dimTerm{macro: macro, scale: sc, exp: 1})
		hasExp = false
	}

	if prefix != nil {
		return nil, errors.Errorf("dsi: prefix %s without unit in %q", prefix.Macro, s)
	}
	return terms, nil
}

func invertDims(d unit.Dimensions) unit.Dimensions {
	inv := make(unit.Dimensions, len(d))
	for k, v := range d {
		inv[k] = -v
	}
	return inv
}
