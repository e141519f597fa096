package table

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxExponent bounds the e/E exponent ParseDecimal accepts. Larger
// exponents would expand the coefficient to millions of digits.
const maxExponent = 400

// Decimal is an exact decimal number: value = coef * 10^(-scale).
//
// Measurement values arrive as text and are rounded on their decimal
// digits, so 0.000005 rounds up to 0.00001 even though its nearest float64
// is slightly below the tie.
type Decimal struct {
	coef  *big.Int
	scale int
}

// ParseDecimal parses "123.45", "-0.001", "+7", "1.5e-3" or "2E4".
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, fmt.Errorf("invalid decimal: empty")
	}

	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		v, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Decimal{}, fmt.Errorf("invalid decimal exponent: %s", s)
		}
		if v > maxExponent || v < -maxExponent {
			return Decimal{}, fmt.Errorf("decimal exponent out of range: %s", s)
		}
		mantissa, exp = s[:i], v
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	digits := strings.TrimLeft(intPart, "+-")
	if len(intPart)-len(digits) > 1 || digits+fracPart == "" || strings.ContainsAny(fracPart, "+-") {
		return Decimal{}, fmt.Errorf("invalid decimal: %s", s)
	}

	coef := new(big.Int)
	if _, ok := coef.SetString(intPart+fracPart, 10); !ok {
		return Decimal{}, fmt.Errorf("invalid decimal: %s", s)
	}

	d := Decimal{coef: coef, scale: len(fracPart) - exp}
	if d.scale < 0 {
		d.coef.Mul(d.coef, pow10(-d.scale))
		d.scale = 0
	}
	return d, nil
}

// Round returns d rounded to places fractional digits, ties away from zero.
// Negative places round to an integer.
func (d Decimal) Round(places int) Decimal {
	if places < 0 {
		places = 0
	}
	if d.coef == nil {
		return Decimal{coef: new(big.Int)}
	}
	if d.scale <= places {
		return d
	}

	div := pow10(d.scale - places)
	q, r := new(big.Int).QuoRem(d.coef, div, new(big.Int))

	// |r| * 2 >= div rounds away from zero
	r.Abs(r)
	r.Lsh(r, 1)
	if r.Cmp(div) >= 0 {
		if d.coef.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return Decimal{coef: q, scale: places}
}

// String returns the plain decimal text with trailing fractional zeros
// removed. Negative zero prints as "0".
func (d Decimal) String() string {
	if d.coef == nil || d.coef.Sign() == 0 {
		return "0"
	}

	coefStr := d.coef.String()
	negative := false
	if coefStr[0] == '-' {
		negative = true
		coefStr = coefStr[1:]
	}

	result := coefStr
	if d.scale > 0 {
		for len(coefStr) < d.scale+1 {
			coefStr = "0" + coefStr
		}
		insertPos := len(coefStr) - d.scale
		result = strings.TrimRight(coefStr[:insertPos]+"."+coefStr[insertPos:], "0")
		result = strings.TrimSuffix(result, ".")
	}

	if negative {
		result = "-" + result
	}
	return result
}

// Float64 converts the decimal to float64. Precision may be lost; a value
// outside the float64 range is an error.
func (d Decimal) Float64() (float64, error) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("decimal out of float64 range: %s", d)
	}
	return f, nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
