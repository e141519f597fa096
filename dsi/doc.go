// Package dsi converts unit expressions between informal human notation and
// D-SI macro markup.
//
// # Notation
//
// Human:      kg.m/s2, kg*m*s^-2, MiB, °C, μm
// Canonical:  \kilogram\metre\second\tothe{-2}
//
// Multiplication is written '.', '*', '·' or '×'. Only the first '/' divides;
// every factor after it goes to the denominator and has its exponent
// negated. A trailing signed number on a factor is its exponent (m2, s-1,
// m0.5, s^-2).
//
// # Dictionary
//
// The dictionary is a fixed list of SI prefixes, binary prefixes and units.
// Symbols are compared after NFKC normalization, so the micro sign and the
// Greek mu, or the ohm sign and the Greek omega, resolve to the same macro.
// Binary prefixes are only accepted in front of bit and B.
//
// # Error Tolerance
//
// Neither direction fails. Compile carries unknown or malformed factors into
// the canonical string verbatim and reports them as warnings through
// CompileResult. Decompile copies anything that is not a macro.
//
// Dimension is the one strict reader: it evaluates a canonical string to
// an SI scale factor and dimensions, and fails on anything it cannot place.
package dsi
