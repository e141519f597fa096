// Package table flattens measurement result sets into aligned cell
// matrices for calibration certificates.
//
// A result set is a list of quantities, each with one or more value/unit
// sub-lists, plus an optional expanded-uncertainty list. Build lays every
// sub-list out as a (value, unit) column pair, merges a header over each
// quantity, rounds values to five decimals (ties away from zero) and turns
// D-SI unit markup into human symbols with dsi.Decompile. Coverage factor,
// coverage probability and distribution end up as metadata rows under the
// body.
//
// Rows past a sub-list's own length hold the Blank cell, never "0".
//
// Rendering is left to the caller; Emit writes a plain tab block for
// inspection and Table marshals to JSON.
package table
