package cgen

import (
	"fmt"

	"co/internal/symbols"
)

// nativeHelpers maps the signature string of a prelude native to the C
// helper the preamble defines. A reachable native missing from the table
// is an internal compiler error.
var nativeHelpers = map[string]string{
	// int arithmetic and comparisons
	"int int.plus(int)":             "_add",
	"int int.minus(int)":            "_sub",
	"int int.times(int)":            "_mul",
	"int int.div(int)":              "_div",
	"int int.unaryMinus()":          "_neg",
	"int int.power(int)":            "_powInt",
	"bool int.lessThan(int)":        "_lt",
	"bool int.greaterThan(int)":     "_gt",
	"bool int.lessOrEquals(int)":    "_le",
	"bool int.greaterOrEquals(int)": "_ge",
	"bool int.equals(int)":          "_eq",
	"bool int.notEquals(int)":       "_ne",
	"double int.toDouble()":         "_intToDbl",

	// double arithmetic and comparisons
	"double double.plus(double)":          "_add",
	"double double.minus(double)":         "_sub",
	"double double.times(double)":         "_mul",
	"double double.div(double)":           "_div",
	"double double.unaryMinus()":          "_neg",
	"double double.power(double)":         "_powDbl",
	"bool double.lessThan(double)":        "_lt",
	"bool double.greaterThan(double)":     "_gt",
	"bool double.lessOrEquals(double)":    "_le",
	"bool double.greaterOrEquals(double)": "_ge",
	"bool double.equals(double)":          "_eq",
	"bool double.notEquals(double)":       "_ne",
	"int double.toInt()":                  "_dblToInt",

	// bool connectives
	"bool bool.and(bool)":       "_and",
	"bool bool.or(bool)":        "_or",
	"bool bool.not()":           "_not",
	"bool bool.equals(bool)":    "_eq",
	"bool bool.notEquals(bool)": "_ne",

	// primitive constructors
	"int()":           "_zeroInt",
	"int(int)":        "_id",
	"int(double)":     "_dblToInt",
	"double()":        "_zeroDbl",
	"double(double)":  "_id",
	"double(int)":     "_intToDbl",
	"bool()":          "_zeroBool",
	"bool(bool)":      "_id",

	// I/O and checks
	"void print(int)":        "_writeInt",
	"void print(double)":     "_writeDbl",
	"void print(bool)":       "_writeBool",
	"void println(int)":      "_writeIntLn",
	"void println(double)":   "_writeDblLn",
	"void println(bool)":     "_writeBoolLn",
	"void writeInt(int)":     "_writeInt",
	"void writeIntLn(int)":   "_writeIntLn",
	"void writeDouble(double)":   "_writeDbl",
	"void writeDoubleLn(double)": "_writeDblLn",
	"void assert(bool)":      "_assert",
	"int readInt()":          "_readInt",
	"double readDouble()":    "_readDouble",
}

// helperFor resolves a native symbol to its helper, or fails as an
// internal error.
func (e *Emitter) helperFor(sym symbols.SymbolID) (string, error) {
	sig := e.table.SignatureString(sym)
	if helper, ok := nativeHelpers[sig]; ok {
		return helper, nil
	}
	return "", fmt.Errorf("cgen: no native mapping for %q", sig)
}
