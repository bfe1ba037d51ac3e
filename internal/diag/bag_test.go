package diag

import (
	"testing"

	"co/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(16)
	bag.Add(NewWarning(UnreachableCode, span(20, 22), "late"))
	bag.Add(NewError(UnknownName, span(4, 5), "early"))
	bag.Add(NewError(InvalidCallArguments, span(4, 5), "same spot"))
	bag.Sort()

	items := bag.Items()
	if items[0].Code != InvalidCallArguments {
		t.Fatalf("lowest code at the same span must sort first, got %v", items[0].Code)
	}
	if items[2].Code != UnreachableCode {
		t.Fatalf("latest span must sort last, got %v", items[2].Code)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(UnknownName, span(0, 1), "a")) {
		t.Fatalf("first add must succeed")
	}
	if !bag.Add(NewError(UnknownName, span(1, 2), "b")) {
		t.Fatalf("second add must succeed")
	}
	if bag.Add(NewError(UnknownName, span(2, 3), "c")) {
		t.Fatalf("third add must be dropped")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d", bag.Len())
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(UnknownName, span(0, 1), "x"))
	bag.Add(NewError(UnknownName, span(0, 1), "x"))
	bag.Add(NewError(UnknownName, span(5, 6), "y"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Dedup left %d items", bag.Len())
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	bag := NewBag(4)
	bag.Add(NewWarning(ShadowedDefinition, span(0, 1), "w"))
	if bag.HasErrors() {
		t.Fatalf("warnings are not errors")
	}
	bag.Add(NewError(UnknownName, span(0, 1), "e"))
	if !bag.HasErrors() {
		t.Fatalf("error not detected")
	}
}

func TestCodeFormat(t *testing.T) {
	if got := UnknownName.String(); got != "E0017" {
		t.Fatalf("UnknownName = %s", got)
	}
	if got := MissingReturnStatement.String(); got != "E0020" {
		t.Fatalf("MissingReturnStatement = %s", got)
	}
	if got := DuplicateFunctionDefinition.String(); got != "E0030" {
		t.Fatalf("DuplicateFunctionDefinition = %s", got)
	}
}
