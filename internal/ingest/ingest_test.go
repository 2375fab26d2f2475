package ingest_test

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/ingest"
)

func TestParseSimpleArithmetic(t *testing.T) {
	doc := `{
		"class": "Statement",
		"children": [
			{"class": "Token.Symbol", "content": "$val", "symbol_type": "scalar"},
			{"class": "Token.Operator", "content": "/"},
			{"class": "Token.Number", "content": "100", "numeric_value": 100}
		]
	}`

	root, err := ingest.ParseString(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Class != ast.ClassStatement {
		t.Fatalf("root class = %q, want Statement", root.Class)
	}
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}
	if root.Children[0].SymbolType != ast.SymbolScalar {
		t.Fatalf("symbol_type = %q, want scalar", root.Children[0].SymbolType)
	}
	if root.Children[2].NumericValue != 100 {
		t.Fatalf("numeric_value = %v, want 100", root.Children[2].NumericValue)
	}
}

func TestParsePreservesUnknownClass(t *testing.T) {
	doc := `{"class": "Token.FutureThing", "content": "whatever"}`
	root, err := ingest.ParseString(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Class != "Token.FutureThing" {
		t.Fatalf("class = %q, want Token.FutureThing preserved verbatim", root.Class)
	}
}

func TestParseMissingClassIsMalformed(t *testing.T) {
	_, err := ingest.ParseString(`{"content": "oops"}`)
	if err == nil {
		t.Fatal("expected error for missing class field")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := ingest.ParseString(`not json`)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseNestedChildren(t *testing.T) {
	doc := `{
		"class": "Document",
		"children": [
			{"class": "Statement", "children": [
				{"class": "Token.Symbol", "content": "$val"}
			]}
		]
	}`
	root, err := ingest.ParseString(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 1 || len(root.Children[0].Children) != 1 {
		t.Fatalf("unexpected tree shape: %+v", root)
	}
}
