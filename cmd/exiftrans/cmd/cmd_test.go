package cmd

import (
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/ingest"
)

func TestParseExpressionType(t *testing.T) {
	cases := []struct {
		in   string
		want ast.ExpressionType
	}{
		{"printconv", ast.PrintConv},
		{"PrintConv", ast.PrintConv},
		{"valueconv", ast.ValueConv},
		{"condition", ast.Condition},
	}
	for _, c := range cases {
		got, err := parseExpressionType(c.in)
		if err != nil {
			t.Fatalf("parseExpressionType(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parseExpressionType(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseExpressionTypeRejectsUnknown(t *testing.T) {
	if _, err := parseExpressionType("bogus"); err == nil {
		t.Fatal("expected an error for an unknown expression type")
	}
}

func TestFunctionNameFromPath(t *testing.T) {
	cases := map[string]string{
		"expr.json":              "expr",
		"/tmp/canon-ev.json":     "canon_ev",
		"/a/b/c/Lens ID 01.json": "Lens_ID_01",
	}
	for in, want := range cases {
		if got := functionNameFromPath(in); got != want {
			t.Fatalf("functionNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReconstructSource(t *testing.T) {
	root, err := ingest.ParseString(`{"class": "Statement", "children": [
		{"class": "Token.Symbol", "content": "$val"},
		{"class": "Token.Operator", "content": "/"},
		{"class": "Token.Number", "content": "100"}
	]}`)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if got, want := reconstructSource(root), "$val / 100"; got != want {
		t.Fatalf("reconstructSource = %q, want %q", got, want)
	}
}
