package classify_test

import (
	"reflect"
	"testing"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/classify"
	"github.com/cwbudde/exiftrans/internal/emit"
	"github.com/cwbudde/exiftrans/internal/ingest"
	"github.com/cwbudde/exiftrans/internal/passes"
)

func analyze(t *testing.T, doc string, et ast.ExpressionType) *classify.Context {
	t.Helper()
	root, err := ingest.ParseString(doc)
	if err != nil {
		t.Fatalf("ingest.ParseString: %v", err)
	}
	return classify.Analyze(passes.Normalize(root), et)
}

func TestAnalyzeVariableOnly(t *testing.T) {
	ctx := analyze(t, `{"class": "Statement", "children": [
		{"class": "Token.Symbol", "content": "$val", "symbol_type": "scalar"}
	]}`, ast.ValueConv)
	if !ctx.HasVariables || ctx.HasOperators || ctx.HasFunctions || ctx.HasSelfRefs {
		t.Fatalf("flags: %+v", ctx)
	}
	if classify.Route(ctx) != classify.PathVariableOnly {
		t.Fatalf("route = %v", classify.Route(ctx))
	}
}

func TestAnalyzeArithmetic(t *testing.T) {
	ctx := analyze(t, `{"class": "Statement", "children": [
		{"class": "Token.Symbol", "content": "$val", "symbol_type": "scalar"},
		{"class": "Token.Operator", "content": "/"},
		{"class": "Token.Number", "content": "100", "numeric_value": 100}
	]}`, ast.ValueConv)
	if !ctx.HasVariables || !ctx.HasOperators {
		t.Fatalf("flags: %+v", ctx)
	}
	if classify.Route(ctx) != classify.PathArithmetic {
		t.Fatalf("route = %v", classify.Route(ctx))
	}
}

func TestAnalyzeFunctionCallRoutesToRegistry(t *testing.T) {
	ctx := analyze(t, `{"class": "Statement", "children": [
		{"class": "Token.Word", "content": "Image::ExifTool::Canon::CanonEv"},
		{"class": "Structure.List", "structure_bounds": "()", "children": [
			{"class": "Token.Symbol", "content": "$val", "symbol_type": "scalar"}
		]}
	]}`, ast.ValueConv)
	if !ctx.HasFunctions {
		t.Fatalf("flags: %+v", ctx)
	}
	if got, want := ctx.Functions, []string{"Image::ExifTool::Canon::CanonEv"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("functions = %v, want %v", got, want)
	}
	if classify.Route(ctx) != classify.PathRegistry {
		t.Fatalf("route = %v", classify.Route(ctx))
	}
}

func TestAnalyzeSelfRefExtractsFieldAndWidensSignature(t *testing.T) {
	ctx := analyze(t, `{"class": "Statement", "children": [
		{"class": "Structure.Subscript", "structure_bounds": "{}", "children": [
			{"class": "Token.Symbol", "content": "$$self", "symbol_type": "scalar"},
			{"class": "Token.Word", "content": "Model"}
		]}
	]}`, ast.Condition)
	if !ctx.HasSelfRefs {
		t.Fatalf("flags: %+v", ctx)
	}
	if got, want := ctx.SelfFields, []string{"Model"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("self fields = %v, want %v", got, want)
	}
	if got := emit.Signature("is_canon", ctx); got != "fn is_canon(val: &TagValue, ctx: &Context) -> bool" {
		t.Fatalf("signature = %q", got)
	}
}

func TestSelfFieldOrderIsInsertionOrder(t *testing.T) {
	ctx := analyze(t, `{"class": "Statement", "children": [
		{"class": "Structure.Subscript", "structure_bounds": "{}", "children": [
			{"class": "Token.Symbol", "content": "$$self", "symbol_type": "scalar"},
			{"class": "Token.Word", "content": "Model"}
		]},
		{"class": "Structure.Subscript", "structure_bounds": "{}", "children": [
			{"class": "Token.Symbol", "content": "$$self", "symbol_type": "scalar"},
			{"class": "Token.Word", "content": "Make"}
		]},
		{"class": "Structure.Subscript", "structure_bounds": "{}", "children": [
			{"class": "Token.Symbol", "content": "$$self", "symbol_type": "scalar"},
			{"class": "Token.Word", "content": "Model"}
		]}
	]}`, ast.Condition)
	if got, want := ctx.SelfFields, []string{"Model", "Make"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("self fields = %v, want %v", got, want)
	}
}
