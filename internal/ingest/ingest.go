// Package ingest parses the external PPI JSON dump into internal/ast
// nodes. It is total on well-formed
// JSON, does not interpret semantics, and preserves unknown classes
// verbatim so downstream passes may still walk them; unknown fields are
// ignored.
package ingest

import (
	"github.com/tidwall/gjson"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/errors"
	"github.com/cwbudde/exiftrans/internal/log"
)

// Parse parses a PPI JSON document into an ast.Node tree. gjson is used in
// place of a struct-tagged json.Unmarshal so that unknown/future fields on
// each object require no allowlist maintenance here — the ingestor's only
// job is structural, not semantic.
func Parse(doc []byte) (*ast.Node, error) {
	if !gjson.ValidBytes(doc) {
		return nil, errors.New(errors.MalformedAst, string(doc), "input is not valid JSON")
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, errors.New(errors.MalformedAst, string(doc), "root PPI node must be a JSON object")
	}
	counter := 0
	node, err := parseNode(root, &counter)
	if err != nil {
		return nil, err
	}
	log.L().Sugar().Debugw("ingested PPI document", "nodes", counter)
	return node, nil
}

func parseNode(v gjson.Result, counter *int) (*ast.Node, error) {
	classResult := v.Get("class")
	if !classResult.Exists() || classResult.Type != gjson.String {
		return nil, errors.New(errors.MalformedAst, v.Raw, "PPI node missing required \"class\" string field")
	}

	n := &ast.Node{
		Class: ast.Class(classResult.String()),
		Pos:   *counter,
	}
	*counter++

	if content := v.Get("content"); content.Exists() {
		n.Content = content.String()
		n.HasContent = true
	}
	if symbolType := v.Get("symbol_type"); symbolType.Exists() {
		n.SymbolType = ast.SymbolType(symbolType.String())
		n.HasSymbolType = true
	}
	if numeric := v.Get("numeric_value"); numeric.Exists() {
		n.NumericValue = numeric.Float()
		n.HasNumericValue = true
	}
	if str := v.Get("string_value"); str.Exists() {
		n.StringValue = str.String()
		n.HasStringValue = true
	}
	if bounds := v.Get("structure_bounds"); bounds.Exists() {
		n.StructureBounds = bounds.String()
	}

	children := v.Get("children")
	if children.Exists() && children.IsArray() {
		var parseErr error
		children.ForEach(func(_, child gjson.Result) bool {
			if !child.IsObject() {
				parseErr = errors.New(errors.MalformedAst, child.Raw, "child node must be a JSON object")
				return false
			}
			childNode, err := parseNode(child, counter)
			if err != nil {
				parseErr = err
				return false
			}
			n.Children = append(n.Children, childNode)
			return true
		})
		if parseErr != nil {
			return nil, parseErr
		}
	}

	return n, nil
}

// ParseString is a convenience wrapper around Parse for callers holding a
// Go string rather than a []byte (e.g. CLI flags).
func ParseString(doc string) (*ast.Node, error) {
	return Parse([]byte(doc))
}
