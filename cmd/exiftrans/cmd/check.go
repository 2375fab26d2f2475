package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exiftrans/internal/classify"
	"github.com/cwbudde/exiftrans/internal/ingest"
	"github.com/cwbudde/exiftrans/internal/passes"
	"github.com/cwbudde/exiftrans/internal/registry"
)

var checkType string

var checkCmd = &cobra.Command{
	Use:   "check <file.json>",
	Short: "Classify an expression and report its routing decision without emitting Rust",
	Long: `check parses and normalizes a PPI JSON expression, runs the
classifier, and reports the routing decision and registry-lookup result
without emitting Rust — useful for auditing which expressions will
require manual implementations before a full batch run.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkType, "type", "valueconv", "expression type: printconv, valueconv, or condition")
}

func runCheck(_ *cobra.Command, args []string) error {
	path := args[0]
	et, err := parseExpressionType(checkType)
	if err != nil {
		return err
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	root, err := ingest.Parse(doc)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	normalized := passes.Normalize(root)
	ctx := classify.Analyze(normalized, et)
	route := classify.Route(ctx)

	source := reconstructSource(normalized)

	fmt.Printf("type:          %s\n", et)
	fmt.Printf("route:         %s\n", route)
	fmt.Printf("has_variables: %t\n", ctx.HasVariables)
	fmt.Printf("has_operators: %t\n", ctx.HasOperators)
	fmt.Printf("has_functions: %t\n", ctx.HasFunctions)
	fmt.Printf("has_self_refs: %t\n", ctx.HasSelfRefs)
	if len(ctx.SelfFields) > 0 {
		fmt.Printf("self_fields:   %v\n", ctx.SelfFields)
	}
	if len(ctx.Functions) > 0 {
		fmt.Printf("functions:     %v\n", ctx.Functions)
	}
	fmt.Printf("needs_lookup:  %t\n", registry.NeedsLookup(source))
	if entry, ok := registry.Lookup(source); ok {
		fmt.Printf("registry:      %s (%s)\n", entry.QualifiedName(), entry.Category)
	} else {
		fmt.Println("registry:      no match")
	}
	return nil
}
