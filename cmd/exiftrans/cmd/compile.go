package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exiftrans/internal/ast"
	"github.com/cwbudde/exiftrans/internal/compile"
	"github.com/cwbudde/exiftrans/internal/errors"
	"github.com/cwbudde/exiftrans/internal/ingest"
)

var (
	compileType    string
	compileSource  string
	compileOutput  string
	compileBatch   bool
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.json>",
	Short: "Compile a PPI JSON expression (or a directory of them) to Rust",
	Long: `Compile one PPI-parser JSON document describing a
Perl expression into one emitted Rust function.

Examples:
  # Compile a single expression
  exiftrans compile expr.json --type valueconv -o expr.rs

  # Batch-compile a directory of *.json expressions
  exiftrans compile --batch exprs/`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&compileType, "type", "valueconv", "expression type: printconv, valueconv, or condition")
	compileCmd.Flags().StringVar(&compileSource, "source", "", "original Perl expression text (reconstructed from the PPI tree if omitted)")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout for a single file)")
	compileCmd.Flags().BoolVar(&compileBatch, "batch", false, "treat the argument as a directory of *.json expressions")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(_ *cobra.Command, args []string) error {
	et, err := parseExpressionType(compileType)
	if err != nil {
		return err
	}

	if compileBatch {
		return compileBatchDir(args[0], et)
	}
	return compileOneFile(args[0], et)
}

func compileOneFile(path string, et ast.ExpressionType) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	name := functionNameFromPath(path)
	perlSource := compileSource
	if perlSource == "" {
		if root, err := ingest.Parse(doc); err == nil {
			perlSource = reconstructSource(root)
		}
	}

	result := compile.Expression(name, perlSource, doc, et)
	if result.Diagnostic != nil {
		fmt.Fprint(os.Stderr, result.Diagnostic.Format())
		return fmt.Errorf("compilation refused for %s: %s", path, result.Diagnostic.Kind)
	}

	if compileOutput == "" {
		fmt.Print(result.Rust)
		return nil
	}
	if err := os.WriteFile(compileOutput, []byte(result.Rust), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", compileOutput, err)
	}
	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiled %s -> %s\n", path, compileOutput)
	}
	return nil
}

// batchJob is one unit of work in the batch worker pool: a directory of
// expressions is fanned across GOMAXPROCS workers, each compiling one
// expression start-to-finish with no shared mutable state beyond the
// read-only precedence/registry singletons.
type batchJob struct {
	index int
	path  string
}

type batchOutcome struct {
	index  int
	path   string
	result compile.Result
}

func compileBatchDir(dir string, et ast.ExpressionType) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var jobs []batchJob
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		jobs = append(jobs, batchJob{index: len(jobs), path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].path < jobs[j].path })
	for i := range jobs {
		jobs[i].index = i
	}

	outcomes := make([]batchOutcome, len(jobs))
	jobCh := make(chan batchJob)
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				outcomes[job.index] = batchOutcome{index: job.index, path: job.path, result: compileBatchOne(job.path, et)}
			}
		}()
	}
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	// Results are written and summarized in input order regardless of
	// which worker finished first, so batch output is deterministic.
	var deferred []string
	for _, o := range outcomes {
		if o.result.Diagnostic != nil {
			deferred = append(deferred, fmt.Sprintf("%s: %s", o.path, o.result.Diagnostic.Kind))
			continue
		}
		outPath := strings.TrimSuffix(o.path, filepath.Ext(o.path)) + ".rs"
		if err := os.WriteFile(outPath, []byte(o.result.Rust), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		if compileVerbose {
			fmt.Fprintf(os.Stderr, "Compiled %s -> %s\n", o.path, outPath)
		}
	}

	fmt.Printf("Compiled %d/%d expressions\n", len(outcomes)-len(deferred), len(outcomes))
	if len(deferred) > 0 {
		fmt.Println("Deferred to manual implementation:")
		for _, d := range deferred {
			fmt.Printf("  %s\n", d)
		}
	}
	return nil
}

func compileBatchOne(path string, et ast.ExpressionType) compile.Result {
	name := functionNameFromPath(path)
	doc, err := os.ReadFile(path)
	if err != nil {
		return compile.Result{
			Name:       name,
			Diagnostic: errors.New(errors.MalformedAst, path, err.Error()),
		}
	}
	perlSource := ""
	if root, err := ingest.Parse(doc); err == nil {
		perlSource = reconstructSource(root)
	}
	return compile.Expression(name, perlSource, doc, et)
}

func functionNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, base)
	if base == "" {
		return "convert"
	}
	return base
}
