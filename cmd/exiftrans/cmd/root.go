// Package cmd implements the exiftrans command-line surface: one
// cobra.Command per file, a shared root with persistent flags, and
// RunE-returning subcommand functions rather than os.Exit calls scattered
// through command bodies.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "exiftrans",
	Short: "Perl-to-Rust expression transpiler for ExifTool tag tables",
	Long: `exiftrans mechanically translates ExifTool's embedded PrintConv,
ValueConv, and tag-selection Condition expressions (small Perl code
fragments, e.g. "$val / 100" or "sprintf(\"%.1f mm\",$val)") into
equivalent Rust functions.

It consumes a JSON-serialized Perl syntax tree produced out-of-process by
a PPI parser, normalizes it through an ordered sequence of pattern
passes, and emits a compilable Rust function body — falling back to a
hand-written implementation registry for expressions outside the
stylized ExifTool subset it targets.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
