// Command exiftrans compiles ExifTool PrintConv/ValueConv/Condition
// expressions, pre-parsed into PPI JSON, into Rust functions.
package main

import (
	"os"

	"github.com/cwbudde/exiftrans/cmd/exiftrans/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
