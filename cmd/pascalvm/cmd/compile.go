package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guedes674/pas2vm/internal/compiler"
	"github.com/guedes674/pas2vm/internal/errors"
	"github.com/spf13/cobra"
)

var (
	outputDir      string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <path>",
	Short: "Compile a .pas file or directory of .pas files to the target VM",
	Long: `Compile reads a path; if it names a directory, every *.pas file directly
inside it is compiled (non-recursively); if it names a .pas file, that
file alone is compiled. Each input produces a sibling <basename>.vm file
in the output directory (default: alongside the source).

Examples:
  pascalvm compile program.pas
  pascalvm compile ./scripts -o ./build`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: alongside each source file)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var sources []string
	switch {
	case info.IsDir():
		matches, err := filepath.Glob(filepath.Join(path, "*.pas"))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", path, err)
		}
		sources = matches
	case strings.EqualFold(filepath.Ext(path), ".pas"):
		sources = []string{path}
	default:
		return fmt.Errorf("%s is neither a directory nor a .pas file", path)
	}

	if len(sources) == 0 {
		return fmt.Errorf("no .pas files found at %s", path)
	}

	failures := 0
	for _, src := range sources {
		if err := compileOne(src); err != nil {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("compilation failed for %d of %d file(s)", failures, len(sources))
	}
	return nil
}

// compileOne compiles a single file, printing any errors to stderr and
// continuing rather than aborting — spec.md §7's directory-mode
// propagation rule: each file's own compilation still stops at its
// first error, but one failing file never blocks the rest.
func compileOne(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return err
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", path)
	}

	out, warnings, errs := compiler.Compile(string(content), path)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, w)
	}
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return errs[0]
	}

	outFile := outputPath(path)
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory for %s: %v\n", outFile, err)
		return err
	}
	if err := os.WriteFile(outFile, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outFile, err)
		return err
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outFile)
	} else {
		fmt.Printf("Compiled %s -> %s\n", path, outFile)
	}
	return nil
}

func outputPath(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".vm"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(source), base)
	}
	return filepath.Join(outputDir, base)
}
