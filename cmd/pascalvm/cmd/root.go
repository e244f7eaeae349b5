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
	Use:   "pascalvm",
	Short: "Pascal-subset compiler targeting a stack VM",
	Long: `pascalvm compiles a small Pascal-like language (programs, procedures and
functions, arrays, the usual control-flow statements, and a handful of
built-in functions) to a textual stack-machine instruction set: frame-
pointer-relative addressing for locals and parameters, global-pointer
addressing for globals.`,
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
