// Command pascalvm compiles the Pascal subset described in spec.md to
// the stack-VM instruction contract of spec.md §6.2.
package main

import (
	"os"

	"github.com/guedes674/pas2vm/cmd/pascalvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
