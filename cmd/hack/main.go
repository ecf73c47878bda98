// Command hack bundles the Hack toolchain: assembler, disassembler,
// headless emulator and symbol dump.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hack",
	Short: "Hack assembler, disassembler and emulator",
	Long: `Hack is the toolchain for the 16-bit Hack computer.

Sources (.asm) are assembled into binary text (.hack), one 16 character
word per line. Binary text can be disassembled back into source or run
in the emulator.
`,
	SilenceUsage: true,
}

var strict bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on the first degraded instruction instead of warning")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
