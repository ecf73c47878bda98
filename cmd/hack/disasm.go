package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go.creack.net/hack/disasm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm binaryFile",
	Short: "Print the source of a .hack binary text",
	Long: `Disasm decodes each word back into an instruction. When the program
is one of the embedded sample programs, the matching source is printed
instead, with its labels and variables.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %q: %w", args[0], err)
		}
		p, err := disasm.Disasm(filepath.Base(args[0]), data, strict)
		if err != nil {
			return err
		}
		for _, w := range p.Warnings {
			log.Printf("Warning: %s", w)
		}
		for _, elem := range p.PrettyPrint() {
			fmt.Fprintln(cmd.OutOrStdout(), elem)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
