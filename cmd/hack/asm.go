package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"go.creack.net/hack/cli"
)

var (
	asmOutput string
	asmPretty bool
	asmDebug  bool
)

var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a .asm source into .hack binary text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := cli.Load(cli.Args{Input: args[0], Strict: strict, Debug: asmDebug})
		if err != nil {
			return err
		}
		for _, w := range in.Prog.Warnings {
			log.Printf("Warning: %s", w)
		}
		if asmDebug {
			for i, line := range in.Prog.Lines() {
				log.Printf("%5d: %s", i, line)
			}
		}
		if asmPretty {
			for _, elem := range in.Prog.PrettyPrint() {
				fmt.Fprintln(cmd.OutOrStdout(), elem)
			}
			return nil
		}
		if asmOutput == "-" {
			_, err := cmd.OutOrStdout().Write(in.Data)
			return err
		}
		output := asmOutput
		if output == "" {
			output = cli.DefaultOutput(args[0])
		}
		if err := os.WriteFile(output, in.Data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil
	},
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "output file, default to <input>.hack, - for stdout")
	asmCmd.Flags().BoolVar(&asmPretty, "pretty", false, "pretty print, do not output compiled file")
	asmCmd.Flags().BoolVarP(&asmDebug, "debug", "d", false, "print the encoded words")
	rootCmd.AddCommand(asmCmd)
}
