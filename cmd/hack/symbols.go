package main

import (
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/cli"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols inputFile",
	Short: "Dump the labels, variables and warnings of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := cli.Load(cli.Args{Input: args[0], Strict: strict})
		if err != nil {
			return err
		}
		printer := pp.New()
		printer.SetOutput(cmd.OutOrStdout())
		printer.SetColoringEnabled(cmd.OutOrStdout() == os.Stdout)
		_, _ = printer.Println(struct {
			Labels    []parser.Entry
			Variables []parser.Entry
			Warnings  []parser.Warning
		}{
			Labels:    in.Prog.Symbols().Labels(),
			Variables: in.Prog.Symbols().Variables(),
			Warnings:  in.Prog.Warnings,
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}
