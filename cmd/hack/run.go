package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go.creack.net/hack/cli"
	"go.creack.net/hack/vm"
)

var (
	runCycles int
	runDebug  bool
	runRAM    []string
	runDump   int
)

// parseRAM parses "addr=value" pairs.
func parseRAM(pairs []string) (map[int]uint16, error) {
	out := make(map[int]uint16, len(pairs))
	for _, elem := range pairs {
		addrStr, valueStr, ok := strings.Cut(elem, "=")
		if !ok {
			return nil, fmt.Errorf("invalid ram value %q, expected addr=value", elem)
		}
		addr, err := strconv.Atoi(addrStr)
		if err != nil || addr < 0 {
			return nil, fmt.Errorf("invalid ram address %q", addrStr)
		}
		value, err := strconv.ParseInt(valueStr, 0, 32)
		if err != nil || value < -1<<15 || value > 1<<16-1 {
			return nil, fmt.Errorf("invalid ram value %q", valueStr)
		}
		out[addr] = uint16(value)
	}
	return out, nil
}

var runCmd = &cobra.Command{
	Use:   "run inputFile",
	Short: "Run a program in the emulator and dump the RAM",
	Long: `Run executes the program until it halts (end of the ROM or an
infinite jump to itself), the cycle limit is reached or the command is
interrupted. The RAM is then dumped in hex, runs of zero lines being
collapsed into '*'.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ram, err := parseRAM(runRAM)
		if err != nil {
			return err
		}
		in, err := cli.Load(cli.Args{Input: args[0], Strict: strict, Debug: runDebug, Cycles: runCycles})
		if err != nil {
			return err
		}
		for _, w := range in.Prog.Warnings {
			log.Printf("Warning: %s", w)
		}

		cfg := vm.DefaultConfig(in.Words)
		cfg.Trace = runDebug
		c := vm.NewComputer(cfg)
		for addr, value := range ram {
			if addr >= len(c.Ram) {
				return fmt.Errorf("ram address %d out of range", addr)
			}
			c.Ram.Load(addr, value)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		logMsg := func(msg vm.Message) {
			if msg.Type != vm.MsgScreen {
				log.Printf("[%5d] %s: %s", msg.PC, msg.Type, msg.Message)
			}
		}
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				select {
				case msg := <-c.Messages:
					logMsg(msg)
				case <-ctx.Done():
					for len(c.Messages) > 0 {
						logMsg(<-c.Messages)
					}
					return
				}
			}
		}()

		err = c.Run(ctx, runCycles)
		cancel()
		<-done
		switch {
		case errors.Is(err, vm.ErrHalted):
			log.Printf("Halted after %d cycles.", c.Cycle)
		case errors.Is(err, context.Canceled):
			log.Printf("Interrupted after %d cycles.", c.Cycle)
		case err != nil:
			return fmt.Errorf("failed to run: %w", err)
		default:
			log.Printf("Cycle limit reached (%d).", c.Cycle)
		}

		log.Printf("PC: %d, A: %d, D: %d", c.PC, c.A, int16(c.D))
		size := len(c.Ram)
		if runDump >= 0 {
			size = min(runDump, size)
		}
		vm.Dump(cmd.OutOrStdout(), c.Ram[:size], int(c.A))
		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&runCycles, "cycles", "n", 1_000_000, "cycle limit, 0 for none")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "trace each executed instruction")
	runCmd.Flags().StringSliceVar(&runRAM, "ram", nil, "initial RAM values as addr=value, repeatable")
	runCmd.Flags().IntVar(&runDump, "dump", 256, "number of RAM words to dump, -1 for all")
	rootCmd.AddCommand(runCmd)
}
