// Command hack-viewer is a terminal stepping debugger for Hack programs.
//
//	hack-viewer <input.asm|input.hack> [-d] [-strict] [-n cycles]
//
// Keys: 'n' steps one instruction, space runs/pauses, 'r' resets,
// Enter shows the program listing, 'q' or Esc quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/cli"
	"go.creack.net/hack/op"
	"go.creack.net/hack/vm"
)

const (
	ramWidth     = 8    // Words per RAM table row.
	ramWords     = 1024 // Words shown in the RAM table.
	stepsPerTick = 10
)

// errTermination is returned by Update when the cycle limit is reached.
var errTermination = errors.New("termination")

var msgColors = map[vm.MessageType]tcell.Color{
	vm.MsgDebug:   tcell.ColorDimGray,
	vm.MsgError:   tcell.ColorRed,
	vm.MsgWarning: tcell.ColorYellow,
	vm.MsgHalt:    tcell.ColorGreen,
	vm.MsgReset:   tcell.ColorBlue,
}

// dumpBinary renders the .hack content next to the ROM addresses.
func dumpBinary(words []uint16) string {
	out := &strings.Builder{}
	for i, w := range words {
		fmt.Fprintf(out, "%5d: %s\n", i, op.FormatWord(w))
	}
	return out.String()
}

func NewGame(ctx context.Context, c *vm.Computer, in *cli.Input) *Game {
	app := tview.NewApplication().EnableMouse(true)

	newTextView := func(text string) *tview.TextView {
		return tview.NewTextView().
			SetDynamicColors(true).
			SetText(text)
	}

	ramView := tview.NewTable().SetBorders(false)

	sourceView := tview.NewTable().SetBorders(false)
	sourceView.SetTitle("ROM").SetBorder(true)

	logsView := newTextView("")
	logsView.SetTitle("Logs").SetBorder(true)
	logsView.ScrollToEnd()

	stateView := newTextView("Registers")
	stateView.SetTitle("Registers").SetBorder(true)

	symbolsView := tview.NewTable().SetBorders(false)
	symbolsView.SetTitle("Symbols").SetBorder(true)

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow)
	rightPane.
		AddItem(stateView, 0, 2, false).
		AddItem(symbolsView, 0, 3, false).
		AddItem(logsView, 0, 3, false)

	ramPane := tview.NewFlex()
	ramPane.SetBorder(true)
	ramPane.SetTitle("RAM")
	ramPane.AddItem(ramView, 0, 1, false)

	flex := tview.NewFlex().
		AddItem(sourceView, 0, 2, false).
		AddItem(ramPane, 0, 3, true).
		AddItem(rightPane, 0, 2, false)

	pages := tview.NewPages()
	pages.AddPage("main", flex, true, true)

	listing := newTextView(strings.Join(in.Prog.PrettyPrint(), "\n"))
	listing.SetTitle(in.Prog.Name).SetBorder(true)
	binary := newTextView(dumpBinary(in.Words))
	binary.SetTitle(cli.DefaultOutput(in.ShortName)).SetBorder(true)
	pages.AddPage("listing", tview.NewFlex().
		AddItem(listing, 0, 1, false).
		AddItem(binary, 0, 1, false), true, false)

	ctx, cancel := context.WithCancel(ctx)

	g := &Game{
		app: app,

		root: pages,

		mainPage:    flex,
		ramView:     ramView,
		sourceView:  sourceView,
		stateView:   stateView,
		symbolsView: symbolsView,
		logsView:    logsView,

		c:  c,
		in: in,

		ctx:    ctx,
		cancel: cancel,

		paused: true,
	}
	g.initSource()
	g.initSymbols()
	return g
}

type Game struct {
	app *tview.Application

	root *tview.Pages

	mainPage *tview.Flex

	ramView     *tview.Table
	sourceView  *tview.Table
	stateView   *tview.TextView
	symbolsView *tview.Table
	logsView    *tview.TextView

	c  *vm.Computer
	in *cli.Input

	mu       sync.Mutex // Guards c between the update loop and the key handlers.
	paused   bool
	nextStep bool

	ctx    context.Context
	cancel context.CancelFunc
}

func (g *Game) Stop() {
	g.app.Stop()
	g.cancel()
}

func (g *Game) Init() {
	f := func(event *tcell.EventKey) *tcell.EventKey {
		curPage, _ := g.root.GetFrontPage()
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		case tcell.KeyEnter:
			if curPage != "main" {
				g.root.SwitchToPage("main")
			} else {
				g.root.SwitchToPage("listing")
			}
			return nil
		}
		switch event.Rune() {
		case 'n':
			g.mu.Lock()
			g.nextStep = true
			g.mu.Unlock()
			return nil
		case ' ':
			if curPage == "main" {
				g.mu.Lock()
				g.paused = !g.paused
				g.mu.Unlock()
			} else {
				g.root.SwitchToPage("main")
			}
			return nil
		case 'r':
			g.mu.Lock()
			g.c.Reset()
			g.paused = true
			g.mu.Unlock()
			return nil
		case 'q':
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		}
		return event
	}
	g.root.SetInputCapture(f)
	go func() {
	loop:
		select {
		case msg := <-g.c.Messages:
			if msg.Type == vm.MsgScreen {
				goto loop
			}
			g.app.QueueUpdateDraw(func() {
				// NOTE: Seems like there is a bug with tview, we can't reset the color to default
				// with [:] or [:::], so we use tcell default.
				colorCode := "[" + tcell.ColorDefault.String() + ":::]"
				if c, ok := msgColors[msg.Type]; ok {
					colorCode = "[" + c.String() + ":::]"
				}
				fmt.Fprintf(g.logsView, "%s[%5d] %s: %s[:::]\n", colorCode, msg.PC, msg.Type, strings.TrimSuffix(msg.Message, "\n"))
			})
		case <-g.ctx.Done():
			return
		}
		goto loop
	}()
}

// Update executes the next instructions unless paused.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	steps := stepsPerTick
	if g.nextStep {
		g.nextStep = false
		steps = 1
	} else if g.paused {
		return nil
	}

	for range steps {
		if g.in.Cycles > 0 && g.c.Cycle >= g.in.Cycles {
			return errTermination
		}
		if err := g.c.Step(); err != nil {
			g.paused = true
			return fmt.Errorf("failed to execute instruction: %w", err)
		}
	}
	return nil
}

func (g *Game) initSource() {
	for i, elem := range []string{"addr", "line", "binary", "instruction"} {
		cell := tview.NewTableCell(elem).
			SetAttributes(tcell.AttrBold).
			SetAlign(tview.AlignCenter)
		g.sourceView.SetCell(0, i, cell).SetFixed(1, i)
	}

	// Labels don't produce words, keep only the instructions.
	var instructions []parser.Node
	for _, elem := range g.in.Prog.Nodes {
		if _, ok := elem.(*parser.Label); ok {
			continue
		}
		instructions = append(instructions, elem)
	}

	for i, w := range g.in.Words {
		line := ""
		if i < len(g.in.Prog.SourceMap) {
			line = fmt.Sprint(g.in.Prog.SourceMap[i])
		}
		ins := ""
		if i < len(instructions) {
			ins = instructions[i].String()
		}
		for j, content := range []string{fmt.Sprint(i), line, op.FormatWord(w), ins} {
			g.sourceView.SetCell(i+1, j, tview.NewTableCell(content).SetAlign(tview.AlignLeft))
		}
	}
}

func (g *Game) initSymbols() {
	syms := g.in.Prog.Symbols()
	row := 0
	for _, elem := range append(syms.Labels(), syms.Variables()...) {
		color := tcell.ColorGreen
		if elem.Kind == parser.SymbolVariable {
			color = tcell.ColorAqua
		}
		g.symbolsView.SetCell(row, 0, tview.NewTableCell(elem.Name).SetTextColor(color))
		g.symbolsView.SetCell(row, 1, tview.NewTableCell(elem.Kind.String()).SetAttributes(tcell.AttrDim))
		g.symbolsView.SetCell(row, 2, tview.NewTableCell(fmt.Sprint(elem.Value)).SetAlign(tview.AlignRight))
		row++
	}
}

func (g *Game) drawState() {
	g.stateView.Clear()

	m := g.c.Ram.Values(int(g.c.A), 1)[0]
	fmt.Fprintf(g.stateView, "PC: %d\n", g.c.PC)
	fmt.Fprintf(g.stateView, "A: %d (0x%04x)\n", g.c.A, g.c.A)
	fmt.Fprintf(g.stateView, "D: %d (0x%04x)\n", int16(g.c.D), g.c.D)
	fmt.Fprintf(g.stateView, "M: %d (0x%04x)\n", int16(m), m)
	fmt.Fprintf(g.stateView, "Cycles: %d\n", g.c.Cycle)
	if g.in.Cycles > 0 {
		fmt.Fprintf(g.stateView, "Cycle limit: %d\n", g.in.Cycles)
	}
	fmt.Fprintf(g.stateView, "Paused: %t\n", g.paused)
	if g.c.Halted {
		fmt.Fprintf(g.stateView, "[green::b]Halted[:::]\n")
	}
}

func (g *Game) drawSource() {
	rows := g.sourceView.GetRowCount()
	for i := 1; i < rows; i++ {
		attr := tcell.AttrNone
		if i-1 == int(g.c.PC) {
			attr = tcell.AttrReverse
		}
		for j := range g.sourceView.GetColumnCount() {
			if cell := g.sourceView.GetCell(i, j); cell != nil {
				cell.SetAttributes(attr)
			}
		}
	}
	if int(g.c.PC)+1 < rows {
		g.sourceView.Select(int(g.c.PC)+1, 0)
	}
}

func (g *Game) drawRAM() {
	for i, elem := range g.c.Ram[:min(ramWords, len(g.c.Ram))] {
		if i%ramWidth == 0 {
			g.ramView.SetCell(i/ramWidth, 0, tview.NewTableCell(fmt.Sprintf("0x%04x", i)).SetTextColor(tcell.ColorDimGray))
		}
		cell := tview.NewTableCell(fmt.Sprintf("%04x", elem.Value))
		switch elem.AccessType {
		case vm.AccessWrite:
			cell.SetAttributes(tcell.AttrBold).SetTextColor(tcell.ColorYellow)
		case vm.AccessRead:
			cell.SetAttributes(tcell.AttrItalic | tcell.AttrDim)
		default:
			if elem.Value == 0 {
				cell.SetTextColor(tcell.ColorDimGray)
				cell.SetAttributes(tcell.AttrDim)
			}
		}
		if i == int(g.c.A) {
			cell.SetAttributes(tcell.AttrReverse)
		}
		addr := i
		cell.SetClickedFunc(func() bool {
			select {
			case g.c.Messages <- vm.NewMessage(vm.MsgDebug, g.c.PC, fmt.Sprintf("RAM[%d] = %d", addr, int16(g.c.Ram[addr].Value))):
			default:
			}
			return true
		})
		g.ramView.SetCell(i/ramWidth, 1+i%ramWidth, cell)
	}
}

func (g *Game) Draw() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drawRAM()
	g.drawSource()
	g.drawState()
}

func main() {
	log.SetFlags(0)
	cfg, in, err := cli.ParseConfig(os.Args[1:])
	if err != nil {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s <.asm|.hack path> [-d] [-strict] [-n cycles]\n", binName)
		log.Fatalf("Failed to parse CLI config: %s.", err)
	}
	for _, w := range in.Prog.Warnings {
		log.Printf("Warning: %s", w)
	}

	g := NewGame(context.Background(), vm.NewComputer(cfg), in)

	g.Init()
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		defer func() {
			if e := recover(); e != nil {
				g.app.Stop()
				log.Printf("Recovered from panic: %v", e)
				debug.PrintStack()
			}
		}()
	loop:
		if err := g.Update(); err != nil {
			if errors.Is(err, errTermination) {
				g.Stop()
				return
			}
			if !errors.Is(err, vm.ErrHalted) {
				log.Printf("failed to update: %s", err)
			}
		}

		g.app.QueueUpdateDraw(func() {
			g.Draw()
		})

		select {
		case <-ticker.C:
		case <-g.ctx.Done():
			g.Stop()
			return
		}
		goto loop
	}()

	if err := g.app.SetRoot(g.root, true).SetFocus(g.root).Run(); err != nil {
		panic(err)
	}
	log.Printf("Done")
}
