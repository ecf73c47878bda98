// Command hack-screen runs a Hack program and renders its memory mapped
// screen in a window. The keyboard is mapped to the KBD register.
//
//	hack-screen <input.asm|input.hack> [-d] [-strict] [-n cycles] [-small-font]
package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"go.creack.net/hack/cli"
	"go.creack.net/hack/op"
	"go.creack.net/hack/vm"
)

const (
	scale     = 2
	hudHeight = 48

	initialScreenWidth  = op.ScreenWidth * scale
	initialScreenHeight = op.ScreenHeight*scale + hudHeight

	cyclesPerFrame = 50000
)

var (
	pixelOn  = color.RGBA{A: 0xff}
	pixelOff = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Hack keyboard codes for the non printable keys.
var specialKeys = map[ebiten.Key]uint16{
	ebiten.KeyEnter:      128,
	ebiten.KeyBackspace:  129,
	ebiten.KeyArrowLeft:  130,
	ebiten.KeyArrowUp:    131,
	ebiten.KeyArrowRight: 132,
	ebiten.KeyArrowDown:  133,
	ebiten.KeyHome:       134,
	ebiten.KeyEnd:        135,
	ebiten.KeyPageUp:     136,
	ebiten.KeyPageDown:   137,
	ebiten.KeyInsert:     138,
	ebiten.KeyDelete:     139,
	ebiten.KeyEscape:     140,
	ebiten.KeyF1:         141,
	ebiten.KeyF2:         142,
	ebiten.KeyF3:         143,
	ebiten.KeyF4:         144,
	ebiten.KeyF5:         145,
	ebiten.KeyF6:         146,
	ebiten.KeyF7:         147,
	ebiten.KeyF8:         148,
	ebiten.KeyF9:         149,
	ebiten.KeyF10:        150,
	ebiten.KeyF11:        151,
	ebiten.KeyF12:        152,
}

// keyCode returns the Hack code of the first pressed key, 0 when none.
func keyCode(keys []ebiten.Key) uint16 {
	for _, k := range keys {
		if code, ok := specialKeys[k]; ok {
			return code
		}
		switch {
		case k >= ebiten.KeyA && k <= ebiten.KeyZ:
			return uint16('A' + (k - ebiten.KeyA))
		case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
			return uint16('0' + (k - ebiten.KeyDigit0))
		case k == ebiten.KeySpace:
			return ' '
		}
	}
	return 0
}

type Game struct {
	c  *vm.Computer
	in *cli.Input

	fontFace text.Face
	screen   *ebiten.Image
	pixels   []byte
	keys     []ebiten.Key

	ctx context.Context
	err error
}

func NewGame(ctx context.Context, c *vm.Computer, in *cli.Input, fontFace text.Face) *Game {
	return &Game{
		c:        c,
		in:       in,
		fontFace: fontFace,
		screen:   ebiten.NewImage(op.ScreenWidth, op.ScreenHeight),
		pixels:   make([]byte, op.ScreenWidth*op.ScreenHeight*4),
		ctx:      ctx,
	}
}

func (g *Game) Update() error {
	g.keys = ebiten.AppendPressedKeys(g.keys[:0])
	g.c.SetKey(keyCode(g.keys))

	if g.c.Halted || g.err != nil {
		return nil
	}
	n := cyclesPerFrame
	if g.in.Cycles > 0 {
		n = min(n, g.in.Cycles-g.c.Cycle)
		if n <= 0 {
			return ebiten.Termination
		}
	}
	if err := g.c.Run(g.ctx, n); err != nil {
		if errors.Is(err, context.Canceled) {
			return ebiten.Termination
		}
		if !errors.Is(err, vm.ErrHalted) {
			g.err = err
			log.Printf("Failed to run: %s.", err)
		}
	}
	return nil
}

func (g *Game) drawScreen() {
	for i, w := range g.c.Screen() {
		for bit := range op.WordSize {
			c := pixelOff
			if w&(1<<bit) != 0 {
				c = pixelOn
			}
			offset := (i*op.WordSize + bit) * 4
			g.pixels[offset] = c.R
			g.pixels[offset+1] = c.G
			g.pixels[offset+2] = c.B
			g.pixels[offset+3] = c.A
		}
	}
	g.screen.WritePixels(g.pixels)
}

func (g *Game) hud() string {
	lines := []string{
		fmt.Sprintf("%s  PC: %5d  A: %5d  D: %6d  KBD: %3d", g.in.ShortName, g.c.PC, g.c.A, int16(g.c.D), g.c.Ram[op.KbdAddress].Value),
		fmt.Sprintf("cycles: %d  %.0f tps", g.c.Cycle, ebiten.ActualTPS()),
	}
	switch {
	case g.err != nil:
		lines[1] += "  error: " + g.err.Error()
	case g.c.Halted:
		lines[1] += "  halted"
	}
	return strings.Join(lines, "\n")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawScreen()

	imgOp := &ebiten.DrawImageOptions{}
	imgOp.GeoM.Scale(scale, scale)
	imgOp.GeoM.Translate(0, hudHeight)
	screen.DrawImage(g.screen, imgOp)

	textOp := &text.DrawOptions{}
	metrics := g.fontFace.Metrics()
	textOp.LineSpacing = metrics.HLineGap + metrics.HAscent + metrics.HDescent
	textOp.GeoM.Translate(4, 4)
	textOp.ColorScale.ScaleWithColor(color.RGBA{G: 0xff, A: 0xff})
	text.Draw(screen, g.hud(), g.fontFace, textOp)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return initialScreenWidth, initialScreenHeight
}

func main() {
	log.SetFlags(0)

	// -small-font is ours, the rest goes to the common parser.
	args := os.Args[1:]
	smallFont := slices.Contains(args, "-small-font")
	args = slices.DeleteFunc(slices.Clone(args), func(s string) bool { return s == "-small-font" })

	cfg, in, err := cli.ParseConfig(args)
	if err != nil {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s <.asm|.hack path> [-d] [-strict] [-n cycles] [-small-font]\n", binName)
		log.Fatalf("Failed to parse cli config: %s.", err)
	}
	for _, w := range in.Prog.Warnings {
		log.Printf("Warning: %s", w)
	}

	fontFace := text.NewGoXFace(bitmapfont.Face)
	if smallFont {
		fontFace = text.NewGoXFace(basicfont.Face7x13)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := vm.NewComputer(cfg)
	go func() {
		for msg := range c.Messages {
			if msg.Type == vm.MsgScreen {
				continue
			}
			if msg.Type != vm.MsgDebug || cfg.Trace {
				log.Printf("[%5d] %s: %s", msg.PC, msg.Type, msg.Message)
			}
		}
	}()

	game := NewGame(ctx, c, in, fontFace)

	ebiten.SetWindowSize(initialScreenWidth, initialScreenHeight)
	ebiten.SetWindowTitle("Hack - " + in.ShortName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		InitUnfocused: true,
	}); err != nil {
		log.Fatal(err)
	}
}
