//go:build local

package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Local builds open the window on the left monitor.
func init() {
	go func() {
		time.Sleep(100 * time.Millisecond)
		ebiten.SetWindowPosition(-initialScreenWidth, 0)
	}()
}
