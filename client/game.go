package client

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game is the ebiten glue: it owns the map surface and the message panel,
// routes input to them, and exposes key bindings the main package wires to
// the engine.
type Game struct {
	surface *Map
	panel   *Panel

	width, height int

	// Key bindings, wired by main. Nil bindings are ignored.
	OnFortify       func() // F
	OnAddFriend     func() // I
	OnDebugLocation func() // L, once
	debugArmed      bool
}

func NewGame(width, height int) *Game {
	return &Game{
		surface: NewMap(width, height),
		panel:   NewPanel(),
		width:   width,
		height:  height,
	}
}

// Surface is the map the engine reconciles onto.
func (g *Game) Surface() *Map {
	return g.surface
}

// MessageSurface is where the notification queue presents messages.
func (g *Game) MessageSurface() *Panel {
	return g.panel
}

func (g *Game) Update() error {
	if g.panel.Visible() {
		g.panel.HandleInput()
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.surface.Click(float64(x), float64(y))
	}

	const panStep = 24
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.surface.Pan(-panStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.surface.Pan(panStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.surface.Pan(0, -panStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.surface.Pan(0, panStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.surface.Zoom(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.surface.Zoom(-1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) && g.OnFortify != nil {
		g.OnFortify()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) && g.OnAddFriend != nil {
		g.OnAddFriend()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) && g.OnDebugLocation != nil && !g.debugArmed {
		g.debugArmed = true
		g.OnDebugLocation()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"[f] fortify  [i] invite  [l] click-to-move  arrows pan  +/- zoom  FPS %0.1f",
		ebiten.CurrentFPS()))
	g.panel.Draw(screen, g.width, g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
