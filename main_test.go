package main

import (
	"testing"

	"github.com/bloeys/nrend/config"
	"github.com/bloeys/nrend/engine"
	"github.com/bloeys/nrend/input"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func newTestGame() *Game {

	cfg := config.Default()
	return &Game{
		Win:     &engine.Window{Input: input.NewState()},
		Cfg:     cfg,
		camDist: cfg.Camera.Distance,
	}
}

func TestUpdateDragPausesModelSpin(t *testing.T) {

	g := newTestGame()
	in := g.Win.Input

	in.FrameStart()
	g.Update(1)
	assert.InDelta(t, modelRotSpeed, g.modelRot, 1e-6)

	in.FrameStart()
	in.HandleEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	in.HandleEvent(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 100})
	g.Update(1)
	assert.True(t, g.dragging)
	assert.InDelta(t, modelRotSpeed, g.modelRot, 1e-6)
	assert.InDelta(t, 100*camRotSpeed, g.camYaw, 1e-6)

	in.FrameStart()
	in.HandleEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	g.Update(1)
	assert.False(t, g.dragging)
	assert.InDelta(t, 2*modelRotSpeed, g.modelRot, 1e-6)
}

func TestUpdateHeldKeysZoom(t *testing.T) {

	g := newTestGame()
	in := g.Win.Input
	startDist := g.camDist

	in.FrameStart()
	in.HandleEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_s}})
	g.Update(0.5)
	g.Update(0.5)
	assert.InDelta(t, startDist+camKeyZoomSpeed, g.camDist, 1e-4)

	in.FrameStart()
	in.HandleEvent(&sdl.KeyboardEvent{Type: sdl.KEYUP, State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: sdl.K_s}})
	in.HandleEvent(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_w}})
	for i := 0; i < 100; i++ {
		g.Update(1)
	}
	assert.Equal(t, g.Cfg.Camera.Near*2, g.camDist, "zoom stops short of the near plane")
}
