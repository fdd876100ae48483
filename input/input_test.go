package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(sym sdl.Keycode, state uint8, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: sdl.KEYDOWN, State: state, Repeat: repeat, Keysym: sdl.Keysym{Sym: sym}}
}

func TestKeyDownLastsAcrossFrames(t *testing.T) {

	s := NewState()

	s.FrameStart()
	s.HandleEvent(keyEvent(sdl.K_w, sdl.PRESSED, 0))
	assert.True(t, s.KeyClicked(sdl.K_w))
	assert.True(t, s.KeyDown(sdl.K_w))

	s.FrameStart()
	s.HandleEvent(keyEvent(sdl.K_w, sdl.PRESSED, 1))
	assert.False(t, s.KeyClicked(sdl.K_w), "repeats are not new presses")
	assert.True(t, s.KeyDown(sdl.K_w))

	s.FrameStart()
	s.HandleEvent(keyEvent(sdl.K_w, sdl.RELEASED, 0))
	assert.False(t, s.KeyDown(sdl.K_w))
	assert.False(t, s.KeyDown(sdl.K_s))
}

func TestMouseReleasedIsOneFrame(t *testing.T) {

	s := NewState()

	s.FrameStart()
	s.HandleEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	s.HandleEvent(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2})
	s.HandleEvent(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 4, YRel: 1})
	assert.True(t, s.MouseDown(sdl.BUTTON_LEFT))
	assert.False(t, s.MouseReleased(sdl.BUTTON_LEFT))

	x, y := s.MouseMotion()
	assert.Equal(t, int32(7), x)
	assert.Equal(t, int32(-1), y)

	s.FrameStart()
	s.HandleEvent(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	assert.False(t, s.MouseDown(sdl.BUTTON_LEFT))
	assert.True(t, s.MouseReleased(sdl.BUTTON_LEFT))

	s.FrameStart()
	assert.False(t, s.MouseReleased(sdl.BUTTON_LEFT))
	x, y = s.MouseMotion()
	assert.Zero(t, x)
	assert.Zero(t, y)
}
