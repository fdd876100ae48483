// Package input tracks keyboard and mouse state from SDL events, one frame at a time.
//
// Call State.FrameStart before polling events each frame, then feed every event to State.HandleEvent.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type buttonState struct {
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type State struct {
	keys       map[sdl.Keycode]buttonState
	mouseBtns  map[uint8]buttonState
	mouseXRel  int32
	mouseYRel  int32
	wheelY     int32
	quitWanted bool
}

func NewState() *State {
	return &State{
		keys:      map[sdl.Keycode]buttonState{},
		mouseBtns: map[uint8]buttonState{},
	}
}

// FrameStart clears everything that only lasts one frame
func (s *State) FrameStart() {

	for k, v := range s.keys {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		s.keys[k] = v
	}

	for k, v := range s.mouseBtns {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		s.mouseBtns[k] = v
	}

	s.mouseXRel, s.mouseYRel = 0, 0
	s.wheelY = 0
	s.quitWanted = false
}

func (s *State) HandleEvent(event sdl.Event) {

	switch e := event.(type) {

	case *sdl.KeyboardEvent:

		// Key repeats don't count as new presses
		if e.Repeat != 0 {
			return
		}

		isDown := e.State == sdl.PRESSED
		s.keys[e.Keysym.Sym] = buttonState{
			IsDown:              isDown,
			IsPressedThisFrame:  isDown,
			IsReleasedThisFrame: !isDown,
		}

	case *sdl.MouseButtonEvent:

		isDown := e.State == sdl.PRESSED
		s.mouseBtns[e.Button] = buttonState{
			IsDown:              isDown,
			IsPressedThisFrame:  isDown,
			IsReleasedThisFrame: !isDown,
		}

	case *sdl.MouseMotionEvent:
		// Several motion events can arrive in one frame
		s.mouseXRel += e.XRel
		s.mouseYRel += e.YRel

	case *sdl.MouseWheelEvent:
		s.wheelY += e.Y

	case *sdl.QuitEvent:
		s.quitWanted = true
	}
}

func (s *State) IsQuitClicked() bool {
	return s.quitWanted
}

func (s *State) KeyClicked(kc sdl.Keycode) bool {
	return s.keys[kc].IsPressedThisFrame
}

func (s *State) KeyDown(kc sdl.Keycode) bool {
	return s.keys[kc].IsDown
}

func (s *State) MouseDown(btn uint8) bool {
	return s.mouseBtns[btn].IsDown
}

func (s *State) MouseReleased(btn uint8) bool {
	return s.mouseBtns[btn].IsReleasedThisFrame
}

// MouseMotion returns how many pixels the mouse moved this frame
func (s *State) MouseMotion() (xDelta, yDelta int32) {
	return s.mouseXRel, s.mouseYRel
}

// MouseWheelYNorm returns 1 if the wheel scrolled up this frame, -1 if down, and 0 otherwise
func (s *State) MouseWheelYNorm() int32 {

	if s.wheelY > 0 {
		return 1
	} else if s.wheelY < 0 {
		return -1
	}

	return 0
}
