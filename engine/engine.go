package engine

import (
	"runtime"
	"time"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/gpu/glgpu"
	"github.com/bloeys/nrend/input"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false
)

type WindowFlags uint32

const (
	WindowFlags_NONE          WindowFlags = 0
	WindowFlags_OPENGL        WindowFlags = sdl.WINDOW_OPENGL
	WindowFlags_RESIZABLE     WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_FULLSCREEN    WindowFlags = sdl.WINDOW_FULLSCREEN_DESKTOP
	WindowFlags_ALLOW_HIGHDPI WindowFlags = sdl.WINDOW_ALLOW_HIGHDPI
)

// Game is driven by Run. Render is called after Update every frame, FrameEnd after the buffer swap.
type Game interface {
	Init()
	Update(dt float32)
	Render()
	FrameEnd()
	DeInit()
}

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
	// Gpu is the graphics context every nrend package draws through
	Gpu   *glgpu.Context
	Input *input.State

	EventCallbacks []func(sdl.Event)

	quit bool
}

func (w *Window) handleEvents() {

	w.Input.FrameStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		w.Input.HandleEvent(event)

		if e, ok := event.(*sdl.WindowEvent); ok && e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			w.handleWindowResize()
		}
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	gl.Viewport(0, 0, fbWidth, fbHeight)
}

// DrawableSize is the framebuffer size in pixels, which can differ from the window size on high DPI screens
func (w *Window) DrawableSize() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

// Quit makes Run return after the current frame
func (w *Window) Quit() {
	w.quit = true
}

func (w *Window) Destroy() error {

	if w.Gpu != nil {
		w.Gpu.Delete()
		w.Gpu = nil
	}

	sdl.GLDeleteContext(w.GlCtx)
	return w.SDLWin.Destroy()
}

// Run calls the game every frame until Quit is called
func Run(g Game, w *Window) {

	assert.T(isInited, "engine.Init() was not called!")

	g.Init()

	lastFrame := time.Now()
	for !w.quit {

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		w.handleEvents()
		g.Update(dt)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		g.Render()

		w.SDLWin.GLSwap()
		g.FrameEnd()
	}

	g.DeInit()
}

func Init() error {

	isInited = true

	runtime.LockOSThread()
	return initSDL()
}

func DeInit() {
	sdl.Quit()
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	// Allows us to do MSAA
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		Input:          input.NewState(),
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		sdl.GLDeleteContext(win.GlCtx)
		sdlWin.Destroy()
		return nil, err
	}

	// The gpu context owns the one vertex array every draw goes through, so it needs a live GL context
	win.Gpu = glgpu.New()

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

func SetSrgbFramebuffer(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func SetMSAA(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

// SetDepthWrite toggles writing to the depth buffer. Transparent passes like the grid draw with it off
func SetDepthWrite(isEnabled bool) {
	gl.DepthMask(isEnabled)
}
