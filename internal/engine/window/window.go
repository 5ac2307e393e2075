// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/realsun/internal/config"
	"github.com/Faultbox/realsun/internal/logger"
)

func init() {
	// GL calls are only valid on the thread that owns the context.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// FromGraphics builds a window Config from the graphics settings.
func FromGraphics(title string, g config.GraphicsConfig) Config {
	return Config{
		Title:      title,
		Width:      g.Width,
		Height:     g.Height,
		Fullscreen: g.Fullscreen,
		VSync:      g.VSync,
		Samples:    g.Samples,
	}
}

// Window owns the SDL window and the GL context.
type Window struct {
	log        *zap.Logger
	handle     *sdl.Window
	context    sdl.GLContext
	fullscreen bool
}

// New initializes SDL and opens the window. If the driver rejects the
// multisampled context it retries without multisampling.
func New(cfg Config) (*Window, error) {
	w := &Window{log: logger.Named("window"), fullscreen: cfg.Fullscreen}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	err := w.open(cfg)
	if err != nil && cfg.Samples > 0 {
		w.log.Warn("multisampled context unavailable, retrying without", zap.Int("samples", cfg.Samples), zap.Error(err))
		cfg.Samples = 0
		err = w.open(cfg)
	}
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples),
	)
	return w, nil
}

func (w *Window) open(cfg Config) error {
	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
		{sdl.GL_MULTISAMPLEBUFFERS, min(cfg.Samples, 1)},
		{sdl.GL_MULTISAMPLESAMPLES, cfg.Samples},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("SDL_GL_SetAttribute(%d): %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	handle, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	ctx, err := handle.GLCreateContext()
	if err != nil {
		handle.Destroy()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}
	w.handle, w.context = handle, ctx
	return nil
}

// Close destroys the context and the window and shuts SDL down.
func (w *Window) Close() error {
	w.log.Info("closing window")
	defer sdl.Quit()

	if w.context != nil {
		sdl.GLDeleteContext(w.context)
		w.context = nil
	}
	if w.handle == nil {
		return nil
	}
	err := w.handle.Destroy()
	w.handle = nil
	if err != nil {
		return fmt.Errorf("destroying window: %w", err)
	}
	return nil
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.handle.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.handle.GLGetDrawableSize()
	return int(width), int(height)
}

// ToggleFullscreen switches between desktop fullscreen and windowed mode and
// reports whether the window is now fullscreen.
func (w *Window) ToggleFullscreen() bool {
	var flags uint32
	if !w.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.handle.SetFullscreen(flags); err != nil {
		w.log.Warn("fullscreen toggle failed", zap.Error(err))
		return w.fullscreen
	}
	w.fullscreen = !w.fullscreen
	return w.fullscreen
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}
