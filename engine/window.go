package engine

// Window is the surface the engine presents frames to.
type Window interface {
	Startup(applicationName string, x, y, width, height uint32) error
	// PumpMessages processes pending events and reports whether the
	// application should keep running.
	PumpMessages() bool
	SwapBuffers()
	SetResizeCallback(fn func(width, height uint32))
	Shutdown() error
}

// HeadlessWindow never closes and presents nothing. The engine stops it
// through ApplicationConfig.MaxFrames or the Run context.
type HeadlessWindow struct {
	onResize func(width, height uint32)
}

func NewHeadlessWindow() *HeadlessWindow {
	return &HeadlessWindow{}
}

func (w *HeadlessWindow) Startup(applicationName string, x, y, width, height uint32) error {
	return nil
}

func (w *HeadlessWindow) PumpMessages() bool { return true }
func (w *HeadlessWindow) SwapBuffers() {}
func (w *HeadlessWindow) Shutdown() error { return nil }

func (w *HeadlessWindow) SetResizeCallback(fn func(width, height uint32)) {
	w.onResize = fn
}

// Resize simulates the window manager resizing the surface.
func (w *HeadlessWindow) Resize(width, height uint32) {
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
