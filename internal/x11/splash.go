package x11

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/splash/internal/render"
)

// SplashOptions configures NewSplashWindow.
type SplashOptions struct {
	Title    string
	Renderer *render.Renderer
	Logger   *slog.Logger
}

// SplashWindow is a borderless, always-on-top window covering the primary
// monitor. Frames are rendered client side, uploaded into a server-side
// pixmap, then blitted to the window with a single CopyArea.
type SplashWindow struct {
	conn     *Connection
	renderer *render.Renderer
	logger   *slog.Logger

	win    xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	depth  byte
	bounds Monitor

	buf     *image.RGBA
	scratch []byte
	frame   int

	wmProtocols xproto.Atom
	wmDelete    xproto.Atom

	quit   bool
	closed bool
}

// NewSplashWindow creates, maps and paints the splash window. On error every
// resource created so far is released; the connection stays open.
func NewSplashWindow(conn *Connection, opts SplashOptions) (*SplashWindow, error) {
	if conn == nil || conn.XUtil == nil {
		return nil, errors.New("x11 connection not initialized")
	}
	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	screen := conn.XUtil.Screen()
	if screen.RootDepth != 24 && screen.RootDepth != 32 {
		return nil, fmt.Errorf("unsupported root depth %d", screen.RootDepth)
	}

	s := &SplashWindow{
		conn:     conn,
		renderer: opts.Renderer,
		logger:   logger,
		depth:    screen.RootDepth,
		bounds:   conn.PrimaryMonitor(),
	}
	if s.bounds.Width <= 0 || s.bounds.Height <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", s.bounds.Width, s.bounds.Height)
	}

	if err := s.create(screen.RootVisual, opts.Title); err != nil {
		s.destroy()
		return nil, err
	}
	return s, nil
}

func (s *SplashWindow) create(visual xproto.Visualid, title string) error {
	X := s.conn.XUtil.Conn()

	win, err := xproto.NewWindowId(X)
	if err != nil {
		return fmt.Errorf("failed to allocate window id: %w", err)
	}
	bg := s.renderer.Background()
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{
		packRGB(bg.R, bg.G, bg.B),
		xproto.EventMaskExposure | xproto.EventMaskStructureNotify,
	}
	if err := xproto.CreateWindowChecked(
		X,
		s.depth,
		win,
		s.conn.Root,
		int16(s.bounds.X),
		int16(s.bounds.Y),
		uint16(s.bounds.Width),
		uint16(s.bounds.Height),
		0,
		xproto.WindowClassInputOutput,
		visual,
		mask,
		values,
	).Check(); err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.win = win

	s.setHints(title)

	pixmap, err := xproto.NewPixmapId(X)
	if err != nil {
		return fmt.Errorf("failed to allocate pixmap id: %w", err)
	}
	if err := xproto.CreatePixmapChecked(
		X, s.depth, pixmap, xproto.Drawable(win),
		uint16(s.bounds.Width), uint16(s.bounds.Height),
	).Check(); err != nil {
		return fmt.Errorf("failed to create back buffer: %w", err)
	}
	s.pixmap = pixmap

	gc, err := xproto.NewGcontextId(X)
	if err != nil {
		return fmt.Errorf("failed to allocate gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(
		X, gc, xproto.Drawable(win),
		xproto.GcGraphicsExposures, []uint32{0},
	).Check(); err != nil {
		return fmt.Errorf("failed to create gc: %w", err)
	}
	s.gc = gc

	s.buf = render.NewBuffer(s.bounds.Width, s.bounds.Height)

	if err := xproto.MapWindowChecked(X, win).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	xproto.ConfigureWindow(X, win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})

	s.renderer.Render(s.buf, s.frame)
	s.upload(s.buf.Bounds())
	s.blit(s.buf.Bounds())
	s.conn.XUtil.Sync()

	s.logger.Debug("splash window mapped",
		"window", uint32(win),
		"monitor", s.bounds.Name,
		"x", s.bounds.X,
		"y", s.bounds.Y,
		"width", s.bounds.Width,
		"height", s.bounds.Height,
		"depth", s.depth,
	)
	return nil
}

// setHints asks the window manager for a fullscreen, undecorated, topmost
// window that stays out of the taskbar. Failures only affect decoration.
func (s *SplashWindow) setHints(title string) {
	xu := s.conn.XUtil
	warn := func(what string, err error) {
		if err != nil {
			s.logger.Warn("failed to set window hint", "hint", what, "err", err)
		}
	}

	warn("_NET_WM_WINDOW_TYPE", ewmh.WmWindowTypeSet(xu, s.win, []string{"_NET_WM_WINDOW_TYPE_SPLASH"}))
	warn("_NET_WM_STATE", ewmh.WmStateSet(xu, s.win, []string{
		"_NET_WM_STATE_ABOVE",
		"_NET_WM_STATE_FULLSCREEN",
		"_NET_WM_STATE_SKIP_TASKBAR",
	}))
	warn("_NET_WM_WINDOW_OPACITY", ewmh.WmWindowOpacitySet(xu, s.win, 1.0))
	warn("_NET_WM_PID", ewmh.WmPidSet(xu, s.win, uint(os.Getpid())))
	warn("_MOTIF_WM_HINTS", motif.WmHintsSet(xu, s.win, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}))
	warn("WM_CLASS", icccm.WmClassSet(xu, s.win, &icccm.WmClass{
		Instance: "splash",
		Class:    "Splash",
	}))
	if title != "" {
		warn("_NET_WM_NAME", ewmh.WmNameSet(xu, s.win, title))
		warn("WM_NAME", icccm.WmNameSet(xu, s.win, title))
	}

	warn("WM_PROTOCOLS", icccm.WmProtocolsSet(xu, s.win, []string{"WM_DELETE_WINDOW"}))
	var err error
	if s.wmProtocols, err = xprop.Atm(xu, "WM_PROTOCOLS"); err != nil {
		warn("WM_PROTOCOLS", err)
	}
	if s.wmDelete, err = xprop.Atm(xu, "WM_DELETE_WINDOW"); err != nil {
		warn("WM_DELETE_WINDOW", err)
	}
}

// ProcessPendingMessages drains the event queue without blocking. It returns
// false once the window has been asked to close or was destroyed.
func (s *SplashWindow) ProcessPendingMessages() bool {
	if s.closed || s.quit {
		return false
	}
	X := s.conn.XUtil.Conn()
	for {
		ev, err := X.PollForEvent()
		if ev == nil && err == nil {
			return true
		}
		if err != nil {
			s.logger.Debug("x11 error", "err", err)
			continue
		}

		switch e := ev.(type) {
		case xproto.ExposeEvent:
			if e.Window == s.win {
				s.blit(image.Rect(int(e.X), int(e.Y), int(e.X)+int(e.Width), int(e.Y)+int(e.Height)))
			}
		case xproto.ClientMessageEvent:
			if e.Window == s.win && s.isDeleteRequest(e) {
				s.logger.Debug("window manager requested close")
				s.quit = true
				return false
			}
		case xproto.DestroyNotifyEvent:
			if e.Window == s.win {
				s.logger.Debug("splash window destroyed externally")
				s.win = 0
				s.quit = true
				return false
			}
		}
	}
}

func (s *SplashWindow) isDeleteRequest(e xproto.ClientMessageEvent) bool {
	if s.wmDelete == 0 || e.Type != s.wmProtocols || e.Format != 32 {
		return false
	}
	return len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == s.wmDelete
}

// RequestRedraw advances the animation by one frame and puts it on screen.
func (s *SplashWindow) RequestRedraw() {
	if s.closed || s.quit || s.win == 0 {
		return
	}
	s.frame++
	s.renderer.Render(s.buf, s.frame)
	damage := s.renderer.Damage(s.buf.Bounds())
	s.upload(damage)
	s.blit(damage)
	s.conn.XUtil.Sync()
}

// Frame returns the number of the frame currently on screen.
func (s *SplashWindow) Frame() int {
	return s.frame
}

// Bounds returns the window geometry in root coordinates.
func (s *SplashWindow) Bounds() image.Rectangle {
	return image.Rect(s.bounds.X, s.bounds.Y, s.bounds.X+s.bounds.Width, s.bounds.Y+s.bounds.Height)
}

// upload copies r of the client buffer into the back buffer pixmap, split
// into requests that fit the server's maximum request size.
func (s *SplashWindow) upload(r image.Rectangle) {
	r = r.Intersect(s.buf.Bounds())
	if r.Empty() {
		return
	}
	X := s.conn.XUtil.Conn()
	rows := rowsPerRequest(r.Dx(), maxRequestBytes())
	for y := r.Min.Y; y < r.Max.Y; y += rows {
		chunk := image.Rect(r.Min.X, y, r.Max.X, min(y+rows, r.Max.Y))
		s.scratch = toZPixmap(s.scratch, s.buf, chunk)
		xproto.PutImage(
			X,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(s.pixmap),
			s.gc,
			uint16(chunk.Dx()),
			uint16(chunk.Dy()),
			int16(chunk.Min.X),
			int16(chunk.Min.Y),
			0,
			s.depth,
			s.scratch,
		)
	}
}

// blit copies r of the back buffer onto the window.
func (s *SplashWindow) blit(r image.Rectangle) {
	r = r.Intersect(s.buf.Bounds())
	if r.Empty() || s.win == 0 || s.pixmap == 0 {
		return
	}
	xproto.CopyArea(
		s.conn.XUtil.Conn(),
		xproto.Drawable(s.pixmap),
		xproto.Drawable(s.win),
		s.gc,
		int16(r.Min.X), int16(r.Min.Y),
		int16(r.Min.X), int16(r.Min.Y),
		uint16(r.Dx()), uint16(r.Dy()),
	)
}

// Close destroys the window and its server resources. It is safe to call
// more than once.
func (s *SplashWindow) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.destroy()
	s.conn.XUtil.Sync()
	return nil
}

func (s *SplashWindow) destroy() {
	X := s.conn.XUtil.Conn()
	if s.gc != 0 {
		xproto.FreeGC(X, s.gc)
		s.gc = 0
	}
	if s.pixmap != 0 {
		xproto.FreePixmap(X, s.pixmap)
		s.pixmap = 0
	}
	if s.win != 0 {
		xproto.DestroyWindow(X, s.win)
		s.win = 0
	}
}
