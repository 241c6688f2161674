//go:build windows

package win32

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/splash/internal/render"
)

// Window messages must be pumped on the thread that created the window.
func init() {
	runtime.LockOSThread()
}

const className = "SplashWindowClass"

const (
	wsPopup   = 0x80000000
	wsVisible = 0x10000000

	wsExTopmost = 0x00000008
	wsExLayered = 0x00080000

	csHRedraw = 0x0002
	csVRedraw = 0x0001

	smCXScreen = 0
	smCYScreen = 1

	lwaAlpha        = 0x00000002
	swShowMaximized = 3
	pmRemove        = 0x0001
	idcArrow        = 32512

	wmDestroy    = 0x0002
	wmPaint      = 0x000F
	wmEraseBkgnd = 0x0014
	wmQuit       = 0x0012

	biRGB        = 0
	dibRGBColors = 0
	srcCopy      = 0x00CC0020
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procRegisterClassExW           = user32.NewProc("RegisterClassExW")
	procUnregisterClassW           = user32.NewProc("UnregisterClassW")
	procCreateWindowExW            = user32.NewProc("CreateWindowExW")
	procDefWindowProcW             = user32.NewProc("DefWindowProcW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procUpdateWindow               = user32.NewProc("UpdateWindow")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
	procPeekMessageW               = user32.NewProc("PeekMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessageW           = user32.NewProc("DispatchMessageW")
	procPostQuitMessage            = user32.NewProc("PostQuitMessage")
	procBeginPaint                 = user32.NewProc("BeginPaint")
	procEndPaint                   = user32.NewProc("EndPaint")
	procGetSystemMetrics           = user32.NewProc("GetSystemMetrics")
	procLoadCursorW                = user32.NewProc("LoadCursorW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")

	procStretchDIBits = gdi32.NewProc("StretchDIBits")
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type msg struct {
	Hwnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
	Private uint32
}

type paintStruct struct {
	Hdc       windows.Handle
	Erase     int32
	Paint     rect
	Restore   int32
	IncUpdate int32
	Reserved  [32]byte
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

var (
	wndProcOnce sync.Once
	wndProcPtr  uintptr

	// Only touched from the locked main thread.
	liveWindows = map[windows.HWND]*SplashWindow{}
)

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	if w, ok := liveWindows[windows.HWND(hwnd)]; ok {
		switch message {
		case wmPaint:
			w.onPaint()
			return 0
		case wmEraseBkgnd:
			return 1
		case wmDestroy:
			w.onDestroy()
			procPostQuitMessage.Call(0)
			return 0
		}
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, message, wParam, lParam)
	return r
}

// SplashOptions configures NewSplashWindow.
type SplashOptions struct {
	Title    string
	Renderer *render.Renderer
	Logger   *slog.Logger
}

// SplashWindow is a full-screen WS_POPUP window with WS_EX_TOPMOST and
// WS_EX_LAYERED set. Each frame is rendered into an RGBA buffer, converted
// into a top-down DIB and painted with one StretchDIBits call.
type SplashWindow struct {
	renderer *render.Renderer
	logger   *slog.Logger

	instance  windows.Handle
	className *uint16
	hwnd      windows.HWND

	buf  *image.RGBA
	dib  []byte
	info bitmapInfo

	frame  int
	quit   bool
	closed bool
}

// NewSplashWindow registers the window class, creates the window covering
// the primary screen, and paints the first frame.
func NewSplashWindow(opts SplashOptions) (*SplashWindow, error) {
	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w := &SplashWindow{renderer: opts.Renderer, logger: logger}
	if err := w.create(opts.Title); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *SplashWindow) create(title string) error {
	if err := windows.GetModuleHandleEx(0, nil, &w.instance); err != nil {
		return fmt.Errorf("GetModuleHandleEx: %w", err)
	}
	cls, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return err
	}
	w.className = cls
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	wndProcOnce.Do(func() { wndProcPtr = windows.NewCallback(wndProc) })
	cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
	wc := wndClassEx{
		Style:     csHRedraw | csVRedraw,
		WndProc:   wndProcPtr,
		Instance:  w.instance,
		Cursor:    windows.Handle(cursor),
		ClassName: cls,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
		if !errors.Is(err, windows.ERROR_CLASS_ALREADY_EXISTS) {
			return fmt.Errorf("RegisterClassExW: %w", err)
		}
	}

	width, _, _ := procGetSystemMetrics.Call(smCXScreen)
	height, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if int32(width) <= 0 || int32(height) <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", int32(width), int32(height))
	}

	hwnd, _, err := procCreateWindowExW.Call(
		wsExTopmost|wsExLayered,
		uintptr(unsafe.Pointer(cls)),
		uintptr(unsafe.Pointer(titlePtr)),
		wsPopup|wsVisible,
		0, 0, width, height,
		0, 0, uintptr(w.instance), 0,
	)
	if hwnd == 0 {
		return fmt.Errorf("CreateWindowExW: %w", err)
	}
	w.hwnd = windows.HWND(hwnd)
	liveWindows[w.hwnd] = w

	if r, _, err := procSetLayeredWindowAttributes.Call(hwnd, 0, 255, lwaAlpha); r == 0 {
		w.logger.Warn("SetLayeredWindowAttributes failed", "err", err)
	}

	w.buf = render.NewBuffer(int(width), int(height))
	w.dib = make([]byte, len(w.buf.Pix))
	w.info.Header = bitmapInfoHeader{
		Width:       int32(width),
		Height:      -int32(height),
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}
	w.info.Header.Size = uint32(unsafe.Sizeof(w.info.Header))

	w.renderer.Render(w.buf, w.frame)
	copyBGRA(w.dib, w.buf, w.buf.Bounds())

	procShowWindow.Call(hwnd, swShowMaximized)
	procUpdateWindow.Call(hwnd)

	w.logger.Debug("splash window shown", "hwnd", hwnd, "width", int(width), "height", int(height))
	return nil
}

// ProcessPendingMessages dispatches every queued message without blocking and
// returns false once WM_QUIT has been seen.
func (w *SplashWindow) ProcessPendingMessages() bool {
	if w.quit || w.closed {
		return false
	}
	var m msg
	for {
		r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if r == 0 {
			return true
		}
		if m.Message == wmQuit {
			w.quit = true
			return false
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// RequestRedraw renders the next frame, invalidates the window and paints it
// synchronously.
func (w *SplashWindow) RequestRedraw() {
	if w.closed || w.hwnd == 0 {
		return
	}
	w.frame++
	w.renderer.Render(w.buf, w.frame)
	copyBGRA(w.dib, w.buf, w.renderer.Damage(w.buf.Bounds()))
	procInvalidateRect.Call(uintptr(w.hwnd), 0, 0)
	procUpdateWindow.Call(uintptr(w.hwnd))
}

// Frame returns the number of the frame currently in the back buffer.
func (w *SplashWindow) Frame() int {
	return w.frame
}

func (w *SplashWindow) onPaint() {
	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))
	if hdc != 0 && w.buf != nil {
		width := uintptr(w.buf.Bounds().Dx())
		height := uintptr(w.buf.Bounds().Dy())
		procStretchDIBits.Call(
			hdc,
			0, 0, width, height,
			0, 0, width, height,
			uintptr(unsafe.Pointer(&w.dib[0])),
			uintptr(unsafe.Pointer(&w.info)),
			dibRGBColors,
			srcCopy,
		)
	}
	procEndPaint.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&ps)))
}

func (w *SplashWindow) onDestroy() {
	delete(liveWindows, w.hwnd)
	w.hwnd = 0
}

// Close destroys the window and unregisters its class. It is safe to call
// more than once.
func (w *SplashWindow) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if w.hwnd != 0 {
		hwnd := w.hwnd
		if r, _, err := procDestroyWindow.Call(uintptr(hwnd)); r == 0 {
			errs = append(errs, fmt.Errorf("DestroyWindow: %w", err))
		}
		delete(liveWindows, hwnd)
		w.hwnd = 0
	}
	if w.className != nil {
		procUnregisterClassW.Call(uintptr(unsafe.Pointer(w.className)), uintptr(w.instance))
	}
	return errors.Join(errs...)
}
