//go:build windows

package winterm

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

// Console calls not exported by golang.org/x/sys/windows.
var (
	kernel32                     = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW        = kernel32.NewProc("ReadConsoleInputW")
	procSetConsoleTextAttribute  = kernel32.NewProc("SetConsoleTextAttribute")
	procSetConsoleCursorPosition = kernel32.NewProc("SetConsoleCursorPosition")
)

const keyEventType = 0x0001

// keyEventRecord mirrors KEY_EVENT_RECORD.
type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// inputRecord mirrors INPUT_RECORD for key events; the event union is as
// large as its largest member, which is the key event.
type inputRecord struct {
	eventType uint16
	_         [2]byte
	keyEvent  keyEventRecord
}

var _ Console = (*winConsole)(nil)

// winConsole drives the live Windows console through the standard handles.
type winConsole struct {
	in  windows.Handle
	out windows.Handle
}

// NewConsole opens the process console. It fails when stdin or stdout has
// been redirected away from a console: this layer only makes sense attached
// to a real one.
func NewConsole() (Console, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("winterm: stdin or stdout is not a console")
	}
	return &winConsole{
		in:  windows.Handle(os.Stdin.Fd()),
		out: windows.Handle(os.Stdout.Fd()),
	}, nil
}

func (c *winConsole) InputMode() (uint32, error) {
	var mode uint32
	err := windows.GetConsoleMode(c.in, &mode)
	return mode, err
}

func (c *winConsole) SetInputMode(mode uint32) error {
	return windows.SetConsoleMode(c.in, mode)
}

func (c *winConsole) OutputMode() (uint32, error) {
	var mode uint32
	err := windows.GetConsoleMode(c.out, &mode)
	return mode, err
}

func (c *winConsole) SetOutputMode(mode uint32) error {
	return windows.SetConsoleMode(c.out, mode)
}

func (c *winConsole) ReadKey() (KeyEvent, error) {
	for {
		var rec inputRecord
		var read uint32
		r, _, err := procReadConsoleInputW.Call(
			uintptr(c.in),
			uintptr(unsafe.Pointer(&rec)),
			1,
			uintptr(unsafe.Pointer(&read)),
		)
		if r == 0 {
			return KeyEvent{}, err
		}
		if read == 0 || rec.eventType != keyEventType {
			continue
		}
		k := rec.keyEvent
		return KeyEvent{
			Char:        rune(k.unicodeChar),
			VirtualKey:  k.virtualKeyCode,
			ScanCode:    k.virtualScanCode,
			ControlKeys: k.controlKeyState,
			KeyDown:     k.keyDown != 0,
		}, nil
	}
}

func (c *winConsole) BufferInfo() (BufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return BufferInfo{}, err
	}
	return BufferInfo{
		Cols:       int(info.Size.X),
		Rows:       int(info.Size.Y),
		WindowRows: int(info.Window.Bottom-info.Window.Top) + 1,
		CursorCol:  int(info.CursorPosition.X),
		CursorRow:  int(info.CursorPosition.Y),
		Attr:       info.Attributes,
	}, nil
}

func (c *winConsole) WriteWide(chars []uint16) error {
	if len(chars) == 0 {
		return nil
	}
	var written uint32
	return windows.WriteConsole(c.out, &chars[0], uint32(len(chars)), &written, nil)
}

func (c *winConsole) SetTextAttribute(attr Attribute) error {
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(c.out), uintptr(attr))
	if r == 0 {
		return err
	}
	return nil
}

func (c *winConsole) SetCursorPosition(col, row int) error {
	// COORD is passed by value: X in the low word, Y in the high word.
	coord := uintptr(uint32(uint16(row))<<16 | uint32(uint16(col)))
	r, _, err := procSetConsoleCursorPosition.Call(uintptr(c.out), coord)
	if r == 0 {
		return err
	}
	return nil
}

func (c *winConsole) HasModule(name string) bool {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false
	}
	h, err := windows.GetModuleHandle(p)
	return err == nil && h != 0
}
