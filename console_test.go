package winterm

import (
	"io"
	"testing"
	"unicode/utf16"
)

var _ Console = (*fakeConsole)(nil)

// fakeConsole is a scripted Console: key events are served from a queue and
// all output-side calls are recorded.
type fakeConsole struct {
	events []KeyEvent

	info    BufferInfo
	infoErr error
	attrErr error

	modules map[string]bool

	inputMode  uint32
	outputMode uint32

	setInputModes  []uint32
	setOutputModes []uint32
	attrs          []Attribute
	wide           []uint16
	cursorMoves    [][2]int
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{
		info: BufferInfo{
			Cols:       80,
			Rows:       300,
			WindowRows: 25,
			Attr:       0x07,
		},
		inputMode:  0x01f7,
		outputMode: 0x0003,
	}
}

func (c *fakeConsole) InputMode() (uint32, error) {
	return c.inputMode, nil
}

func (c *fakeConsole) SetInputMode(mode uint32) error {
	c.setInputModes = append(c.setInputModes, mode)
	return nil
}

func (c *fakeConsole) OutputMode() (uint32, error) {
	return c.outputMode, nil
}

func (c *fakeConsole) SetOutputMode(mode uint32) error {
	c.setOutputModes = append(c.setOutputModes, mode)
	return nil
}

func (c *fakeConsole) ReadKey() (KeyEvent, error) {
	if len(c.events) == 0 {
		return KeyEvent{}, io.EOF
	}
	ev := c.events[0]
	c.events = c.events[1:]
	return ev, nil
}

func (c *fakeConsole) BufferInfo() (BufferInfo, error) {
	if c.infoErr != nil {
		return BufferInfo{}, c.infoErr
	}
	return c.info, nil
}

func (c *fakeConsole) WriteWide(chars []uint16) error {
	c.wide = append(c.wide, chars...)
	return nil
}

func (c *fakeConsole) SetTextAttribute(attr Attribute) error {
	if c.attrErr != nil {
		return c.attrErr
	}
	c.attrs = append(c.attrs, attr)
	return nil
}

func (c *fakeConsole) SetCursorPosition(col, row int) error {
	c.cursorMoves = append(c.cursorMoves, [2]int{col, row})
	return nil
}

func (c *fakeConsole) HasModule(name string) bool {
	return c.modules[name]
}

// written returns everything written to the console as a string.
func (c *fakeConsole) written() string {
	return string(utf16.Decode(c.wide))
}

func newTestTerminal(t *testing.T, c *fakeConsole, opts ...Option) *Terminal {
	t.Helper()
	term, err := New(append([]Option{WithConsole(c)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return term
}
