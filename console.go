package winterm

// BufferInfo is a snapshot of console screen buffer state.
type BufferInfo struct {
	// Cols and Rows are the buffer dimensions in characters. The buffer is
	// usually taller than the visible window.
	Cols, Rows int
	// WindowRows is the height of the visible window.
	WindowRows int
	// CursorCol and CursorRow locate the cursor within the buffer.
	CursorCol, CursorRow int
	// Attr is the character attribute currently in effect. Only the low
	// byte carries colour information.
	Attr uint16
}

// Console is the native console surface the terminal drives. The production
// implementation (see NewConsole) talks to the Windows console API; tests
// substitute a scripted implementation.
type Console interface {
	// InputMode returns the console input mode flags.
	InputMode() (uint32, error)
	// SetInputMode replaces the console input mode flags.
	SetInputMode(mode uint32) error
	// OutputMode returns the console output mode flags.
	OutputMode() (uint32, error)
	// SetOutputMode replaces the console output mode flags.
	SetOutputMode(mode uint32) error
	// ReadKey blocks until the next key record arrives on the input queue.
	// Records other than key events are skipped.
	ReadKey() (KeyEvent, error)
	// BufferInfo reports the current screen buffer geometry and attributes.
	BufferInfo() (BufferInfo, error)
	// WriteWide writes UTF-16 code units at the cursor position.
	WriteWide(chars []uint16) error
	// SetTextAttribute sets the attribute applied to subsequent writes.
	SetTextAttribute(attr Attribute) error
	// SetCursorPosition moves the cursor.
	SetCursorPosition(col, row int) error
	// HasModule reports whether a module with the given file name is loaded
	// into the current process.
	HasModule(name string) bool
}

// Console input mode flags (the subset used here).
const (
	// EnableWindowInput delivers window size changes on the input queue.
	// Setting the mode to exactly this value also clears the processed-input
	// flag, so Ctrl-C and Ctrl-S arrive as ordinary key events.
	EnableWindowInput uint32 = 0x0008
)
