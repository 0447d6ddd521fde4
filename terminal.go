package winterm

// Ensure Terminal satisfies the interfaces the line editor consumes.
var _ interface {
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
} = (*Terminal)(nil)

const (
	// DEFAULT_COLS is the geometry reported when the console cannot be queried.
	DEFAULT_COLS = 80
	// DEFAULT_ROWS is the geometry reported when the console cannot be queried.
	DEFAULT_ROWS = 25
)

// eot is returned by ReadByte if the input queue is empty after the read
// loop, which the loop makes unreachable. It is a defensive value, not a
// protocol symbol.
const eot = 0x04

// Terminal makes the native console behave like an ANSI/VT-compatible
// terminal for a line-editing engine: console key events are decoded into
// the byte stream Readline understands, and SGR escape sequences written
// through it are translated onto console text attributes. Every other escape
// sequence is dropped; this is a deliberately lossy codec, not an emulator.
//
// The consumer drives a Terminal from a single goroutine, alternating
// between ReadByte and Write. It is not safe for concurrent use.
type Terminal struct {
	console Console
	logger  Logger

	// Input side.
	in               ring
	pendingSurrogate rune
	lastSize         uint32
	onResize         func()

	// Output side.
	scanner     Scanner
	ansi        bool
	altgr       bool
	defaultAttr Attribute
	attr        Attribute

	// Console state captured for Close.
	prevInputMode  uint32
	prevOutputMode uint32
	restoreInput   bool
	restoreOutput  bool
	closed         bool
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithConsole substitutes the console implementation. Without it, New opens
// the process console via NewConsole.
func WithConsole(c Console) Option {
	return func(t *Terminal) {
		t.console = c
	}
}

// WithAltGr enables or disables Windows' Ctrl-Alt substitute for AltGr.
// Enabled by default; it collides with some of Readline's Alt bindings.
func WithAltGr(enabled bool) Option {
	return func(t *Terminal) {
		t.altgr = enabled
	}
}

// WithANSI enables or disables SGR escape translation for the session.
// Enabled by default, and disabled automatically when a third-party console
// hook already providing ANSI support is detected.
func WithANSI(enabled bool) Option {
	return func(t *Terminal) {
		t.ansi = enabled
	}
}

// WithResize sets the callback invoked when the console dimensions change
// between reads. It runs synchronously on the read path, before the next
// decoded key is produced.
func WithResize(fn func()) Option {
	return func(t *Terminal) {
		t.onResize = fn
	}
}

// WithLogger sets the diagnostic logger. Defaults to a no-op.
func WithLogger(l Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}

// New captures the console state and switches the console into raw key
// delivery. The returned Terminal owns the console until Close.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{
		altgr:  true,
		ansi:   true,
		logger: NoopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.console == nil {
		c, err := NewConsole()
		if err != nil {
			return nil, err
		}
		t.console = c
	}

	if err := t.begin(); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

func (t *Terminal) begin() error {
	mode, err := t.console.InputMode()
	if err != nil {
		return err
	}
	t.prevInputMode = mode
	t.restoreInput = true
	if err := t.console.SetInputMode(EnableWindowInput); err != nil {
		return err
	}

	mode, err = t.console.OutputMode()
	if err != nil {
		return err
	}
	t.prevOutputMode = mode

	info, err := t.console.BufferInfo()
	if err != nil {
		return err
	}
	t.defaultAttr = Attribute(info.Attr)
	t.attr = t.defaultAttr
	// Nothing on the output side is touched before this point, so there is
	// nothing to restore until the attribute has been captured.
	t.restoreOutput = true

	if t.ansi && t.detectANSIHook() {
		t.ansi = false
	}
	return nil
}

// Close restores the console to its pre-session state. It is safe to call
// when construction failed partway through, and safe to call more than once.
func (t *Terminal) Close() error {
	if t.closed || t.console == nil {
		return nil
	}
	t.closed = true

	var firstErr error
	if t.restoreOutput {
		if err := t.console.SetTextAttribute(t.defaultAttr); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := t.console.SetOutputMode(t.prevOutputMode); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.restoreInput {
		if err := t.console.SetInputMode(t.prevInputMode); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadByte returns the next decoded input byte, blocking on the console
// until a key event produces one. Implements io.ByteReader.
func (t *Terminal) ReadByte() (byte, error) {
	for t.in.len() == 0 {
		t.checkResize()
		ev, err := t.console.ReadKey()
		if err != nil {
			return 0, err
		}
		t.decodeKey(ev)
	}

	b, ok := t.in.pop()
	if !ok {
		return eot, nil
	}
	return b, nil
}

// checkResize compares console dimensions against the previous read and
// fires the resize callback on change. The first read only records; a probe
// failure is skipped silently.
func (t *Terminal) checkResize() {
	info, err := t.console.BufferInfo()
	if err != nil {
		return
	}
	packed := uint32(uint16(info.Cols))<<16 | uint32(uint16(info.WindowRows))
	if t.lastSize == 0 {
		t.lastSize = packed
		return
	}
	if packed != t.lastSize {
		t.lastSize = packed
		if t.onResize != nil {
			t.onResize()
		}
	}
}

// Write interprets p as terminal output: text runs and C0 controls are
// forwarded to the console, SGR sequences are folded into the current text
// attribute, and every other escape sequence is dropped. When ANSI
// translation is disabled for the session, p is forwarded unmodified.
// On a console failure it returns the number of bytes consumed before the
// failing token. Implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) {
	if !t.ansi {
		if err := t.writeText(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	n := 0
	for _, tok := range t.scanner.Scan(p) {
		switch tok.Type {
		case TokenText:
			if err := t.writeText(tok.Bytes); err != nil {
				return n, err
			}
		case TokenC0:
			if err := t.writeC0(tok.Code); err != nil {
				return n, err
			}
		case TokenCSI:
			if tok.Code == 'm' {
				if err := t.setAttr(applySGR(tok.Params, t.attr, t.defaultAttr)); err != nil {
					return n, err
				}
			}
		case TokenEscape:
			// Not part of the supported vocabulary.
		}
		n = tok.End
	}
	return len(p), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

func (t *Terminal) writeC0(code byte) error {
	if code == 0x07 { // no native bell
		return nil
	}
	return t.console.WriteWide([]uint16{uint16(code)})
}

// setAttr applies an attribute to the tracked state and the live console in
// one step.
func (t *Terminal) setAttr(attr Attribute) error {
	t.attr = attr
	return t.console.SetTextAttribute(attr)
}

// DefaultAttribute returns the attribute captured from the console at
// construction. SGR reset restores exactly this value.
func (t *Terminal) DefaultAttribute() Attribute {
	return t.defaultAttr
}

// CurrentAttribute returns the attribute currently in effect.
func (t *Terminal) CurrentAttribute() Attribute {
	return t.attr
}

// ANSIEnabled reports whether SGR translation is active for this session.
func (t *Terminal) ANSIEnabled() bool {
	return t.ansi
}
