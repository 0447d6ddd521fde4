package winterm

import "unicode/utf16"

// wideChunk is the size of the fixed intermediate buffer for UTF-8 to UTF-16
// conversion. Longer runs loop until consumed.
const wideChunk = 256

// writeText converts a UTF-8 byte run to the console's wide encoding and
// writes it, in bounded chunks.
func (t *Terminal) writeText(p []byte) error {
	var wbuf [wideChunk]uint16
	n := 0
	for _, r := range string(p) {
		if n >= wideChunk-1 { // keep room for a surrogate pair
			if err := t.console.WriteWide(wbuf[:n]); err != nil {
				return err
			}
			n = 0
		}
		if r <= 0xffff {
			wbuf[n] = uint16(r)
			n++
		} else {
			r1, r2 := utf16.EncodeRune(r)
			wbuf[n] = uint16(r1)
			wbuf[n+1] = uint16(r2)
			n += 2
		}
	}
	if n > 0 {
		return t.console.WriteWide(wbuf[:n])
	}
	return nil
}

// Columns returns the console buffer width, queried live on every call
// because it can change between calls.
func (t *Terminal) Columns() int {
	info, err := t.console.BufferInfo()
	if err != nil {
		return DEFAULT_COLS
	}
	return info.Cols
}

// Rows returns the visible window height, queried live on every call.
func (t *Terminal) Rows() int {
	info, err := t.console.BufferInfo()
	if err != nil {
		return DEFAULT_ROWS
	}
	return info.WindowRows
}

// Flush re-asserts the cursor position. Writing to the console restarts the
// host's cursor blink timer with the cursor hidden, which is disorientating
// when moving around a line; moving the cursor onto itself makes it stay
// visible.
func (t *Terminal) Flush() error {
	info, err := t.console.BufferInfo()
	if err != nil {
		return err
	}
	return t.console.SetCursorPosition(info.CursorCol, info.CursorRow)
}
