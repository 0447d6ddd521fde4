package winterm

import (
	"unicode/utf16"
	"unicode/utf8"
)

// KeyEvent is one key record from the console input queue, reduced to the
// fields the decoder uses.
type KeyEvent struct {
	// Char is the translated character, 0 for non-printing keys. Characters
	// outside the Basic Multilingual Plane arrive as two events carrying a
	// surrogate pair.
	Char rune
	// VirtualKey is the virtual-key code.
	VirtualKey uint16
	// ScanCode is the hardware scan code.
	ScanCode uint16
	// ControlKeys is the modifier bitmask (see the *Pressed constants).
	ControlKeys uint32
	// KeyDown is true for presses, false for releases.
	KeyDown bool
}

// Control-key state bits, as reported by the console in
// KEY_EVENT_RECORD.dwControlKeyState.
const (
	RightAltPressed  uint32 = 0x0001
	LeftAltPressed   uint32 = 0x0002
	RightCtrlPressed uint32 = 0x0004
	LeftCtrlPressed  uint32 = 0x0008
	ShiftPressed     uint32 = 0x0010
	EnhancedKey      uint32 = 0x0100

	ctrlPressed = LeftCtrlPressed | RightCtrlPressed
)

// Virtual-key codes the decoder cares about.
const (
	vkMenu   uint16 = 0x12 // Alt
	vkPrior  uint16 = 0x21 // Page Up
	vkNext   uint16 = 0x22 // Page Down
	vkEnd    uint16 = 0x23
	vkHome   uint16 = 0x24
	vkLeft   uint16 = 0x25
	vkUp     uint16 = 0x26
	vkRight  uint16 = 0x27
	vkDown   uint16 = 0x28
	vkInsert uint16 = 0x2d
	vkDelete uint16 = 0x2e
)

// enhancedVKs lists navigation keys that may arrive without the enhanced-key
// flag set (the numpad variants omit it); the flag is inferred for them.
var enhancedVKs = [...]uint16{
	vkUp, vkDown, vkLeft, vkRight, vkHome, vkEnd,
	vkInsert, vkDelete, vkPrior, vkNext,
}

// navKeys maps navigation scan codes to the final letter of the emitted
// escape sequence. Shift selects the second letter; Ctrl switches the
// introducer from '[' to 'O'.
var navKeys = [...]struct {
	scan          uint16
	normal, shift byte
}{
	{0x48, 'A', 'a'}, // up
	{0x50, 'B', 'b'}, // down
	{0x4b, 'D', 'd'}, // left
	{0x4d, 'C', 'c'}, // right
	{0x52, '2', 'w'}, // insert
	{0x53, '3', 'e'}, // delete
	{0x47, '1', 'q'}, // home
	{0x4f, '4', 'r'}, // end
	{0x49, '5', 't'}, // page up
	{0x51, '6', 'y'}, // page down
}

// decodeKey translates one key event into zero or more bytes on the input
// queue, matching what Readline expects from a Linux terminal.
func (t *Terminal) decodeKey(ev KeyEvent) {
	if !ev.KeyDown {
		// conhost reports Alt-numeric entry as a code point on the Alt
		// key-up record.
		if ev.VirtualKey == vkMenu && ev.Char != 0 {
			t.pushChar(ev.Char)
		}
		return
	}

	flags := ev.ControlKeys

	// Left-Alt with either Ctrl and a character is Windows' substitute for
	// AltGr: the character is already composed, so it must not be treated as
	// an Alt chord. The substitute collides with some Readline bindings, so
	// it can be switched off; the event then produces nothing.
	altgr := ev.Char != 0 &&
		flags&LeftAltPressed != 0 &&
		flags&ctrlPressed != 0
	if altgr && !t.altgr {
		return
	}
	alt := !altgr && flags&(LeftAltPressed|RightAltPressed) != 0

	if ev.Char == 0 {
		t.decodeBareKey(ev, flags)
		return
	}

	// Shift-Tab has no character-level representation; emit the standard
	// sequence, but only at a sequence boundary.
	if ev.Char == '\t' && t.in.len() == 0 && flags&ShiftPressed != 0 {
		t.in.push(esc, '[', 'Z')
		return
	}

	if alt {
		t.in.push(esc)
	}
	t.pushChar(ev.Char)
}

// decodeBareKey handles key-down events that carry no character: navigation
// keys become escape sequences, Ctrl chords become control bytes, and
// everything else is discarded.
func (t *Terminal) decodeBareKey(ev KeyEvent, flags uint32) {
	for _, vk := range enhancedVKs {
		if ev.VirtualKey == vk {
			flags |= EnhancedKey
			break
		}
	}

	if flags&EnhancedKey != 0 {
		for _, k := range navKeys {
			if k.scan != ev.ScanCode {
				continue
			}
			letter := k.normal
			if flags&ShiftPressed != 0 {
				letter = k.shift
			}
			intro := byte('[')
			if flags&ctrlPressed != 0 {
				intro = 'O'
			}
			t.in.push(esc, intro, letter)
			return
		}
		return
	}

	if flags&ctrlPressed == 0 {
		return
	}

	// Map the Ctrl chord to the control byte Readline's emacs/vi keymaps
	// describe. Alt does not add an ESC prefix in this branch.
	vk := ev.VirtualKey
	var b byte
	switch {
	case vk >= 'A' && vk <= 'Z':
		b = byte(vk-'A') + 0x01
	case vk >= 0xdb && vk <= 0xdd: // VK_OEM_4..VK_OEM_6: [ \ ]
		b = byte(vk-0xdb) + 0x1b
	case vk == '2':
		b = 0x00
	case vk == '6':
		b = 0x1e
	case vk == 0xbd: // VK_OEM_MINUS
		b = 0x1f
	default:
		return
	}
	t.in.push(b)
}

// pushChar queues one character, re-encoding anything beyond the 7-bit range
// as UTF-8 in a single atomic push. Surrogate halves are paired across
// events; a high surrogate is held until its partner arrives.
func (t *Terminal) pushChar(r rune) {
	if utf16.IsSurrogate(r) {
		if r < 0xdc00 { // high half: wait for the low half
			t.pendingSurrogate = r
			return
		}
		if t.pendingSurrogate != 0 {
			r = utf16.DecodeRune(t.pendingSurrogate, r)
			t.pendingSurrogate = 0
		}
	} else {
		// A high half whose partner never arrived must not pair with an
		// unrelated low half later.
		t.pendingSurrogate = 0
	}

	if r < 0x80 {
		t.in.push(byte(r))
		return
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	t.in.push(buf[:n]...)
}
