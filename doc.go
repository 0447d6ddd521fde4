// Package winterm makes the native Windows console behave like an
// ANSI/VT-compatible terminal, so that a line-editing engine can be written
// portably against a byte-stream interface.
//
// It is a bidirectional codec, not an emulator:
//
//   - The input side decodes console key events into the canonical byte
//     stream Readline expects: control characters, ESC-prefixed Alt chords,
//     and ESC [ / ESC O navigation sequences.
//   - The output side scans bytes written to it for ECMA-48 control
//     sequences, maps the SGR (colour/intensity) subset onto console text
//     attributes, passes text and C0 controls through, and drops everything
//     else.
//
// # Quick Start
//
//	term, err := winterm.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Close()
//
//	term.WriteString("\x1b[1;32m$\x1b[0m ")
//	b, err := term.ReadByte() // blocks for the next decoded key byte
//
// # Architecture
//
// The package is organized around these types:
//
//   - [Terminal]: the session object; implements [io.Writer] for output and
//     [io.ByteReader] for decoded input
//   - [Scanner]: a restartable ECMA-48 lexer classifying output bytes into
//     [Token] values
//   - [Attribute]: a packed console text attribute
//   - [Console]: the native console surface, replaceable for tests
//
// # Sessions
//
// New captures the console modes and the startup text attribute; Close
// restores them. SGR reset (ESC[0m) always returns to exactly the captured
// attribute. When a third-party console hook with its own ANSI support
// (ConEmu, ANSICON) is detected, translation is disabled for the session and
// output is passed through untouched.
//
// # Concurrency
//
// A Terminal is driven by one goroutine: the consuming line editor
// alternates between ReadByte and Write. Nothing in the package locks.
package winterm
