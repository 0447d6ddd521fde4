package winterm

// TokenType classifies a slice of the output stream produced by the Scanner.
type TokenType int

const (
	// TokenText is a run of printable bytes, forwarded unchanged.
	TokenText TokenType = iota
	// TokenC0 is a single control byte in the 0x00-0x1F range.
	TokenC0
	// TokenCSI is a complete CSI sequence (ESC [ ... final); Code holds the
	// final byte and Params the decoded parameter list.
	TokenCSI
	// TokenEscape is any other complete ESC-introduced sequence. It carries
	// only its final byte so the interpreter can discard it.
	TokenEscape
)

// Token is one classified piece of the output stream.
type Token struct {
	Type TokenType
	// Bytes is the raw text run for TokenText. It aliases the buffer passed
	// to Scan and is valid only until the next call.
	Bytes []byte
	// Code is the control byte for TokenC0 and the final byte for TokenCSI
	// and TokenEscape.
	Code byte
	// Params holds the decoded CSI parameters. An omitted parameter decodes
	// as 0; ESC[m decodes as no parameters at all.
	Params []int
	// End is the index just past the token in the buffer passed to Scan. For
	// a sequence resumed from an earlier call it counts only the bytes
	// consumed from the current buffer.
	End int
}

const (
	esc = 0x1b

	// maxCSIParams bounds the recorded parameter list; further parameters in
	// the same sequence are consumed but dropped.
	maxCSIParams = 32
	// maxSeqLength bounds a single escape sequence. A sequence that grows
	// past it is discarded, so a corrupt stream cannot pin memory.
	maxSeqLength = 64
)

type scanState int

const (
	scanGround scanState = iota
	scanEscape
	scanEscapeInter
	scanCSI
	scanCSIInter
)

// Scanner splits console output into text runs and control sequences. It is
// restartable: a buffer handed to Scan may end in the middle of an escape
// sequence, and the sequence completes on a later call with no bytes lost or
// duplicated. The zero value is ready to use.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	state  scanState
	params []int
	num    int
	hasNum bool
	sawSep bool
	seqLen int
	tokens []Token
}

// Scan consumes p and returns the complete tokens it yields. Returned tokens
// are valid until the next call.
func (s *Scanner) Scan(p []byte) []Token {
	s.tokens = s.tokens[:0]

	runStart := -1
	flush := func(end int) {
		if runStart >= 0 {
			s.tokens = append(s.tokens, Token{Type: TokenText, Bytes: p[runStart:end], End: end})
			runStart = -1
		}
	}

	i := 0
	for i < len(p) {
		b := p[i]

		if s.state != scanGround {
			s.seqLen++
			if s.seqLen > maxSeqLength {
				// Flooded sequence: drop it and reprocess this byte.
				s.state = scanGround
				continue
			}
		}

		switch s.state {
		case scanGround:
			if b >= 0x20 { // printable, DEL and high bytes all pass through
				if runStart < 0 {
					runStart = i
				}
				i++
				continue
			}
			flush(i)
			if b == esc {
				s.startSequence()
			} else {
				s.tokens = append(s.tokens, Token{Type: TokenC0, Code: b, End: i + 1})
			}
			i++

		case scanEscape:
			switch {
			case b == '[':
				s.state = scanCSI
				i++
			case b >= 0x20 && b <= 0x2f:
				s.state = scanEscapeInter
				i++
			case b >= 0x30 && b <= 0x7e:
				s.emitEscape(b, i+1)
				i++
			default:
				// Not a sequence after all; reprocess the byte.
				s.state = scanGround
			}

		case scanEscapeInter:
			switch {
			case b >= 0x20 && b <= 0x2f:
				i++
			case b >= 0x30 && b <= 0x7e:
				s.emitEscape(b, i+1)
				i++
			default:
				s.state = scanGround
			}

		case scanCSI:
			switch {
			case b >= '0' && b <= '9':
				if s.num < 1<<24 { // clamp instead of overflowing
					s.num = s.num*10 + int(b-'0')
				}
				s.hasNum = true
				i++
			case b == ';':
				s.pushParam()
				s.sawSep = true
				i++
			case b >= 0x30 && b <= 0x3f:
				// Private markers and sub-parameter separators are skipped.
				i++
			case b >= 0x20 && b <= 0x2f:
				s.state = scanCSIInter
				i++
			case b >= 0x40 && b <= 0x7e:
				s.emitCSI(b, i+1)
				i++
			default:
				s.state = scanGround
			}

		case scanCSIInter:
			switch {
			case b >= 0x20 && b <= 0x2f:
				i++
			case b >= 0x40 && b <= 0x7e:
				s.emitCSI(b, i+1)
				i++
			default:
				s.state = scanGround
			}
		}
	}
	flush(len(p))

	return s.tokens
}

func (s *Scanner) startSequence() {
	s.state = scanEscape
	s.params = nil
	s.num = 0
	s.hasNum = false
	s.sawSep = false
	s.seqLen = 1
}

func (s *Scanner) pushParam() {
	if len(s.params) < maxCSIParams {
		s.params = append(s.params, s.num)
	}
	s.num = 0
	s.hasNum = false
}

func (s *Scanner) emitEscape(final byte, end int) {
	s.tokens = append(s.tokens, Token{Type: TokenEscape, Code: final, End: end})
	s.state = scanGround
}

func (s *Scanner) emitCSI(final byte, end int) {
	if s.hasNum || s.sawSep {
		s.pushParam()
	}
	s.tokens = append(s.tokens, Token{Type: TokenCSI, Code: final, Params: s.params, End: end})
	s.params = nil
	s.state = scanGround
}
