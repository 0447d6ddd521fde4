package winterm

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"
)

func TestScannerText(t *testing.T) {
	var s Scanner
	tokens := s.Scan([]byte("hello"))
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Type != TokenText || string(tokens[0].Bytes) != "hello" {
		t.Errorf("got %+v, want text %q", tokens[0], "hello")
	}
}

func TestScannerC0(t *testing.T) {
	var s Scanner
	tokens := s.Scan([]byte("a\rb\nc\ad"))
	want := []Token{
		{Type: TokenText, Bytes: []byte("a")},
		{Type: TokenC0, Code: '\r'},
		{Type: TokenText, Bytes: []byte("b")},
		{Type: TokenC0, Code: '\n'},
		{Type: TokenText, Bytes: []byte("c")},
		{Type: TokenC0, Code: 0x07},
		{Type: TokenText, Bytes: []byte("d")},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Type != want[i].Type || tok.Code != want[i].Code || !bytes.Equal(tok.Bytes, want[i].Bytes) {
			t.Errorf("token %d: got %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestScannerCSIParams(t *testing.T) {
	tests := []struct {
		in     string
		code   byte
		params []int
	}{
		{"\x1b[m", 'm', nil},
		{"\x1b[0m", 'm', []int{0}},
		{"\x1b[1;31m", 'm', []int{1, 31}},
		{"\x1b[;31m", 'm', []int{0, 31}},
		{"\x1b[38;5;196m", 'm', []int{38, 5, 196}},
		{"\x1b[2J", 'J', []int{2}},
		{"\x1b[H", 'H', nil},
	}
	for _, tt := range tests {
		var s Scanner
		tokens := s.Scan([]byte(tt.in))
		if len(tokens) != 1 {
			t.Errorf("%q: got %d tokens, want 1", tt.in, len(tokens))
			continue
		}
		tok := tokens[0]
		if tok.Type != TokenCSI {
			t.Errorf("%q: got type %v, want TokenCSI", tt.in, tok.Type)
		}
		if tok.Code != tt.code {
			t.Errorf("%q: got code %q, want %q", tt.in, tok.Code, tt.code)
		}
		if !reflect.DeepEqual(tok.Params, tt.params) {
			t.Errorf("%q: got params %v, want %v", tt.in, tok.Params, tt.params)
		}
	}
}

func TestScannerEscape(t *testing.T) {
	tests := []struct {
		in   string
		code byte
	}{
		{"\x1b7", '7'},
		{"\x1b(B", 'B'},
		{"\x1b#8", '8'},
	}
	for _, tt := range tests {
		var s Scanner
		tokens := s.Scan([]byte(tt.in))
		if len(tokens) != 1 {
			t.Errorf("%q: got %d tokens, want 1", tt.in, len(tokens))
			continue
		}
		if tokens[0].Type != TokenEscape || tokens[0].Code != tt.code {
			t.Errorf("%q: got %+v, want escape %q", tt.in, tokens[0], tt.code)
		}
	}
}

func TestScannerPrivateMarkers(t *testing.T) {
	var s Scanner
	tokens := s.Scan([]byte("\x1b[?25h"))
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if tok.Type != TokenCSI || tok.Code != 'h' {
		t.Errorf("got %+v, want CSI h", tok)
	}
	if !reflect.DeepEqual(tok.Params, []int{25}) {
		t.Errorf("got params %v, want [25]", tok.Params)
	}
}

// collect flattens a token slice into a comparable form. Text bytes are
// copied because they only live until the next Scan.
func collect(dst []Token, tokens []Token) []Token {
	for _, tok := range tokens {
		if tok.Type == TokenText {
			tok.Bytes = append([]byte(nil), tok.Bytes...)
		}
		dst = append(dst, tok)
	}
	return dst
}

// joinText merges adjacent text tokens so streams split at different points
// compare equal.
func joinText(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Type == TokenText && len(out) > 0 && out[len(out)-1].Type == TokenText {
			out[len(out)-1].Bytes = append(out[len(out)-1].Bytes, tok.Bytes...)
			continue
		}
		out = append(out, tok)
	}
	return out
}

func tokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Code != b[i].Code {
			return false
		}
		if !bytes.Equal(a[i].Bytes, b[i].Bytes) {
			return false
		}
		if !reflect.DeepEqual(a[i].Params, b[i].Params) {
			return false
		}
	}
	return true
}

func TestScannerResumable(t *testing.T) {
	input := []byte("pre\x1b[1;31mpost\x1b[0m\x07tail")

	var whole Scanner
	want := joinText(collect(nil, whole.Scan(input)))

	for cut := 0; cut <= len(input); cut++ {
		var s Scanner
		var got []Token
		got = collect(got, s.Scan(input[:cut]))
		got = collect(got, s.Scan(input[cut:]))
		got = joinText(got)
		if !tokensEqual(got, want) {
			t.Errorf("cut %d: got %+v, want %+v", cut, got, want)
		}
	}
}

func TestScannerByteAtATime(t *testing.T) {
	input := []byte("\x1b[38;5;196mX")

	var s Scanner
	var got []Token
	for i := range input {
		got = collect(got, s.Scan(input[i:i+1]))
	}
	got = joinText(got)

	want := []Token{
		{Type: TokenCSI, Code: 'm', Params: []int{38, 5, 196}},
		{Type: TokenText, Bytes: []byte("X")},
	}
	if !tokensEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestScannerFloodDiscard(t *testing.T) {
	var s Scanner
	flood := []byte("\x1b[" + fmt.Sprintf("%0*d", maxSeqLength+8, 0) + "m")
	tokens := s.Scan(flood)
	for _, tok := range tokens {
		if tok.Type == TokenCSI {
			t.Errorf("flooded sequence produced CSI token %+v", tok)
		}
	}

	// The scanner must be back on its feet for the next sequence.
	tokens = s.Scan([]byte("\x1b[31m"))
	found := false
	for _, tok := range tokens {
		if tok.Type == TokenCSI && tok.Code == 'm' && reflect.DeepEqual(tok.Params, []int{31}) {
			found = true
		}
	}
	if !found {
		t.Errorf("scanner did not recover after flood: %+v", tokens)
	}
}

func TestScannerAbandonedEscape(t *testing.T) {
	var s Scanner
	// ESC followed by a control byte is not a sequence; the control byte is
	// reprocessed on its own.
	tokens := s.Scan([]byte("a\x1b\nb"))
	want := []Token{
		{Type: TokenText, Bytes: []byte("a")},
		{Type: TokenC0, Code: '\n'},
		{Type: TokenText, Bytes: []byte("b")},
	}
	if !tokensEqual(joinText(collect(nil, tokens)), want) {
		t.Errorf("got %+v, want %+v", tokens, want)
	}
}

func TestScannerParamClamp(t *testing.T) {
	var s Scanner
	tokens := s.Scan([]byte("\x1b[99999999999999999999m"))
	if len(tokens) != 1 || tokens[0].Type != TokenCSI {
		t.Fatalf("got %+v, want one CSI token", tokens)
	}
	if len(tokens[0].Params) != 1 || tokens[0].Params[0] < 1<<24 {
		t.Errorf("oversized parameter not clamped: %v", tokens[0].Params)
	}
}

func TestScannerHighBytesPassThrough(t *testing.T) {
	var s Scanner
	input := []byte("héllo \xe4\xb8\x96")
	tokens := s.Scan(input)
	if len(tokens) != 1 || tokens[0].Type != TokenText {
		t.Fatalf("got %+v, want one text token", tokens)
	}
	if !bytes.Equal(tokens[0].Bytes, input) {
		t.Errorf("got %q, want %q", tokens[0].Bytes, input)
	}
}
