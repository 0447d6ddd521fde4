package winterm

import "github.com/unilibs/uniwidth"

// VisibleWidth returns the number of columns s occupies once escape
// sequences are stripped: only text runs count, and wide characters (CJK,
// emoji) count as two columns. Line editors use this to measure prompts that
// embed colour sequences.
//
// An incomplete trailing escape sequence contributes nothing.
func VisibleWidth(s string) int {
	var sc Scanner
	width := 0
	for _, tok := range sc.Scan([]byte(s)) {
		if tok.Type == TokenText {
			width += uniwidth.StringWidth(string(tok.Bytes))
		}
	}
	return width
}
