package winterm

// sgrToAttr remaps the standard ANSI palette order (black, red, green,
// yellow, blue, magenta, cyan, white) onto the console colour bit order
// (blue, green, red).
var sgrToAttr = [8]Attribute{0, 4, 2, 6, 1, 5, 3, 7}

// applySGR folds an SGR parameter list into a console attribute, starting
// from the current attribute. An empty list is a reset, the same as [0].
// Unrecognised parameters are skipped and processing continues.
//
// The extended colour forms 38 and 48 are accepted but not honoured: the
// console palette cannot represent them, and their sub-parameters are not
// consumed, so they run through the loop like ordinary parameters.
func applySGR(params []int, attr, def Attribute) Attribute {
	if len(params) == 0 {
		params = []int{0}
	}

	for _, param := range params {
		switch {
		case param == 0: // reset
			attr = def

		case param == 1: // foreground intensity on
			attr |= ForegroundIntensity

		case param == 2 || param == 22: // foreground intensity off
			attr &^= ForegroundIntensity

		case param == 4: // background intensity on
			attr |= BackgroundIntensity

		case param == 24: // background intensity off
			attr &^= BackgroundIntensity

		case param >= 30 && param <= 37: // foreground colour
			attr = attr&^fgColorMask | sgrToAttr[param-30]

		case param == 39: // default foreground colour
			attr = attr&^fgColorMask | def&fgColorMask

		case param >= 90 && param <= 97: // bright foreground colour
			attr |= ForegroundIntensity
			attr = attr&^fgColorMask | sgrToAttr[param-90]

		case param >= 40 && param <= 47: // background colour
			attr = attr&^bgColorMask | sgrToAttr[param-40]<<4

		case param == 49: // default background colour
			attr = attr&^bgColorMask | def&bgColorMask

		case param >= 100 && param <= 107: // bright background colour
			attr |= BackgroundIntensity
			attr = attr&^bgColorMask | sgrToAttr[param-100]<<4
		}
	}

	return attr
}
