package winterm

// Attribute packs a console character attribute: foreground colour in bits
// 0-2, foreground intensity in bit 3, background colour in bits 4-6,
// background intensity in bit 7. The bit layout matches the low byte of the
// native console attribute word.
type Attribute uint8

// Individual attribute bits, matching the console API character attributes.
const (
	ForegroundBlue      Attribute = 0x01
	ForegroundGreen     Attribute = 0x02
	ForegroundRed       Attribute = 0x04
	ForegroundIntensity Attribute = 0x08
	BackgroundBlue      Attribute = 0x10
	BackgroundGreen     Attribute = 0x20
	BackgroundRed       Attribute = 0x40
	BackgroundIntensity Attribute = 0x80
)

const (
	fgColorMask Attribute = 0x07
	bgColorMask Attribute = 0x70
)

// Foreground returns only the foreground colour bits, without intensity.
func (a Attribute) Foreground() Attribute {
	return a & fgColorMask
}

// Background returns only the background colour bits, without intensity.
func (a Attribute) Background() Attribute {
	return a & bgColorMask
}

// Bold returns true if the foreground intensity bit is set.
func (a Attribute) Bold() bool {
	return a&ForegroundIntensity != 0
}
