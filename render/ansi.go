package render

// Pre-allocated escape fragments appended during frame composition
var (
	csi      = []byte("\x1b[")
	csiHome  = []byte("\x1b[H")
	csiReset = []byte("\x1b[0m")
	oscTitle = []byte("\x1b]0;")
	oscEnd   = []byte("\x07")
	rowBreak = []byte("\r\n")
)

// resetParam is the SGR parameter that clears all attributes
const resetParam = 0

// appendInt appends a non-negative integer without allocation
// Terminal parameters are small; 0-999 covers every value emitted here
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// appendColor appends the SGR sequence selecting c, reset for ColorNone
func appendColor(dst []byte, c Color) []byte {
	p := c.sgr()
	if p == resetParam {
		return append(dst, csiReset...)
	}
	dst = append(dst, csi...)
	dst = appendInt(dst, p)
	return append(dst, 'm')
}

// appendTitle appends an OSC 0 window title, dropping control bytes
func appendTitle(dst []byte, title string) []byte {
	dst = append(dst, oscTitle...)
	for _, r := range title {
		if r < 0x20 || r == 0x7f {
			continue
		}
		dst = appendRune(dst, r)
	}
	return append(dst, oscEnd...)
}

// appendRune appends the UTF-8 encoding of r, ASCII fast path
func appendRune(dst []byte, r rune) []byte {
	if r >= 0 && r < 0x80 {
		return append(dst, byte(r))
	}
	return append(dst, string(r)...)
}
