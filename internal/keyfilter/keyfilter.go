// Package keyfilter decides which keystrokes may reach the input buffer.
package keyfilter

// Browser-style key codes. The dictionary is ASCII, so three closed ranges
// cover every typeable command character.
const (
	KeyBackspace = 8
	KeyEnter     = 13
	KeyControl   = 17
	KeyLeft      = 37
	KeyRight     = 39

	digitLow  = 48
	digitHigh = 57
	alphaLow  = 65
	alphaHigh = 90
	punctLow  = 186
	punctHigh = 222
)

// NoChar marks the absence of a character left of the cursor.
const NoChar = rune(0)

// Filter gates keystrokes. The control latch is its only state.
type Filter struct {
	ctrlHeld bool
}

// New returns a Filter with the control latch released.
func New() *Filter {
	return &Filter{}
}

// KeyDown records a key press. Only the control code changes the latch.
func (f *Filter) KeyDown(code int) {
	if code == KeyControl {
		f.ctrlHeld = true
	}
}

// KeyUp records a key release.
func (f *Filter) KeyUp(code int) {
	if code == KeyControl {
		f.ctrlHeld = false
	}
}

// ControlHeld reports the current latch state.
func (f *Filter) ControlHeld() bool {
	return f.ctrlHeld
}

// Allow reports whether the keystroke may be applied to the buffer.
// left is the character immediately left of the cursor, NoChar if none.
func (f *Filter) Allow(code int, left rune) bool {
	if f.ctrlHeld {
		return false
	}
	switch {
	case code >= digitLow && code <= digitHigh:
		return true
	case code >= alphaLow && code <= alphaHigh:
		return true
	case code >= punctLow && code <= punctHigh:
		return true
	case code == KeyEnter, code == KeyRight:
		return true
	case code == KeyLeft, code == KeyBackspace:
		// Never cross a line break backwards.
		return left != '\n'
	default:
		return false
	}
}

// shiftedSymbols maps shift-variants to the rune on the base key.
var shiftedSymbols = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	':': ';', '<': ',', '>': '.', '?': '/', '"': '\'',
	'{': '[', '}': ']', '|': '\\', '_': '-', '+': '=', '~': '`',
}

// baseSymbols maps unshifted punctuation to its key code.
var baseSymbols = map[rune]int{
	';': 186, '=': 187, ',': 188, '-': 189, '.': 190,
	'/': 191, '`': 192, '[': 219, '\\': 220, ']': 221, '\'': 222,
}

// CodeForRune translates a typed rune to its key code. Unknown runes map
// to 0, which Allow rejects.
func CodeForRune(r rune) int {
	if base, ok := shiftedSymbols[r]; ok {
		r = base
	}
	switch {
	case r >= '0' && r <= '9':
		return int(r)
	case r >= 'A' && r <= 'Z':
		return int(r)
	case r >= 'a' && r <= 'z':
		return int(r) - ('a' - 'A')
	}
	if code, ok := baseSymbols[r]; ok {
		return code
	}
	return 0
}
