package frontend

// CharClass is the coarse classification the scanner dispatches on
type CharClass int

// Character classes. Every rune outside of the classified ASCII characters
// falls into CharUnknown
const (
	CharUnknown CharClass = iota
	CharSpace
	CharLetter
	CharDigit
	CharPlus
	CharMinus
	CharTimes
	CharSlash
	CharLt
	CharGt
	CharExclamation
	CharEq
	CharComma
	CharPeriod
	CharColon
	CharSemicolon
	CharSingleQuote
	CharLParen
	CharRParen
)

var charClasses [128]CharClass

func init() {
	for r := 'a'; r <= 'z'; r++ {
		charClasses[r] = CharLetter
	}

	for r := 'A'; r <= 'Z'; r++ {
		charClasses[r] = CharLetter
	}

	for r := '0'; r <= '9'; r++ {
		charClasses[r] = CharDigit
	}

	for _, r := range " \t\n\r\v\f" {
		charClasses[r] = CharSpace
	}

	punctuators := map[rune]CharClass{
		'+':  CharPlus,
		'-':  CharMinus,
		'*':  CharTimes,
		'/':  CharSlash,
		'<':  CharLt,
		'>':  CharGt,
		'!':  CharExclamation,
		'=':  CharEq,
		',':  CharComma,
		'.':  CharPeriod,
		':':  CharColon,
		';':  CharSemicolon,
		'\'': CharSingleQuote,
		'(':  CharLParen,
		')':  CharRParen,
	}

	for r, class := range punctuators {
		charClasses[r] = class
	}
}

// classify maps a rune to its CharClass
func classify(r rune) CharClass {
	if r < 0 || int(r) >= len(charClasses) {
		return CharUnknown
	}

	return charClasses[r]
}

func isWordRune(r rune) bool {
	class := classify(r)
	return class == CharLetter || class == CharDigit
}
