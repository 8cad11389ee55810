package params

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isWordByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func scanWord(input string) int {
	i := 0
	for i < len(input) && isWordByte(input[i]) {
		i++
	}
	return i
}

// Mnemonic is SCPI character data, like DEF or CH1.
// It must start with a letter, so the zero value formats to text that does not parse back.
type Mnemonic string

var _ Parameter = Mnemonic("")

var _ Parser = new(Mnemonic)

func (m Mnemonic) FormatSCPI() string {
	return string(m)
}

func (m *Mnemonic) ParseSCPI(input string) (string, bool) {
	if len(input) == 0 || !isLetter(input[0]) {
		return input, false
	}
	n := scanWord(input)
	*m = Mnemonic(input[:n])
	return input[n:], true
}
