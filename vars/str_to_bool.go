package vars

import "strings"

func StrToBool(str string) bool {
	v, _ := ParseBool(str)
	return v
}

func ParseBool(str string) (value bool, ok bool) {
	str = strings.ToLower(str)
	switch str {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}
