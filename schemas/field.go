package schemas

import "strconv"

type Field struct {
	Index int
	Name  string
	Codec Codec
}

func (f Field) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return "#" + strconv.Itoa(f.Index)
}
