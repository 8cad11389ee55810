package cmds

// Var defines name VALUE to set the returned variable, and "name." to reset it
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Arg("VALUE"))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// Switch defines name to turn the returned flag on, and "!name" to turn it off
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// Collect defines name VALUE, repeatable, appending to the returned slice
func Collect[T any](name string) *[]T {
	var values []T
	Define(name, Func(func(v T) {
		values = append(values, v)
	}).Arg("VALUE"))
	return &values
}
