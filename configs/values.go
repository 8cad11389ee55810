package configs

import (
	"errors"
	"fmt"
	"iter"
)

// First decodes the value at path from the first root defining it, the zero value when none does.
// Decoding errors panic, they mean a config file does not match the schema.
func First[T any](loader Loader, path string) (ret T) {
	if err := loader.AssignFirst(path, &ret); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return
		}
		panic(fmt.Errorf("config %s: %w", path, err))
	}
	return
}

// All yields the values at path of every root defining it, in root order
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(fmt.Errorf("config %s: %w", path, err))
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(fmt.Errorf("config %s: %w", path, err))
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Merged merges the maps at path of all roots. Keys of earlier roots win.
func Merged[K comparable, V any](loader Loader, path string) map[K]V {
	ret := make(map[K]V)
	for m := range All[map[K]V](loader, path) {
		for k, v := range m {
			if _, ok := ret[k]; !ok {
				ret[k] = v
			}
		}
	}
	return ret
}
