package catalogs

import (
	_ "embed"
	"fmt"

	"github.com/reusee/scpi/configs"
)

// Schema validates catalog declarations in config files
//
//go:embed schema.cue
var Schema string

type Spec struct {
	Commands []CommandSpec `json:"commands,omitempty" yaml:"commands,omitempty"`
	Groups   []GroupSpec   `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type CommandSpec struct {
	Name    string      `json:"name" yaml:"name"`
	Command string      `json:"command" yaml:"command"`
	Fields  []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type FieldSpec struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type" yaml:"type"`
	// Tokens are the long forms of an enum field
	Tokens []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// GroupSpec declares variants sharing a base command
type GroupSpec struct {
	Name     string        `json:"name" yaml:"name"`
	Command  string        `json:"command,omitempty" yaml:"command,omitempty"`
	Variants []VariantSpec `json:"variants" yaml:"variants"`
}

type VariantSpec struct {
	Name    string      `json:"name" yaml:"name"`
	Command string      `json:"command,omitempty" yaml:"command,omitempty"`
	Fields  []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FromLoader collects declarations of all loaded files, in loading order.
func FromLoader(loader configs.Loader) (ret Spec, err error) {
	for value, err := range loader.IterCueValues("commands") {
		if err != nil {
			return ret, err
		}
		var specs []CommandSpec
		if err := value.Decode(&specs); err != nil {
			return ret, fmt.Errorf("decode commands: %w", err)
		}
		ret.Commands = append(ret.Commands, specs...)
	}
	for value, err := range loader.IterCueValues("groups") {
		if err != nil {
			return ret, err
		}
		var specs []GroupSpec
		if err := value.Decode(&specs); err != nil {
			return ret, fmt.Errorf("decode groups: %w", err)
		}
		ret.Groups = append(ret.Groups, specs...)
	}
	return
}

func FromSources(sources ...configs.Source) (Spec, error) {
	return FromLoader(configs.NewSourceLoader(func() ([]configs.Source, error) {
		return sources, nil
	}, Schema))
}
