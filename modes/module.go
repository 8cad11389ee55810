package modes

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/cmds"
)

var development = cmds.Switch("-dev")

// Module provides the Mode of a scope, and the *testing.T of test scopes
type Module struct {
	dscope.Module
	mode Mode
	t    *testing.T
}

func ForProduction() Module {
	return Module{
		mode: ModeProduction,
	}
}

func ForTest(t *testing.T) Module {
	return Module{
		mode: ModeDevelopment,
		t:    t,
	}
}

// FromFlags is ForProduction unless -dev is given
func FromFlags() Module {
	if *development {
		return Module{
			mode: ModeDevelopment,
		}
	}
	return ForProduction()
}

func (m Module) T() *testing.T {
	return m.t
}

func (m Module) Mode() Mode {
	return m.mode
}
