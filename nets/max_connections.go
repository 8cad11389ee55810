package nets

import (
	"cmp"

	"github.com/reusee/scpi/configs"
)

// MaxConnections limits concurrent connections of a served endpoint
type MaxConnections int

const DefaultMaxConnections = MaxConnections(16)

func (Module) MaxConnections(
	loader configs.Loader,
) MaxConnections {
	n := cmp.Or(
		configs.First[MaxConnections](loader, "max_connections"),
		DefaultMaxConnections,
	)
	if n < 0 {
		return DefaultMaxConnections
	}
	return n
}
