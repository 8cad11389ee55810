package nets

import (
	"cmp"
	"fmt"
	"time"

	"github.com/reusee/scpi/cmds"
	"github.com/reusee/scpi/configs"
)

// Timeout limits one instrument operation when the context has no deadline
type Timeout time.Duration

const DefaultTimeout = Timeout(5 * time.Second)

var timeoutFlag = cmds.Var[string]("-timeout")

func (Module) Timeout(
	loader configs.Loader,
) Timeout {
	str := cmp.Or(
		*timeoutFlag,
		configs.First[string](loader, "timeout"),
	)
	if str == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		panic(fmt.Errorf("bad timeout %q: %w", str, err))
	}
	if d <= 0 {
		return DefaultTimeout
	}
	return Timeout(d)
}
