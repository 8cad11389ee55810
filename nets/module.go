package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scpi/configs"
	"github.com/reusee/scpi/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
