package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scpi/nets"
	"github.com/reusee/scpi/scpiconfigs"
)

type Module struct {
	dscope.Module
	Configs scpiconfigs.Module
	Nets    nets.Module
}
