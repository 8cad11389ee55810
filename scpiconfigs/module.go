package scpiconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scpi/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
