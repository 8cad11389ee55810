package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scpi/debugs"
)

type Module struct {
	dscope.Module
	Debugs debugs.Module
}
