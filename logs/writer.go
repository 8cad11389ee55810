package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/scpi/cmds"
)

var logFile = cmds.Var[string]("-log-file")

// Writer receives terminal logs, stderr unless -log-file is given
type Writer io.Writer

func (Module) Writer() Writer {
	if *logFile == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		panic(fmt.Errorf("open log file: %w", err))
	}
	return f
}
