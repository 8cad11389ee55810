package scpiconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/scpi/catalogs"
	"github.com/reusee/scpi/cmds"
	"github.com/reusee/scpi/configs"
	"github.com/reusee/scpi/logs"
)

//go:embed schema.cue
var schema string

var catalogFlag = cmds.Collect[string]("-catalog")

var filenames = []string{
	"scpi.cue",
	".scpi.cue",
	"scpi.yaml",
	".scpi.yaml",
}

func Schema() string {
	return catalogs.Schema + "\n" + schema
}

type SearchDirs []string

func (Module) SearchDirs() (ret SearchDirs) {
	// working directory
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, dir)
	}
	// system wide dir
	ret = append(ret, "/etc")
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	dirs SearchDirs,
) configs.Loader {

	// explicit files take precedence
	paths := append([]string(nil), *catalogFlag...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, Schema())
}
