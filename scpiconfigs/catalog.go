package scpiconfigs

import (
	"sync"

	"github.com/reusee/scpi/catalogs"
	"github.com/reusee/scpi/configs"
	"github.com/reusee/scpi/logs"
)

type GetCatalog func() (*catalogs.Catalog, error)

func (Module) GetCatalog(
	loader configs.Loader,
	logger logs.Logger,
) GetCatalog {
	return sync.OnceValues(func() (*catalogs.Catalog, error) {
		spec, err := catalogs.FromLoader(loader)
		if err != nil {
			return nil, err
		}
		catalog, err := catalogs.Build(spec)
		if err != nil {
			return nil, err
		}
		logger.Debug("catalog", "commands", len(catalog.Names()))
		return catalog, nil
	})
}

// Instrument resolves a configured instrument name to its address, other names are returned as is.
type Instrument func(name string) string

func (Module) Instrument(
	loader configs.Loader,
) Instrument {
	instruments := configs.Merged[string, string](loader, "instruments")
	return func(name string) string {
		if addr, ok := instruments[name]; ok {
			return addr
		}
		return name
	}
}
