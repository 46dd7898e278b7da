package cli

import (
	"github.com/appbuilder-labs/aio-app/internal/appconfig"
	"github.com/appbuilder-labs/aio-app/internal/config"
)

// loadStore reads the CLI configuration layers for the selected project.
func loadStore() (*config.Store, error) {
	return config.Load(projectDir)
}

// loadProject resolves the full project configuration.
func loadProject() (*config.Store, *appconfig.Config, error) {
	store, err := loadStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := appconfig.Load(projectDir, store.All(), appconfig.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}
