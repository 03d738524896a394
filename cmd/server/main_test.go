package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/emprecords/pkg/configuration"
)

func loadConf(t *testing.T) *configuration.Configuration {
	t.Helper()
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))
	t.Setenv("NOTIFY_BACKEND", "none")
	t.Setenv("DB_HOST", "127.0.0.1")
	// nothing listens on port 1, so every connection attempt is refused
	t.Setenv("DB_PORT", "1")
	t.Setenv("DB_CONNECT_TIMEOUT", "1s")

	conf, err := configuration.Load()
	require.NoError(t, err)
	t.Cleanup(conf.Unload)
	return conf
}

func TestRun_MigrationFailureIsReturned(t *testing.T) {
	conf := loadConf(t)
	conf.MigrateOnStart = true

	err := run(conf, make(chan os.Signal))
	require.Error(t, err)
	require.Contains(t, err.Error(), "apply migrations")
}
