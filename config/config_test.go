package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		loader, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, loader)
	})

	t.Run("env prefix is uppercased", func(t *testing.T) {
		cfg := &Config{EnvPrefix: "snowid"}
		require.NoError(t, cfg.validate())
		assert.Equal(t, "SNOWID", cfg.EnvPrefix)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
idgen:
  data_center_id: 3
  machine_id: 17
metrics:
  enabled: false
`)

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	t.Run("get returns raw values", func(t *testing.T) {
		assert.EqualValues(t, 17, loader.Get("idgen.machine_id"))
	})

	t.Run("unmarshal key into struct", func(t *testing.T) {
		var got struct {
			DataCenterID int64 `mapstructure:"data_center_id"`
			MachineID    int64 `mapstructure:"machine_id"`
		}
		require.NoError(t, loader.UnmarshalKey("idgen", &got))
		assert.Equal(t, int64(3), got.DataCenterID)
		assert.Equal(t, int64(17), got.MachineID)
	})

	t.Run("missing config file is not an error", func(t *testing.T) {
		empty, err := New(&Config{Paths: []string{t.TempDir()}})
		require.NoError(t, err)
		assert.NoError(t, empty.Load(context.Background()))
	})
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", `
idgen:
  machine_id: 1
`)

	t.Setenv("SNOWID_IDGEN_MACHINE_ID", "9")

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	assert.EqualValues(t, "9", loader.Get("idgen.machine_id"))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "config.yaml", "idgen:\n  machine_id: 1\n")

	loader, err := New(&Config{Paths: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := loader.Watch(ctx, "idgen.machine_id")
	require.NoError(t, err)

	// 取消 context 后通道应被关闭
	cancel()
	for range ch {
	}
}
