package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
max_fog_nodes: 5
cost_threshold: 30
device_sampling: deterministic
device_node_types:
  - container:
      image: emufog/sensor
      tag: latest
      memory_limit_bytes: 67108864
      cpu_share: 0.1
    scaling_factor: 1
    avg_per_router: 4.0
fog_node_types:
  - container:
      image: emufog/fog-small
      tag: latest
      memory_limit_bytes: 268435456
      cpu_share: 0.5
    cost: 1.0
    max_clients: 20
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), cfg.MaxFogNodes)
	assert.Equal(t, float32(30), cfg.CostThreshold)
	assert.Equal(t, float32(defaultBackboneDegreeFactor), cfg.BackboneDegreeFactor)
	assert.Equal(t, SamplingDeterministic, cfg.DeviceSampling)
	require.Len(t, cfg.FogNodeTypes, 1)
	assert.Equal(t, "emufog/fog-small", cfg.FogNodeTypes[0].Container.Image)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_MissingFogTypes(t *testing.T) {
	path := writeTempConfig(t, "max_fog_nodes: 1\ncost_threshold: 10\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fog_node_types")
}

func TestLoad_InvalidSampling(t *testing.T) {
	path := writeTempConfig(t, `
max_fog_nodes: 1
cost_threshold: 10
device_sampling: random
fog_node_types:
  - container: {image: x, tag: y}
    cost: 1
    max_clients: 1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device_sampling")
}

func TestDeviceTypesAndFogTypes_Conversion(t *testing.T) {
	path := writeTempConfig(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	deviceTypes := cfg.DeviceTypes()
	require.Len(t, deviceTypes, 1)
	assert.Equal(t, uint32(1), deviceTypes[0].ScalingFactor)
	assert.Equal(t, float32(4.0), deviceTypes[0].AvgPerRouter)

	fogTypes := cfg.FogTypes()
	require.Len(t, fogTypes, 1)
	assert.Equal(t, uint32(20), fogTypes[0].MaxClients)
}
