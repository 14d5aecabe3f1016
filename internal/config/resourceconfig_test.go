package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResourceConfig = `{
  "ClusterName": "train-cluster",
  "InstanceGroups": [
    {
      "Name": "controller",
      "Instances": [
        {"InstanceName": "controller-1", "CustomerIpAddress": "10.0.1.10"}
      ]
    },
    {
      "Name": "compute",
      "Instances": [
        {"InstanceName": "compute-1", "CustomerIpAddress": "10.0.2.10"},
        {"InstanceName": "compute-2", "CustomerIpAddress": "10.0.2.11"}
      ]
    }
  ]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResourceConfig(t *testing.T) {
	path := writeTempFile(t, "resource_config.json", sampleResourceConfig)

	cfg, err := LoadResourceConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "train-cluster", cfg.ClusterName)
	require.Len(t, cfg.InstanceGroups, 2)
	assert.Equal(t, "controller", cfg.InstanceGroups[0].Name)
	assert.Len(t, cfg.InstanceGroups[1].Instances, 2)
}

func TestLoadResourceConfig_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{"InstanceGroups": [`)

	_, err := LoadResourceConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse resource config")
}

func TestLoadResourceConfig_MissingFile(t *testing.T) {
	_, err := LoadResourceConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFindInstanceByAddress(t *testing.T) {
	path := writeTempFile(t, "resource_config.json", sampleResourceConfig)
	cfg, err := LoadResourceConfig(path)
	require.NoError(t, err)

	group, inst, ok := cfg.FindInstanceByAddress("10.0.2.11")
	require.True(t, ok)
	assert.Equal(t, "compute", group.Name)
	assert.Equal(t, "compute-2", inst.InstanceName)

	_, _, ok = cfg.FindInstanceByAddress("192.168.0.1")
	assert.False(t, ok)
}

func TestAddressesOf(t *testing.T) {
	path := writeTempFile(t, "resource_config.json", sampleResourceConfig)
	cfg, err := LoadResourceConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.2.10", "10.0.2.11"}, cfg.AddressesOf("compute"))
	assert.Nil(t, cfg.AddressesOf("login"))
}

func TestLoadProvisioningParameters(t *testing.T) {
	path := writeTempFile(t, "params.json", `{"workload_manager": "slurm", "controller_group": "controller"}`)

	params, err := LoadProvisioningParameters(path)
	require.NoError(t, err)
	assert.Equal(t, "slurm", params.WorkloadManager)
	assert.Equal(t, "controller", params.ControllerGroup)
}
