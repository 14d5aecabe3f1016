package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, available map[string]bool) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestDetectPackageManager_PrefersApt(t *testing.T) {
	stubLookPath(t, map[string]bool{"apt-get": true, "dnf": true})

	pm, err := DetectPackageManager()
	require.NoError(t, err)
	assert.Equal(t, PackageManagerApt, pm)
}

func TestDetectPackageManager_FallsBackToDnf(t *testing.T) {
	stubLookPath(t, map[string]bool{"dnf": true})

	pm, err := DetectPackageManager()
	require.NoError(t, err)
	assert.Equal(t, PackageManagerDnf, pm)
}

func TestDetectPackageManager_NoneFound(t *testing.T) {
	stubLookPath(t, nil)

	_, err := DetectPackageManager()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no supported package manager")
}

func TestContainerRuntimeSteps(t *testing.T) {
	for _, pm := range []PackageManager{PackageManagerApt, PackageManagerDnf} {
		steps := ContainerRuntimeSteps(pm)
		require.NotEmpty(t, steps)

		names := make(map[string]bool, len(steps))
		for _, s := range steps {
			names[s.Name()] = true
			cmd, _ := s.Command()
			assert.NotEmpty(t, cmd)
		}
		assert.True(t, names["install-container-runtime"])
		assert.True(t, names["install-gpu-toolkit"])
		assert.True(t, names["enable-container-runtime"])
	}

	assert.Nil(t, ContainerRuntimeSteps(PackageManager("zypper")))
}
