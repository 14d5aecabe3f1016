package provisioning

import (
	"fmt"
	"os/exec"
)

// PackageManager identifies the host OS package manager used for the
// container-runtime install sequence.
type PackageManager string

const (
	// PackageManagerApt is apt-get on Debian/Ubuntu hosts.
	PackageManagerApt PackageManager = "apt-get"
	// PackageManagerDnf is dnf on RHEL-family hosts.
	PackageManagerDnf PackageManager = "dnf"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectPackageManager probes PATH for a supported package manager.
func DetectPackageManager() (PackageManager, error) {
	for _, pm := range []PackageManager{PackageManagerApt, PackageManagerDnf} {
		if _, err := lookPath(string(pm)); err == nil {
			return pm, nil
		}
	}
	return "", fmt.Errorf("no supported package manager found (tried %s, %s)", PackageManagerApt, PackageManagerDnf)
}

// ContainerRuntimeSteps returns the install sequence for the container
// runtime and the GPU container toolkit. Package dependency resolution is the
// package manager's job; each step is idempotent enough to be re-run by
// re-running the whole orchestrator.
func ContainerRuntimeSteps(pm PackageManager) []Step {
	switch pm {
	case PackageManagerApt:
		return []Step{
			NewCommandStep("update-package-index", "apt-get", "update", "-y"),
			NewCommandStep("install-container-runtime", "apt-get", "install", "-y", "docker.io"),
			NewCommandStep("install-gpu-toolkit", "apt-get", "install", "-y", "nvidia-container-toolkit"),
			NewCommandStep("configure-gpu-runtime", "nvidia-ctk", "runtime", "configure", "--runtime=docker"),
			NewCommandStep("enable-container-runtime", "systemctl", "enable", "--now", "docker"),
		}
	case PackageManagerDnf:
		return []Step{
			NewCommandStep("install-container-runtime", "dnf", "install", "-y", "docker"),
			NewCommandStep("install-gpu-toolkit", "dnf", "install", "-y", "nvidia-container-toolkit"),
			NewCommandStep("configure-gpu-runtime", "nvidia-ctk", "runtime", "configure", "--runtime=docker"),
			NewCommandStep("enable-container-runtime", "systemctl", "enable", "--now", "docker"),
		}
	}
	return nil
}
