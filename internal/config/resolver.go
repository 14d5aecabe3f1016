// Package config resolves the cluster resource configuration and loads the
// step plan that drives provisioning.
package config

import "os"

const (
	// EnvResourceConfig is the environment variable the orchestration
	// platform uses to point at the resource-configuration file.
	EnvResourceConfig = "RESOURCE_CONFIG"

	// DefaultResourceConfigPath is where the platform drops the resource
	// config on managed instances when the variable is unset.
	DefaultResourceConfigPath = "/opt/ml/config/resource_config.json"
)

// Source records how the resource-config path was supplied.
type Source string

const (
	// SourceExplicit means the path came from the caller (flag or env var).
	SourceExplicit Source = "explicit"
	// SourceDefault means the built-in fallback location was used.
	SourceDefault Source = "default"
)

// Resolution is the outcome of locating the resource config.
type Resolution struct {
	// Path is the resolved filesystem path (or s3:// URI).
	Path string
	// Source records whether the path was caller-supplied or defaulted.
	Source Source
	// Found reports whether a readable file exists at Path. For s3:// URIs
	// Resolve leaves this false; presence is checked at fetch time.
	Found bool
}

// Resolve determines the resource-config location without side effects.
// An explicit path wins over the environment variable; both count as an
// explicit source. Absence of an explicitly requested config is fatal to the
// orchestrator, absence of the default means a vanilla machine with nothing
// to provision.
func Resolve(explicitPath string) Resolution {
	path := explicitPath
	source := SourceExplicit

	if path == "" {
		path = os.Getenv(EnvResourceConfig)
	}
	if path == "" {
		path = DefaultResourceConfigPath
		source = SourceDefault
	}

	res := Resolution{Path: path, Source: source}
	if !IsS3URI(path) {
		res.Found = fileExists(path)
	}
	return res
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
