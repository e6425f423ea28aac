package entities

import "path/filepath"

// XDGPaths holds resolved XDG-compliant paths for the deployer's ambient
// configuration and default working directory. Path resolution is
// performed by the XDGPathResolver adapter; this entity stores the results as
// a value object.
type XDGPaths struct {
	// ConfigHome is the resolved configuration directory, typically
	// ~/.config/tracker-deployer/ or overridden by XDG_CONFIG_HOME.
	ConfigHome string

	// DataHome is the resolved data directory, typically
	// ~/.local/share/tracker-deployer/ or overridden by XDG_DATA_HOME. It
	// is not the default working directory: --working-dir defaults to ".".
	DataHome string
}

// ConfigFile returns the path to the global config file.
func (p XDGPaths) ConfigFile() string {
	return filepath.Join(p.ConfigHome, "config.toml")
}

// Validate checks that all required paths are set and absolute.
func (p XDGPaths) Validate() error {
	if p.ConfigHome == "" {
		return newValidationError("ConfigHome", "", "config home path is required")
	}
	if !filepath.IsAbs(p.ConfigHome) {
		return newValidationError("ConfigHome", p.ConfigHome, "config home path must be absolute")
	}
	if p.DataHome == "" {
		return newValidationError("DataHome", "", "data home path is required")
	}
	if !filepath.IsAbs(p.DataHome) {
		return newValidationError("DataHome", p.DataHome, "data home path must be absolute")
	}
	return nil
}
