package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/darvos-rgb/darvos/internal"
)

// Name of the configuration file inside [ConfigDir].
const configFileName = "config.yaml"

// Directory holding the user configuration.
//
//	Linux:   $XDG_CONFIG_HOME/darvos or ~/.config/darvos
//	macOS:   ~/Library/Application Support/darvos
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, internal.Name)
}

// Default path to the configuration file.
//
//	Linux:   $XDG_CONFIG_HOME/darvos/config.yaml
//	macOS:   ~/Library/Application Support/darvos/config.yaml
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}
