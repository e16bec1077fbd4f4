// Loads and validates the darvos configuration file.
//
// The file is optional YAML. Missing fields keep their defaults, unknown
// fields are rejected, and the result is validated before use. Command line
// flags are applied on top by the caller.
//
// Example configuration:
//
//	server:
//	  host: 127.0.0.1
//	  port: 6742
//	  binary: /usr/bin/openrgb
//	retry:
//	  delay: 2s
//	on_command_error: reconnect
//
// Example usage:
//
//	cfg, err := config.Load(paths.ConfigFile())
//	if err != nil {
//	    return err
//	}
//	cfg.Server.Port = 6743
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
