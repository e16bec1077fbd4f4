// Provides platform-appropriate paths for darvos.
//
// Paths follow XDG conventions on Linux. The program name "darvos" is used as
// the subdirectory under each base path.
//
// Example usage:
//
//	cfg, err := config.Load(paths.ConfigFile())
package paths
