// Parses flags, configures logging, and runs darvos commands.
//
// The command line accepts the following flags:
//
//	-q, --quiet                Suppress informational output.
//	-v, --verbose              Include source locations in log output.
//	-d, --debug                Enable debug output.
//	-c, --config               Configuration file path.
//	    --port                 OpenRGB server port.
//	    --retry-delay          Delay between retry attempts.
//	    --on-command-error     Reaction to a failed color command.
//
// Running darvos with a device query and no command starts watching:
//
//	darvos "Pro X Headset"
//	darvos devices
//	darvos version
//
// Flags override the configuration file, which overrides built-in defaults.
// After parsing, the global logger is reconfigured to reflect the final level
// and verbosity before any command runs.
package cli
