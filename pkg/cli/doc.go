// Package cli implements the apputil command-line interface.
//
// Commands:
//
//	vars         list the variables of a template
//	render       interpolate a template (or files) against a context document
//	get / set    read and write property paths in a context document
//	uuid         generate UUIDs, ULIDs or short ids
//	phone        normalize and pretty-print phone numbers
//	duration     format a duration as HH:MM:SS
//	credentials  read and store API credentials
//	config       show the effective configuration and where it came from
//	version      show build information
//
// Context documents are JSON or YAML files given with -c/--context. Run
// executes a command line against explicit streams, which keeps commands
// testable without touching the process globals.
package cli
