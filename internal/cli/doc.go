// Package cli defines the thermwatch command surface.
//
// The root command launches the dashboard TUI; subcommands cover
// everything that should work without a terminal UI:
//
//	init        interactive preference setup
//	config      get/set persisted preferences
//	snapshot    one-shot JSON fetch for scripting
//	tour        dashboard with the guided tour forced on
//	version     build information
//	completion  shell completion scripts
//
// Flags on the root command (--server, --interval, --theme) override the
// preference file for the session without persisting.
package cli
