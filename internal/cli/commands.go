package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thermwatch/thermwatch/internal/errors"
)

// Command-specific flags
var (
	rootServerFlag   string
	rootIntervalFlag string
	rootThemeFlag    string
	rootTourFlag     bool
	initForce        bool
	snapshotServer   string
)

// rootCmd launches the dashboard; thermwatch with no subcommand is the
// primary workflow.
var rootCmd = &cobra.Command{
	Use:   "thermwatch",
	Short: "Live terminal dashboard for a temperature sensor fleet",
	Long: `thermwatch follows a fleet of networked temperature sensors in the
terminal: fleet statistics, a device roster with liveness badges, a
24-hour fleet-average chart, and a two-channel chart per device, all
kept in sync by a scheduled refresh cycle.

Examples:
  thermwatch
  thermwatch --server http://sensors.local:8000
  thermwatch --interval 10s
  thermwatch --tour`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(rootServerFlag, rootIntervalFlag, rootThemeFlag, rootTourFlag)
	},
}

// tourCmd restarts the first-run tour inside a dashboard session.
var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Run the dashboard with the guided tour",
	Long: `Launch the dashboard and restart the first-run guided tour, even if
it was already completed.

Examples:
  thermwatch tour`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(rootServerFlag, rootIntervalFlag, rootThemeFlag, true)
	},
}

// snapshotCmd fetches one dashboard snapshot and prints it as JSON.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch one dashboard snapshot and print it as JSON",
	Long: `Perform a single dashboard fetch and print the raw snapshot to
stdout. Useful for scripting and for checking connectivity without
starting the TUI.

Examples:
  thermwatch snapshot
  thermwatch snapshot --server http://sensors.local:8000 | jq .statistics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(snapshotServer)
	},
}

// initCmd writes the preference file interactively.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the thermwatch preference file",
	Long: `Initialize thermwatch preferences interactively: API server, refresh
cadence, and theme. Writes ~/.config/thermwatch/config.yaml.

Examples:
  thermwatch init
  thermwatch init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// configCmd groups the get/set preference subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or change persisted preferences",
	Long: `Read and change persisted preferences without the TUI.

Keys: server_url, refresh_interval_ms, theme, history_size, onboarding_complete

Examples:
  thermwatch config get refresh_interval_ms
  thermwatch config set theme dark
  thermwatch config set refresh_interval_ms 0`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configGetCommand(args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change and persist one preference value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(args[0], args[1])
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for thermwatch.

Examples:
  # Bash
  thermwatch completion bash > /etc/bash_completion.d/thermwatch

  # Zsh
  thermwatch completion zsh > "${fpath[1]}/_thermwatch"`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootServerFlag, "server", "", "API base URL (overrides the preference file)")
	rootCmd.Flags().StringVar(&rootIntervalFlag, "interval", "", "refresh cadence (e.g. 10s, 1m, 0 for manual)")
	rootCmd.Flags().StringVar(&rootThemeFlag, "theme", "", "theme: auto, light, or dark")
	rootCmd.Flags().BoolVar(&rootTourFlag, "tour", false, "restart the first-run tour")

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing preferences")

	snapshotCmd.Flags().StringVar(&snapshotServer, "server", "", "API base URL (overrides the preference file)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(tourCmd)
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command. Errors are printed in the structured
// format and turn into a non-zero exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
