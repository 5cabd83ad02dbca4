// ABOUTME: Root command for the storesync CLI
// ABOUTME: Handles global flags, wiring, and launching the TUI

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/config"
	"github.com/storesync/console/internal/session"
	"github.com/storesync/console/internal/token"
	"github.com/storesync/console/internal/tui"
	"github.com/storesync/console/internal/tui/debuglog"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Run without a subcommand it starts the
// interactive console.
var rootCmd = &cobra.Command{
	Use:   "storesync",
	Short: "Terminal console for the StoreSync inventory backend",
	Long: `storesync is a terminal console for the StoreSync inventory backend.

Run without arguments it starts the interactive console. Subcommands
cover authentication and scripted checks for CI pipelines.

Environment Variables:
  STORESYNC_API_URL          Backend API URL (default: http://localhost:5000/api)
  STORESYNC_TIMEOUT_SECONDS  Request timeout in seconds (default: 30)
  STORESYNC_DEBUG            Set to 1 to write a debug log to the config dir`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, sess := wire()

		if cfg.Debug {
			if err := debuglog.Init(cfg.ConfigDir); err == nil {
				defer debuglog.Close()
			}
		}

		return tui.Run(client, sess)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides STORESYNC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// wire builds the shared dependency chain: config, token store, API
// client, session. Every command goes through the same chain so the
// credential handling never diverges.
func wire() (*config.Config, *api.Client, *session.Session) {
	cfg := config.Load(apiURL)
	store := token.New(cfg.ConfigDir)
	client := api.New(cfg.APIURL, store, cfg.RequestTimeout)
	sess := session.New(store, client)
	return cfg, client, sess
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
