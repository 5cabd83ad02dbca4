// ABOUTME: Alerts command for the storesync CLI
// ABOUTME: Unread-alert check with exit codes for CI pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/storesync/console/internal/api"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Check for unread stock alerts",
	Long: `Check for unread stock alerts and exit non-zero if any exist.

Exit codes:
  0 - No unread alerts
  1 - One or more unread alerts
  2 - Error (connectivity, not logged in)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAlerts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

// runAlerts fetches the alerts and returns an exit code
func runAlerts(ctx context.Context, w io.Writer) int {
	_, client, _ := wire()

	alerts, err := client.ListAlerts(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var unread []api.Alert
	for _, a := range alerts {
		if a.Status != api.AlertRead {
			unread = append(unread, a)
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatAlertsJSON(alerts, unread))
	} else {
		fmt.Fprintln(w, formatAlertsHuman(alerts, unread))
	}

	if len(unread) > 0 {
		return 1
	}
	return 0
}

// formatAlertsHuman formats the alert summary for human readability
func formatAlertsHuman(alerts, unread []api.Alert) string {
	var output string
	for _, a := range unread {
		name := a.Item.Name
		if name == "" {
			name = a.Item.ID
		}
		output += fmt.Sprintf("✗ %s: %s\n", name, a.Message)
	}
	if len(unread) > 0 {
		output += fmt.Sprintf("\nFAILED: %d unread alert(s) of %d total", len(unread), len(alerts))
	} else {
		output += fmt.Sprintf("PASSED: no unread alerts (%d total)", len(alerts))
	}
	return output
}

// formatAlertsJSON formats the alert summary as JSON
func formatAlertsJSON(alerts, unread []api.Alert) string {
	status := "passed"
	if len(unread) > 0 {
		status = "failed"
	}

	list := make([]map[string]string, len(unread))
	for i, a := range unread {
		list[i] = map[string]string{
			"item":    a.Item.Name,
			"message": a.Message,
			"date":    a.Date,
		}
	}

	output := map[string]interface{}{
		"status": status,
		"total":  len(alerts),
		"unread": list,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
