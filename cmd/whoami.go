// ABOUTME: Whoami command for the storesync CLI
// ABOUTME: Reports the stored identity without a backend round-trip

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/storesync/console/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored identity",
	Long: `Show the identity of the stored credential.

The identity comes from the credential file; no request is sent. A
credential the backend has since revoked still prints here and is caught
on the next authenticated call.

Exit codes:
  0 - A credential is stored
  1 - Not logged in`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the stored identity and returns an exit code
func runWhoami(w io.Writer) int {
	_, _, sess := wire()
	sess.Init()

	if sess.State() != session.StateAuthenticated {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	id := sess.Identity()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"name": id.Name,
			"role": id.Role,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "%s (%s)\n", id.Name, id.Role)
	}
	return 0
}
