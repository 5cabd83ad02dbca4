// ABOUTME: Login command for the storesync CLI
// ABOUTME: Authenticates and persists the credential for later commands

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
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	Long: `Authenticate against the backend and store the credential.

The credential is written to the config directory and reused by the
interactive console and every other command until logout.

Exit codes:
  0 - Authenticated
  1 - Credentials rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

// runLogin executes the login and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" {
		fmt.Fprintln(w, "Error: --email and --password are required")
		return 2
	}

	_, _, sess := wire()
	if err := sess.Login(ctx, loginEmail, loginPassword); err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return 1
	}

	id := sess.Identity()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"status": "ok",
			"name":   id.Name,
			"role":   id.Role,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", id.Name, id.Role)
	}
	return 0
}
