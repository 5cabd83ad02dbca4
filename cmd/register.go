// ABOUTME: Register command for the storesync CLI
// ABOUTME: Creates an account without authenticating it

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account.

Registration never authenticates the new user; run login afterwards.

Exit codes:
  0 - Account created
  1 - Registration rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
}

// runRegister executes the registration and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if registerName == "" || registerEmail == "" || registerPassword == "" {
		fmt.Fprintln(w, "Error: --name, --email and --password are required")
		return 2
	}

	_, _, sess := wire()
	if err := sess.Register(ctx, registerName, registerEmail, registerPassword); err != nil {
		fmt.Fprintf(w, "Registration failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(w, "Registration successful. You can now login.")
	return 0
}
