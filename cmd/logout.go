// ABOUTME: Logout command for the storesync CLI
// ABOUTME: Clears the stored credential; purely local, always succeeds

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored credential",
	Long: `Discard the stored credential.

This is purely local: no request is sent to the backend, and it succeeds
whether or not a credential was stored.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _, sess := wire()
		sess.Logout()
		fmt.Println("Logged out")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
