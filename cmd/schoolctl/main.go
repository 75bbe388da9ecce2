// Package main provides the schoolctl CLI, the administrative client for the
// school management REST API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	cacheDir  string
	apiRoot   string
	token     string
	jsonMode  bool
	verbose   bool
	noCache   bool
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "schoolctl",
	Short: "Administrative client for the school management API",
	Long: `Schoolctl manages the school's administrative records (academic years,
grades, divisions, fee categories, complaints, attendance, roles, staff
wallets, syllabus entries, vision statements, settings, reports, and
backups) through the school management REST API.`,
	// Do not print usage on errors returned by subcommands.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flags.cacheDir, "cache-dir", "", "query cache directory (default: platform cache dir)")
	rootCmd.PersistentFlags().StringVar(&flags.apiRoot, "api-root", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.token, "token", "", "bearer token (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every API request")
	rootCmd.PersistentFlags().BoolVar(&flags.noCache, "no-cache", false, "bypass the persistent query cache")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(complaintCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
