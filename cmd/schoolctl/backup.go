// Backup commands: create, list, and download server-side backups.
package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/webdekho/schoolctl/pkg/types"
)

var (
	backupOut string
	backupURL bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new backup on the server",
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	RunE:  runBackupList,
}

var backupDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download a backup file",
	Long: `Download fetches the backup with the given ID.

Example:
  schoolctl backup download 3 --out school-2026-08.sql.gz
  schoolctl backup download 3 --url`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupDownload,
}

func init() {
	backupDownloadCmd.Flags().StringVar(&backupOut, "out", "", "write the backup to this file (default: server file name)")
	backupDownloadCmd.Flags().BoolVar(&backupURL, "url", false, "print the direct-download URL instead of fetching")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupDownloadCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	raw, err := s.manager.Transition(cmd.Context(), types.TransitionBackupCreate, "", nil)
	if err != nil {
		return err
	}
	return printRecord(types.ResourceBackups, raw)
}

func runBackupList(cmd *cobra.Command, args []string) error {
	query := types.ListQuery{Page: 1, PageSize: types.MaxPageSize}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	page, err := s.manager.Query(cmd.Context(), types.ResourceBackups, query)
	if err != nil {
		return err
	}
	return printListPage(types.ResourceBackups, page, query.Normalize())
}

func runBackupDownload(cmd *cobra.Command, args []string) error {
	id := args[0]

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if backupURL {
		fmt.Println(s.client.BackupDownloadURL(id))
		return nil
	}

	out := backupOut
	if out == "" {
		out = backupFileName(cmd, s, id)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	params := url.Values{}
	params.Set("id", id)
	n, err := s.client.Download(cmd.Context(), "backups_download", params, f)
	if err != nil {
		return fmt.Errorf("download backup: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", out, n)
	return nil
}

// backupFileName asks the server for the backup's file name, falling back to
// a generic name when the lookup fails.
func backupFileName(cmd *cobra.Command, s *session, id string) string {
	raw, err := s.manager.Get(cmd.Context(), types.ResourceBackups, id)
	if err != nil {
		return "backup-" + id + ".sql.gz"
	}
	record, err := types.DecodeRecord(types.ResourceBackups, raw)
	if err != nil {
		return "backup-" + id + ".sql.gz"
	}
	if b, ok := record.(*types.Backup); ok && b.FileName != "" {
		return b.FileName
	}
	return "backup-" + id + ".sql.gz"
}
