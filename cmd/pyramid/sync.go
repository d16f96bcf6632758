// ABOUTME: CLI commands for Charm-based backup and sync.
// ABOUTME: Supports link, unlink, status, push, pull, repair, reset, and wipe operations.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/pyramid/internal/charm"
	"github.com/spf13/cobra"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Back up and sync pyramid data with Charm Cloud",
	Long: `Back up pyramid data to Charm Cloud and restore it on other devices.

Data is E2E encrypted with your SSH key before upload. The JSON files in the
data directory stay the source of truth: 'push' copies them to the cloud and
'pull' copies the cloud state back.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     pyramid sync link

  2. Upload local data:
     pyramid sync push

  3. On another device, link with the same account and download:
     pyramid sync pull

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show account and backup info
  push        Upload the catalog and all days
  pull        Restore the catalog and days from the backup
  repair      Repair the local KV database
  reset       Reset the local KV database from cloud (destructive)
  wipe        Delete cloud and local KV data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "\n✓ Device linked to Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'pyramid sync push' to upload your data.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Your local pyramid data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		c, err := openCharm()
		if err != nil {
			color.New(color.FgYellow).Fprintf(out, "Charm unavailable: %v\n", err)
			fmt.Fprintln(out, "\nRun 'pyramid sync link' to connect to Charm.")
			return nil
		}

		id, err := c.ID()
		if err != nil {
			color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'pyramid sync link' to connect to Charm.")
			return nil
		}

		host := os.Getenv("CHARM_HOST")
		if host == "" {
			host = charm.DefaultHost
		}
		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", host)
		fmt.Fprintln(out)

		st, err := c.Status()
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Connected to Charm")
		if !st.HasCatalog {
			fmt.Fprintln(out, "  No backup yet. Run 'pyramid sync push'.")
		} else {
			fmt.Fprintf(out, "  Days backed up: %d\n", st.Days)
			if st.Latest != "" {
				fmt.Fprintf(out, "  Latest day: %s\n", st.Latest)
			}
		}
		if st.ReadOnly {
			color.New(color.FgYellow).Fprintln(out, "  ⚠ Read-only: another process holds the database lock")
		}
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local data to Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCharm()
		if err != nil {
			return err
		}

		res, err := c.Push(store)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Pushed %d categories and %d day(s)", res.Items, res.Days)
		if res.Removed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", removed %d stale day(s)", res.Removed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Restore data from Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCharm()
		if err != nil {
			return err
		}

		data, err := c.Pull(store)
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Restored %d categories and %d day(s)\n", len(data.Items), len(data.Days))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local KV data",
	Long: `Delete all cloud backups and the local Charm KV database.

The JSON files in the data directory are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all pyramid cloud backups.")
		if !confirm(cmd, "Type 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Data wiped successfully")
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local KV database",
	Long: `Repair the local Charm KV database by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen)

		fmt.Fprintln(out, "Repairing pyramid KV database...")
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		if result.WalCheckpointed {
			green.Fprintln(out, "  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			green.Fprintln(out, "  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			green.Fprintln(out, "  ✓ Integrity check passed")
		} else {
			color.New(color.FgRed).Fprintln(out, "  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			green.Fprintln(out, "  ✓ Database vacuumed")
		}

		if err != nil {
			if !syncRepairForce {
				color.New(color.FgYellow).Fprintln(out, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		green.Fprintln(out, "\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the local KV database from cloud",
	Long: `Delete the local Charm KV database and restore it from Charm Cloud.

Run 'pyramid sync pull' afterwards to copy the restored data into the
data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE the local KV database and restore it from cloud.")
		if !confirm(cmd, "Continue? [y/N]: ", "y", "yes") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Local KV reset from cloud")
		return nil
	},
}

// openCharm opens the shared Charm client once per process.
func openCharm() (*charm.Client, error) {
	if charmClient != nil {
		return charmClient, nil
	}
	c, err := charm.InitClient()
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}
	charmClient = c
	return c, nil
}

func runCharm(args ...string) error {
	charmCmd := exec.Command("charm", args...)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

// confirm prompts on cmd's output and reads one line from its input.
func confirm(cmd *cobra.Command, prompt string, accept ...string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	for _, a := range accept {
		if answer == a {
			return true
		}
	}
	return false
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncPushCmd, syncPullCmd,
		syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
