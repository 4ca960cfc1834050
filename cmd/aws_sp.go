package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/kolja-aws/kolja/pkg/backup"
	"github.com/kolja-aws/kolja/pkg/filesystem"
	"github.com/kolja-aws/kolja/pkg/installer"
	log "github.com/kolja-aws/kolja/pkg/logger"
	"github.com/kolja-aws/kolja/pkg/shell"
)

// awsSpCmd installs the sp() profile switcher into the shell startup file.
var awsSpCmd = &cobra.Command{
	Use:   "sp",
	Short: "Install the sp() profile switcher into your shell",
	Long: `Installs an sp() function into your shell startup file. Running sp picks an
AWS profile and exports AWS_PROFILE in the current shell. The function lives
in a marked block, everything else in the file stays untouched.`,
	Example: "kolja aws sp\nkolja aws sp --status\nkolja aws sp --uninstall",
	Args:    cobra.NoArgs,
	RunE:    executeAwsSpCommand,
}

func executeAwsSpCommand(cmd *cobra.Command, _ []string) error {
	kind, err := shell.NewDetector().Detect()
	if err != nil {
		return err
	}

	home, err := homedir.Dir()
	if err != nil {
		return err
	}
	rcPath, err := shell.ConfigFile(filesystem.NewOSFileSystem(), kind, home)
	if err != nil {
		return err
	}

	status, err := cmd.Flags().GetBool("status")
	if err != nil {
		return err
	}
	uninstall, err := cmd.Flags().GetBool("uninstall")
	if err != nil {
		return err
	}

	switch {
	case status:
		return printSwitcherStatus(kind, rcPath)
	case uninstall:
		return uninstallSwitcher(rcPath)
	default:
		return installSwitcher(kind, rcPath)
	}
}

func installSwitcher(kind shell.Kind, rcPath string) error {
	script, err := shell.Script(kind)
	if err != nil {
		return err
	}
	if err := shell.ValidateScript(kind, script); err != nil {
		return err
	}

	result, err := installer.NewShellInstaller(rcPath).InstallBlock(script)
	if err != nil {
		return err
	}

	if !result.Changed {
		log.Info("Profile switcher already installed", "file", rcPath)
		return nil
	}

	rows := [][2]string{
		{"Shell:", string(kind)},
		{"File:", rcPath},
	}
	if result.Backup != nil {
		rows = append(rows, [2]string{"Backup:", result.Backup.BackupPath})
	}
	successBox("Profile switcher installed!", rows)
	fmt.Fprintf(os.Stderr, "Restart your terminal or run: source %s\n", rcPath)
	return nil
}

func uninstallSwitcher(rcPath string) error {
	result, err := installer.NewShellInstaller(rcPath).RemoveBlock()
	if err != nil {
		return err
	}

	if !result.Changed {
		log.Info("Profile switcher is not installed, nothing to remove", "file", rcPath)
		return nil
	}

	rows := [][2]string{{"File:", rcPath}}
	if result.Backup != nil {
		rows = append(rows, [2]string{"Backup:", result.Backup.BackupPath})
	}
	successBox("Profile switcher removed", rows)
	return nil
}

func printSwitcherStatus(kind shell.Kind, rcPath string) error {
	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	fmt.Printf("Shell:     %s\n", kind)
	fmt.Printf("File:      %s\n", rcPath)
	fmt.Printf("Installed: %t\n", shell.HasBlock(string(content)))
	if body, ok := shell.ExtractBlock(string(content)); ok {
		fmt.Printf("Script:    %s\n", scriptStatus(kind, body))
	}

	backups, err := backup.NewManager().List(rcPath)
	if err != nil {
		return err
	}
	if len(backups) > 0 {
		fmt.Printf("Backups:   %d, latest %s\n", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// scriptStatus classifies an installed block body against the switcher
// shipped for kind.
func scriptStatus(kind shell.Kind, body string) string {
	if err := shell.ValidateScript(kind, body); err != nil {
		return "broken, reinstall with `kolja aws sp`"
	}
	current, err := shell.Script(kind)
	if err == nil && body == current {
		return "current"
	}
	return "outdated, reinstall with `kolja aws sp`"
}

func init() {
	awsSpCmd.Flags().Bool("uninstall", false, "Remove the sp() function from the shell startup file")
	awsSpCmd.Flags().Bool("status", false, "Show whether the profile switcher is installed")
	awsSpCmd.MarkFlagsMutuallyExclusive("uninstall", "status")
	awsCmd.AddCommand(awsSpCmd)
}
