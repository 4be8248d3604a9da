package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	moodflow "github.com/unowned-ai/moodflow/pkg"
	"github.com/unowned-ai/moodflow/pkg/config"
	pkgdb "github.com/unowned-ai/moodflow/pkg/db"
	"github.com/unowned-ai/moodflow/pkg/utils"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "moodflow",
	Short:   "Track your daily mood and see how it trends.",
	Long:    `MoodFlow records how you feel each day and turns it into streaks, weekly and monthly views, and a mood distribution.`,
	Version: fmt.Sprintf("v%s", moodflow.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		log.SetDefault(cfg.NewLogger(os.Stderr))
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for moodflow.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(moodflow completion bash)

  Zsh:
    $ moodflow completion zsh > "${fpath[1]}/_moodflow"

  Fish:
    $ moodflow completion fish > ~/.config/fish/completions/moodflow.fish

  PowerShell:
    PS> moodflow completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of moodflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), moodflow.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the moodflow database",
	Long:  `Provides commands for managing the local SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the local database schema to the latest version",
	Long: `Opens the SQLite database at --db (or the system default location) and applies any
schema migrations needed by this version of moodflow. A missing database is created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ResolveAndEnsureDBPath(cfg.DBPath)
		if err != nil {
			return err
		}

		log.Info("Upgrading database", "path", path, "wal", cfg.WAL, "sync", cfg.SyncMode)

		dbConn, err := pkgdb.OpenDBConnection(path, cfg.WAL, cfg.SyncMode)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database at %s is at schema version %d.\n", path, pkgdb.TargetSchemaVersion)
		return nil
	},
}

func initCmd() {
	cfg = config.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file (env MOODFLOW_DB)")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "Storage backend: sqlite or postgres (env MOODFLOW_STORE)")
	flags.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string for --store postgres (env MOODFLOW_POSTGRES_DSN)")
	flags.BoolVar(&cfg.WAL, "wal", cfg.WAL, "Enable SQLite WAL (Write-Ahead Logging) mode (env MOODFLOW_WAL)")
	flags.StringVar(&cfg.SyncMode, "sync", cfg.SyncMode, "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA) (env MOODFLOW_SYNC)")
	flags.StringVar(&cfg.AuthURL, "auth-url", cfg.AuthURL, "Base URL of the auth API (env MOODFLOW_AUTH_URL)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env MOODFLOW_LOG_LEVEL)")
	flags.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA time zone that decides which day is today (env MOODFLOW_TIMEZONE)")

	dbCmd.AddCommand(dbUpgradeCmd)

	initEntriesCmd()
	initStatsCmd()
	initAuthCmd()
	initServeCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, entriesCmd, statsCmd, loginCmd, signupCmd, logoutCmd, tuiCmd, mcpCmd, serveCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
