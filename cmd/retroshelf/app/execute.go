package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/retroshelf/internal/cmd/output"
)

// Execute runs the retroshelf CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "retroshelf",
		Short:   "Retro game catalog",
		Version: a.version,
		Long: `Retroshelf keeps a catalog of retro games: title, description,
category, cover image, platform, release year and genre.

Records live in a pluggable store (memory, bolt, sqlite or a remote
realtime database). The catalog can be browsed and edited from the
command line or served as a web page with a JSON API.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.retroshelf.yaml)")
	flags.BoolP("verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", a.config.NoColor, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("store", "", "store backend: memory, bolt, sqlite, rtdb (env RETROSHELF_STORE)")
	flags.String("store-path", "", "database file for the bolt and sqlite stores")
	flags.String("store-url", "", "database URL for the rtdb store")

	rootCmd.SetVersionTemplate("retroshelf {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. Global flags are read
// from the root so a subcommand may define a local flag of the same name.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	// An explicit config file replaces what New loaded from the defaults.
	if flags.Changed("config") {
		cfg, err := loadConfig(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config = cfg
	}

	// These flags are defined as persistent flags in createRootCommand, so
	// errors indicate programming errors.
	verbose := mustGetBool(flags, "verbose")
	quiet := mustGetBool(flags, "quiet")
	noColor := mustGetBool(flags, "no-color")
	format := mustGetString(flags, "format")
	logLevel := mustGetString(flags, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	a.config.UpdateStoreFromFlags(
		mustGetString(flags, "store"),
		mustGetString(flags, "store-path"),
		mustGetString(flags, "store-url"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(flags *pflag.FlagSet, name string) bool {
	val, err := flags.GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(flags *pflag.FlagSet, name string) string {
	val, err := flags.GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
