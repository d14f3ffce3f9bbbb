package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
)

// Execute runs the agm CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "agm",
		Short:   "Antigravity Manager model tools",
		Version: a.version,
		Long: `agm lists the models your Antigravity accounts can use, merged with the
built-in model catalog, and edits the set of models pinned on account cards.

Accounts are read from <data-dir>/accounts/*.json and settings from
<data-dir>/settings.yaml.`,
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

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.agm.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory holding accounts and settings")
	rootCmd.PersistentFlags().String("locale", "", "display locale, e.g. en or zh")

	rootCmd.SetVersionTemplate("agm {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")
	dataDir := mustGetString(cmd, "data-dir")
	locale := mustGetString(cmd, "locale")

	if format != "" {
		if _, err := output.ParseFormat(format); err != nil {
			return err
		}
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel, dataDir, locale)

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateModelsCommand())
	rootCmd.AddCommand(a.CreatePinsCommand())
	rootCmd.AddCommand(a.CreateWatchCommand())

	// Management commands
	rootCmd.AddCommand(a.CreateAccountsCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError prints err with a hint for known failure kinds and exits with
// ExitCode(err).
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	if hint := ErrorHint(err); hint != "" {
		_, _ = os.Stderr.WriteString("hint: " + hint + "\n")
	}
	os.Exit(ExitCode(err))
}

// ExitCode is 2 for invalid input and 1 for anything else.
func ExitCode(err error) int {
	if errors.IsValidationError(err) {
		return 2
	}
	return 1
}

// ErrorHint suggests what to do about err, or returns "".
func ErrorHint(err error) string {
	switch {
	case errors.IsAPIKeyError(err):
		return "set GEMINI_API_KEY in the environment or gemini_api_key in ~/.agm.yaml"
	case errors.IsRateLimited(err):
		return "the Gemini API is throttling requests, try again later"
	case errors.IsProviderUnavailable(err):
		return "the Gemini API is unavailable, try again later"
	case errors.IsNotFound(err):
		return "run 'agm accounts list' to see saved account ids"
	case errors.IsValidationError(err):
		return "run 'agm --help' for usage"
	}
	return ""
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
