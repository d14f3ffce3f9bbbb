// Package pins provides the commands that show and edit the pinned quota models.
package pins

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/internal/settings"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelview"
	"github.com/qisthidev/Antigravity-Manager/pkg/pins"
)

// AppContext defines what the pins commands need from the app.
type AppContext interface {
	Catalog() (*catalogs.Catalog, error)
	Accounts(ctx context.Context) (*accounts.FileStore, error)
	View(ctx context.Context, store accounts.Store) (*modelview.View, error)
	Settings() (settings.Settings, error)
	SaveSettings(s settings.Settings) error
	Out() io.Writer
	OutputFormat() output.Format
	Logger() *zerolog.Logger
}

// NewCommand creates the pins command with its subcommands.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pins",
		GroupID: "core",
		Aliases: []string{"pin"},
		Short:   "Show and edit the pinned quota models",
		Long: `Pinned quota models are shown on account cards. At least one model
stays pinned: unpinning the last one is refused.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewToggleCommand(app))
	return cmd
}

// NewListCommand creates the pins list command.
func NewListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List selectable models and mark the pinned ones",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := Options(cmd.Context(), app)
			if err != nil {
				return err
			}
			return output.FormatPinOptions(app.Out(), app.OutputFormat(), opts)
		},
	}
}

// NewToggleCommand creates the pins toggle command.
func NewToggleCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <model-id>",
		Short: "Pin or unpin a model",
		Example: `  agm pins toggle gemini-3-flash
  agm pins toggle claude-sonnet-4-6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := Toggle(app, args[0])
			if err != nil {
				return err
			}
			switch outcome {
			case pins.OutcomeAdded:
				_, err = fmt.Fprintf(app.Out(), "Pinned %s\n", args[0])
				if err == nil && !Recognized(cmd.Context(), app, args[0]) {
					_, err = fmt.Fprintf(app.Out(), "%s is not in the catalog and no account reports it yet\n", args[0])
				}
			case pins.OutcomeRemoved:
				_, err = fmt.Fprintf(app.Out(), "Unpinned %s\n", args[0])
			default:
				_, err = fmt.Fprintf(app.Out(), "%s is the last pinned model and stays pinned\n", args[0])
			}
			return err
		},
	}
}

// Options builds the pin editor options from the saved accounts and settings.
func Options(ctx context.Context, app AppContext) ([]pins.Option, error) {
	s, err := app.Settings()
	if err != nil {
		return nil, err
	}
	store, err := app.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	view, err := app.View(ctx, store)
	if err != nil {
		return nil, err
	}
	return view.Options(s.PinnedQuotaModels), nil
}

// Toggle flips id in the saved pin set and persists any change.
func Toggle(app AppContext, id string) (pins.Outcome, error) {
	s, err := app.Settings()
	if err != nil {
		return pins.OutcomeRefused, err
	}

	var saveErr error
	editor := pins.NewEditor(s.PinnedQuotaModels)
	editor.OnChange(func(cfg pins.Config) {
		s.PinnedQuotaModels = cfg
		saveErr = app.SaveSettings(s)
	})

	outcome := editor.Toggle(id)
	app.Logger().Debug().
		Str("model_id", id).
		Stringer("outcome", outcome).
		Int("pinned", editor.Config().Len()).
		Msg("Toggled pinned model")
	return outcome, saveErr
}

// Recognized reports whether id is a catalog key or alias, or a model some
// saved account reports, ignoring case. Lookup failures count as unrecognized.
func Recognized(ctx context.Context, app AppContext, id string) bool {
	catalog, err := app.Catalog()
	if err != nil {
		app.Logger().Debug().Err(err).Msg("Catalog unavailable for pin check")
		return false
	}
	if catalog.IsKnown(id) {
		return true
	}
	store, err := app.Accounts(ctx)
	if err != nil {
		app.Logger().Debug().Err(err).Msg("Accounts unavailable for pin check")
		return false
	}
	for _, a := range store.Accounts() {
		for _, m := range a.QuotaModels() {
			if modelkey.Equal(m.Name, id) {
				return true
			}
		}
	}
	return false
}
