// Package watch provides the command that follows account file changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelview"
)

// AppContext defines what the watch command needs from the app.
type AppContext interface {
	Accounts(ctx context.Context) (*accounts.FileStore, error)
	View(ctx context.Context, store accounts.Store) (*modelview.View, error)
	Out() io.Writer
	OutputFormat() output.Format
	Logger() *zerolog.Logger
}

// NewCommand creates the watch command.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Print the reconciled models again whenever account files change",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app)
		},
	}
}

// Run prints the model list, then reprints it after every new account
// snapshot until ctx is done.
func Run(ctx context.Context, app AppContext) error {
	store, err := app.Accounts(ctx)
	if err != nil {
		return err
	}
	view, err := app.View(ctx, store)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	render := func(version uint64) {
		mu.Lock()
		defer mu.Unlock()
		format := app.OutputFormat()
		if format == output.FormatTable || format == output.FormatWide {
			fmt.Fprintf(app.Out(), "# accounts snapshot %d at %s\n", version, time.Now().Format(time.Kitchen))
		}
		if err := output.FormatModels(app.Out(), format, view.Models()); err != nil {
			app.Logger().Error().Err(err).Msg("Failed to print models")
		}
	}

	logAccountEvents(store, app.Logger())
	store.OnChange(func(snap accounts.Snapshot) {
		render(snap.Version)
	})
	render(store.Snapshot().Version)

	if err := store.Watch(ctx); err != nil {
		return err
	}
	app.Logger().Info().Str("dir", store.Dir()).Msg("Watching account files")

	<-ctx.Done()
	return nil
}

// logAccountEvents logs how each new snapshot differs from the previous one.
func logAccountEvents(store *accounts.FileStore, logger *zerolog.Logger) {
	store.OnAccountAdded(func(a accounts.Account) {
		logger.Info().Str("account_id", a.ID).Int("models", len(a.QuotaModels())).Msg("Account added")
	})
	store.OnAccountUpdated(func(old, next accounts.Account) {
		logger.Info().
			Str("account_id", next.ID).
			Int("models_before", len(old.QuotaModels())).
			Int("models", len(next.QuotaModels())).
			Msg("Account updated")
	})
	store.OnAccountRemoved(func(a accounts.Account) {
		logger.Info().Str("account_id", a.ID).Msg("Account removed")
	})
}
