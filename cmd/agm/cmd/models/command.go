// Package models provides the command that lists reconciled models.
package models

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/internal/sources/gemini"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelview"
	"github.com/qisthidev/Antigravity-Manager/pkg/reconciler"
)

// AppContext defines what the models command needs from the app.
type AppContext interface {
	Accounts(ctx context.Context) (*accounts.FileStore, error)
	View(ctx context.Context, store accounts.Store) (*modelview.View, error)
	Gemini(ctx context.Context) (*gemini.Source, error)
	Out() io.Writer
	OutputFormat() output.Format
	Logger() *zerolog.Logger
}

// NewCommand creates the models command.
func NewCommand(app AppContext) *cobra.Command {
	var (
		live  bool
		group string
	)

	cmd := &cobra.Command{
		Use:     "models",
		GroupID: "core",
		Aliases: []string{"model", "ls"},
		Short:   "List reconciled models",
		Long: `List every model the accounts report, merged with the static catalog.

Reported models come first in first-seen order. Catalog models that no
account reported follow in catalog order.`,
		Example: `  agm models                 # List models from saved accounts
  agm models --live          # Use the Gemini model list instead of saved quotas
  agm models --group Dynamic # Only models missing from the catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := List(cmd.Context(), app, live)
			if err != nil {
				return err
			}
			if group != "" {
				entries = FilterGroup(entries, group)
			}
			return output.FormatModels(app.Out(), app.OutputFormat(), entries)
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Refresh account quotas from the Gemini API before listing")
	cmd.Flags().StringVar(&group, "group", "", "Only list models in this group")

	return cmd
}

// List reconciles the saved accounts. With live set the account quotas are
// first replaced by the Gemini model list; saved files are not modified.
func List(ctx context.Context, app AppContext, live bool) ([]reconciler.Entry, error) {
	files, err := app.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	var store accounts.Store = files
	if live {
		src, err := app.Gemini(ctx)
		if err != nil {
			return nil, err
		}
		mem, err := accounts.NewMemoryStore(nil,
			accounts.WithLogger(app.Logger()),
			accounts.WithFetcher(src.Fetcher(files.Accounts())),
		)
		if err != nil {
			return nil, err
		}
		mem.FetchAccounts(ctx)
		mem.Wait()
		store = mem
	}

	view, err := app.View(ctx, store)
	if err != nil {
		return nil, err
	}
	return view.Models(), nil
}

// FilterGroup keeps the entries whose group equals group, ignoring case.
func FilterGroup(entries []reconciler.Entry, group string) []reconciler.Entry {
	out := make([]reconciler.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Group, group) {
			out = append(out, e)
		}
	}
	return out
}
