// Package accounts provides the commands that inspect and refresh saved accounts.
package accounts

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/internal/sources/gemini"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
)

// AppContext defines what the accounts commands need from the app.
type AppContext interface {
	Accounts(ctx context.Context) (*accounts.FileStore, error)
	Gemini(ctx context.Context) (*gemini.Source, error)
	Out() io.Writer
	OutputFormat() output.Format
	Logger() *zerolog.Logger
}

// Row is one account in list output.
type Row struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Tier     string `json:"tier" yaml:"tier"`
	Models   int    `json:"models" yaml:"models"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

// NewCommand creates the accounts command with its subcommands.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		GroupID: "management",
		Aliases: []string{"account"},
		Short:   "Inspect and refresh saved accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newRefreshCommand(app))
	return cmd
}

func newListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			return output.Write(app.Out(), app.OutputFormat(), Rows(store.Accounts()))
		},
	}
}

func newRefreshCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [account-id...]",
		Short: "Replace saved quota models with the Gemini model list",
		Long: `Refresh lists the models available to the configured Gemini API key and
saves them as the quota models of the given accounts, or of every account
when none is given. Requires GEMINI_API_KEY.`,
		Example: `  agm accounts refresh
  agm accounts refresh acc-1 acc-2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := Refresh(cmd.Context(), app, args...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(app.Out(), "Refreshed %d account(s)\n", n)
			return err
		},
	}
}

// RowList is the account listing result.
type RowList []Row

// Table lays out the accounts. Wide output has no extra columns.
func (l RowList) Table(bool) output.Data {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		state := "active"
		if r.Disabled {
			state = "disabled"
		}
		rows = append(rows, []string{r.ID, r.Label, r.Tier, strconv.Itoa(r.Models), state})
	}
	return output.Data{
		Headers:         []string{"ID", "Label", "Tier", "Models", "State"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignLeft},
	}
}

// Rows converts accounts for list output.
func Rows(list []accounts.Account) RowList {
	rows := make(RowList, 0, len(list))
	for _, a := range list {
		r := Row{
			ID:       a.ID,
			Label:    a.DisplayLabel(),
			Models:   len(a.QuotaModels()),
			Disabled: a.Disabled,
		}
		if a.Quota != nil {
			r.Tier = a.Quota.SubscriptionTier
		}
		rows = append(rows, r)
	}
	return rows
}

// Select returns the accounts named by ids in the given order, or every
// account when ids is empty. An unknown id is a NotFoundError.
func Select(list []accounts.Account, ids ...string) ([]accounts.Account, error) {
	if len(ids) == 0 {
		return list, nil
	}
	byID := make(map[string]accounts.Account, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}
	selected := make([]accounts.Account, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, errors.NewNotFoundError("account", id)
		}
		selected = append(selected, a)
	}
	return selected, nil
}

// Refresh refreshes and saves the accounts named by ids, or every account
// when ids is empty. It stops at the first failure.
func Refresh(ctx context.Context, app AppContext, ids ...string) (int, error) {
	store, err := app.Accounts(ctx)
	if err != nil {
		return 0, err
	}
	targets, err := Select(store.Accounts(), ids...)
	if err != nil {
		return 0, err
	}
	src, err := app.Gemini(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, a := range targets {
		actx := logging.WithAccount(ctx, a.ID)
		updated, err := src.Refresh(actx, a)
		if err != nil {
			return refreshed, err
		}
		if err := store.Save(actx, updated); err != nil {
			return refreshed, err
		}
		logging.FromContext(actx).Debug().Int("models", len(updated.QuotaModels())).Msg("Saved refreshed account")
		refreshed++
	}
	return refreshed, nil
}
