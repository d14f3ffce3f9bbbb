package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/qisthidev/Antigravity-Manager/cmd/agm/cmd/accounts"
	"github.com/qisthidev/Antigravity-Manager/cmd/agm/cmd/models"
	"github.com/qisthidev/Antigravity-Manager/cmd/agm/cmd/pins"
	"github.com/qisthidev/Antigravity-Manager/cmd/agm/cmd/watch"
	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
)

// CreateModelsCommand creates the models command with app dependencies.
func (a *App) CreateModelsCommand() *cobra.Command {
	return models.NewCommand(a)
}

// CreatePinsCommand creates the pins command with app dependencies.
func (a *App) CreatePinsCommand() *cobra.Command {
	return pins.NewCommand(a)
}

// CreateWatchCommand creates the watch command with app dependencies.
func (a *App) CreateWatchCommand() *cobra.Command {
	return watch.NewCommand(a)
}

// CreateAccountsCommand creates the accounts command with app dependencies.
func (a *App) CreateAccountsCommand() *cobra.Command {
	return accounts.NewCommand(a)
}

// VersionInfo is the version command output.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Table lays out the version as property rows.
func (v VersionInfo) Table(bool) output.Data {
	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Version", v.Version},
			{"Commit", v.Commit},
			{"Date", v.Date},
			{"Built By", v.BuiltBy},
			{"Go Version", v.GoVersion},
			{"Platform", v.Platform},
		},
	}
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := VersionInfo{
				Version:   a.version,
				Commit:    a.commit,
				Date:      a.date,
				BuiltBy:   a.builtBy,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			return output.Write(a.Out(), a.OutputFormat(), info)
		},
	}
}

var (
	_ models.AppContext   = (*App)(nil)
	_ pins.AppContext     = (*App)(nil)
	_ watch.AppContext    = (*App)(nil)
	_ accounts.AppContext = (*App)(nil)
)
