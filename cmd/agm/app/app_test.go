package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/internal/settings"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

const accountJSON = `{
  "id": "acc-1",
  "email": "dev@example.com",
  "name": "Dev",
  "quota": {
    "models": [
      {"name": "gemini-3-flash", "percentage": 80, "display_name": "Gemini 3 Flash"},
      {"name": "Custom-Model", "percentage": 50},
      {"name": "gemini-2.5-flash-thinking", "percentage": 10}
    ],
    "subscription_tier": "PRO"
  }
}`

func newTestApp(t *testing.T) (*App, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "accounts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts", "acc-1.json"), []byte(accountJSON), 0o600))

	buf := &bytes.Buffer{}
	nop := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2026-01-01", "test",
		WithConfig(&Config{DataDir: dir, LogOutput: "discard", LogFormat: "json"}),
		WithLogger(&nop),
		WithOutput(buf),
	)
	require.NoError(t, err)
	return app, buf, dir
}

func run(t *testing.T, app *App, buf *bytes.Buffer, args ...string) string {
	t.Helper()
	buf.Reset()
	require.NoError(t, app.Execute(context.Background(), args))
	return buf.String()
}

func TestNew(t *testing.T) {
	app, _, dir := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.Equal(t, dir, app.Config().DataDir)
	assert.Equal(t, filepath.Join(dir, "accounts"), app.Config().AccountsDir())
	assert.Equal(t, filepath.Join(dir, settings.FileName), app.Config().SettingsPath())
}

func TestCatalogIsLoadedOnce(t *testing.T) {
	app, _, _ := newTestApp(t)

	c1, err := app.Catalog()
	require.NoError(t, err)
	c2, err := app.Catalog()
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Positive(t, c1.Len())
}

func TestCatalogPathOverride(t *testing.T) {
	app, _, dir := newTestApp(t)
	catalogDir := filepath.Join(dir, "catalog")
	require.NoError(t, os.MkdirAll(catalogDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "models.yaml"),
		[]byte("models:\n  - key: only-model\n    label: Only Model\n"), 0o644))
	app.Config().CatalogPath = catalogDir

	c, err := app.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.IsKnown("ONLY-MODEL"))
}

func TestModelsCommand(t *testing.T) {
	app, buf, _ := newTestApp(t)

	var records []output.ModelRecord
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "models", "-o", "json")), &records))
	require.GreaterOrEqual(t, len(records), 3)

	assert.Equal(t, "gemini-3-flash", records[0].ID)
	assert.Equal(t, "dynamic", records[0].Source)
	assert.Equal(t, "Custom-Model", records[1].ID)
	assert.Equal(t, "Dynamic", records[1].Group)
	assert.Equal(t, "bot", records[1].Icon)
	assert.Equal(t, 131072, records[1].MaxOutputTokens)

	for _, r := range records[2:] {
		assert.Equal(t, "static", r.Source)
		assert.NotEqual(t, "gemini-3-flash", r.ID)
		assert.NotContains(t, r.ID, "-thinking")
	}
}

func TestModelsCommandGroupFilter(t *testing.T) {
	app, buf, _ := newTestApp(t)

	var records []output.ModelRecord
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "models", "-o", "json", "--group", "dynamic")), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Custom-Model", records[0].ID)
}

func TestModelsCommandLocale(t *testing.T) {
	app, buf, _ := newTestApp(t)

	var records []output.ModelRecord
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "models", "-o", "json", "--locale", "zh")), &records))

	names := make(map[string]string, len(records))
	for _, r := range records {
		names[r.ID] = r.Name
	}
	assert.Equal(t, "Gemini 3 Pro (高)", names["gemini-3-pro-high"])
}

func TestModelsCommandLiveRequiresKey(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Config().GeminiAPIKey = ""

	err := app.Execute(context.Background(), []string{"models", "--live"})
	require.Error(t, err)
	assert.Contains(t, ErrorHint(err), "GEMINI_API_KEY")
}

func TestPinsCommands(t *testing.T) {
	app, buf, dir := newTestApp(t)

	var opts []output.PinRecord
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "pins", "list", "-o", "json")), &opts))
	require.NotEmpty(t, opts)
	assert.Equal(t, "gemini-3-flash", opts[0].ID)
	assert.True(t, opts[0].Selected)

	out := run(t, app, buf, "pins", "toggle", "gemini-3-flash")
	assert.Contains(t, out, "stays pinned")
	_, err := os.Stat(filepath.Join(dir, settings.FileName))
	assert.True(t, os.IsNotExist(err), "refused toggle does not write settings")

	out = run(t, app, buf, "pins", "toggle", "Custom-Model")
	assert.Contains(t, out, "Pinned Custom-Model")

	out = run(t, app, buf, "pins", "toggle", "gemini-3-flash")
	assert.Contains(t, out, "Unpinned gemini-3-flash")

	s, err := app.Settings()
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom-Model"}, s.PinnedQuotaModels.Models)
}

func TestPinsToggleUnrecognized(t *testing.T) {
	app, buf, _ := newTestApp(t)

	out := run(t, app, buf, "pins", "toggle", "custom-model")
	assert.Contains(t, out, "Pinned custom-model")
	assert.NotContains(t, out, "no account reports it", "reported names match ignoring case")

	out = run(t, app, buf, "pins", "toggle", "gemini-3-pro-preview")
	assert.NotContains(t, out, "no account reports it", "catalog aliases are recognized")

	out = run(t, app, buf, "pins", "toggle", "future-model")
	assert.Contains(t, out, "Pinned future-model")
	assert.Contains(t, out, "future-model is not in the catalog and no account reports it yet")

	s, err := app.Settings()
	require.NoError(t, err)
	assert.Contains(t, s.PinnedQuotaModels.Models, "future-model")
}

func TestPinsListOrphan(t *testing.T) {
	app, buf, dir := newTestApp(t)

	cat, err := app.Catalog()
	require.NoError(t, err)
	s := settings.Default(cat)
	s.PinnedQuotaModels.Models = append(s.PinnedQuotaModels.Models, "retired-model")
	require.NoError(t, settings.Save(filepath.Join(dir, settings.FileName), s))

	var opts []output.PinRecord
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "pins", "list", "-o", "json")), &opts))
	last := opts[len(opts)-1]
	assert.Equal(t, "retired-model", last.ID)
	assert.True(t, last.Orphaned)
	assert.True(t, last.Selected)
	assert.Equal(t, "Unknown", last.Desc)
}

func TestAccountsList(t *testing.T) {
	app, buf, _ := newTestApp(t)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "accounts", "list", "-o", "json")), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "acc-1", rows[0]["id"])
	assert.Equal(t, "Dev", rows[0]["label"])
	assert.Equal(t, "PRO", rows[0]["tier"])
	assert.EqualValues(t, 3, rows[0]["models"])
}

func TestVersionCommand(t *testing.T) {
	app, buf, _ := newTestApp(t)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(run(t, app, buf, "version", "-o", "json")), &info))
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "test", info.BuiltBy)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInvalidFormat(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"models", "-o", "xml"})
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	assert.Contains(t, ErrorHint(err), "--help")
}

func TestAccountsRefreshUnknownAccount(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Config().GeminiAPIKey = ""

	err := app.Execute(context.Background(), []string{"accounts", "refresh", "acc-9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acc-9")
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, ErrorHint(err), "accounts list")
}

func TestErrorHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", &errors.AuthenticationError{Provider: "gemini", Method: "api_key", Message: "not set"}, "GEMINI_API_KEY"},
		{"rejected key", errors.WrapAPI("gemini", 403, errors.New("denied")), "GEMINI_API_KEY"},
		{"throttled", errors.WrapAPI("gemini", 429, errors.New("slow down")), "throttling"},
		{"down", errors.WrapAPI("gemini", 503, errors.New("unavailable")), "unavailable"},
		{"plain", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == "" {
				assert.Empty(t, ErrorHint(tt.err))
				return
			}
			assert.Contains(t, ErrorHint(tt.err), tt.want)
		})
	}
}

func TestShutdown(t *testing.T) {
	app, _, _ := newTestApp(t)
	require.NoError(t, app.Shutdown(context.Background()))

	_, err := app.Accounts(context.Background())
	require.NoError(t, err)
	require.NoError(t, app.Shutdown(context.Background()))
}
