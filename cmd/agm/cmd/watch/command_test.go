package watch_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qisthidev/Antigravity-Manager/cmd/agm/cmd/watch"
	"github.com/qisthidev/Antigravity-Manager/internal/cmd/output"
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelview"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeApp struct {
	store   *accounts.FileStore
	catalog *catalogs.Catalog
	out     *syncBuffer
	logger  zerolog.Logger
}

func (f *fakeApp) Accounts(context.Context) (*accounts.FileStore, error) { return f.store, nil }

func (f *fakeApp) View(ctx context.Context, store accounts.Store) (*modelview.View, error) {
	return modelview.New(ctx, store, f.catalog, modelview.WithLogger(&f.logger)), nil
}

func (f *fakeApp) Out() io.Writer              { return f.out }
func (f *fakeApp) OutputFormat() output.Format { return output.FormatJSON }
func (f *fakeApp) Logger() *zerolog.Logger     { return &f.logger }

func TestRunReprintsOnChange(t *testing.T) {
	dir := t.TempDir()
	nop := zerolog.Nop()

	store, err := accounts.NewFileStore(dir, accounts.WithLogger(&nop), accounts.WithWatchDebounce(20*time.Millisecond))
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	require.NoError(t, err)

	catalog, err := catalogs.NewFromEntries([]catalogs.Entry{{Key: "gemini-3-flash", Label: "Gemini 3 Flash"}})
	require.NoError(t, err)

	logs := &syncBuffer{}
	app := &fakeApp{store: store, catalog: catalog, out: &syncBuffer{}, logger: zerolog.New(logs)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watch.Run(ctx, app) }()

	require.Eventually(t, func() bool {
		return strings.Contains(app.out.String(), "gemini-3-flash")
	}, 2*time.Second, 10*time.Millisecond)

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	account := `{"id":"acc-1","email":"a@example.com","quota":{"models":[{"name":"brand-new-model","percentage":90}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acc-1.json"), []byte(account), 0o600))

	assert.Eventually(t, func() bool {
		return strings.Contains(app.out.String(), "brand-new-model")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"account_id":"acc-1"`) &&
			strings.Contains(logs.String(), "Account added")
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "acc-1.json")))
	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Account removed")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
