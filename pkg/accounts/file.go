package accounts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// DefaultWatchDebounce coalesces bursts of file events into one reload.
const DefaultWatchDebounce = 250 * time.Millisecond

// FileStore reads accounts from *.json files in a directory, one account per file.
type FileStore struct {
	publisher
	dir      string
	debounce time.Duration
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store over dir. It does not read the directory
// until Load or FetchAccounts is called.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		return nil, errors.NewValidationError("dir", dir, "accounts directory is required")
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	s := &FileStore{dir: dir, debounce: o.debounce}
	s.logger = o.logger
	return s, nil
}

// Dir returns the accounts directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load reads the directory synchronously and publishes the result.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	list, err := s.read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return s.publish(list), nil
}

// FetchAccounts reloads the directory in the background.
func (s *FileStore) FetchAccounts(ctx context.Context) {
	s.refresh(ctx, s.read)
}

// Save writes account to <dir>/<id>.json and publishes a reloaded snapshot.
func (s *FileStore) Save(ctx context.Context, account Account) error {
	if account.ID == "" {
		return errors.NewValidationError("id", account.Email, "account id is required")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}
	data, err := json.MarshalIndent(account, "", "  ")
	if err != nil {
		return errors.WrapParse("json", account.ID, err)
	}
	path := filepath.Join(s.dir, account.ID+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapIO("write", path, err)
	}
	_, err = s.Load(ctx)
	return err
}

// read loads every account file. Unreadable or corrupt files are skipped.
func (s *FileStore) read(ctx context.Context) ([]Account, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Account{}, nil
		}
		return nil, errors.WrapIO("read", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	list := make([]Account, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable account file")
			continue
		}
		var a Account
		if err := json.Unmarshal(data, &a); err != nil {
			s.logger.Warn().Err(errors.WrapParse("json", path, err)).Msg("Skipping corrupt account file")
			continue
		}
		if a.ID == "" {
			a.ID = strings.TrimSuffix(name, ".json")
		}
		list = append(list, a)
	}
	return list, nil
}

// Watch reloads the directory whenever its files change, until ctx is done.
func (s *FileStore) Watch(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapIO("watch", s.dir, err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return errors.WrapIO("watch", s.dir, err)
	}

	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *FileStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() { _ = watcher.Close() }()

	var mu sync.Mutex
	var timer *time.Timer
	scheduleReload := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(s.debounce, func() {
			if ctx.Err() != nil {
				return
			}
			if _, err := s.Load(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Account reload failed during watch")
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Account file changed")
				scheduleReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("Account watch error")
		}
	}
}
