// Package sqlite implements the SQLite storage backend for tcm.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tcm/internal/logging"
	"github.com/mesh-intelligence/tcm/pkg/types"
)

// DatabaseFileName is the database file created inside the data directory.
const DatabaseFileName = "tcm_database.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface on a single SQLite database file.
// It keeps a connection pool for the lifetime of an attachment, but every
// operation checks out its own connection and returns it before finishing.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: logging.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach validates the configuration and prepares the connection pool.
// No file is created or opened until an operation runs.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	path, err := filepath.Abs(filepath.Join(dataDir, DatabaseFileName))
	if err != nil {
		return fmt.Errorf("resolving database path: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	b.db = db
	b.path = path
	b.config = config
	b.attached = true

	b.logger.Debug("attached", "path", path)
	return nil
}

// dsn builds the driver URI for path. Characters such as '#' and '?' are
// percent-encoded so they stay part of the file name; SQLite decodes them.
// modernc.org/sqlite reads _pragma=name(value) query parameters.
func dsn(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: "_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// Detach closes the connection pool. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.path = ""
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	return nil
}

// Path returns the database file location, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Initialize creates the data directory and the schema if they do not
// exist. Returns the database path.
func (b *Backend) Initialize(ctx context.Context) (string, error) {
	path := b.Path()
	if path == "" {
		return "", types.ErrStoreDetached
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	err := b.withTx(ctx, "initialize", func(tx *sql.Tx) error {
		for _, stmt := range schemaDDL {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Initialized reports whether the test_cases table exists. A missing
// database file yields false without creating the file.
func (b *Backend) Initialized(ctx context.Context) (bool, error) {
	path := b.Path()
	if path == "" {
		return false, types.ErrStoreDetached
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking database file: %w", err)
	}

	var found bool
	err := b.withConn(ctx, func(conn *sql.Conn) error {
		var name string
		err := conn.QueryRowContext(ctx, schemaProbe).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("probing schema: %w", err)
		}
		found = true
		return nil
	})
	return found, err
}

// acquire checks out a dedicated connection from the pool.
func (b *Backend) acquire(ctx context.Context) (*sql.Conn, error) {
	b.mu.RLock()
	db, attached := b.db, b.attached
	b.mu.RUnlock()

	if !attached {
		return nil, types.ErrStoreDetached
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	return conn, nil
}

// withConn runs fn on a dedicated connection and releases it on every path.
func (b *Backend) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := b.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return notInitialized(fn(conn))
}

// notInitialized marks errors caused by a missing schema with
// ErrNotInitialized.
func notInitialized(err error) error {
	if err != nil && strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %w", types.ErrNotInitialized, err)
	}
	return err
}

// withTx runs fn inside a transaction on a dedicated connection. The
// transaction commits only when fn returns nil; otherwise it is rolled back
// and fn's error is returned unchanged.
func (b *Backend) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	return b.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				b.logger.Warn("transaction rolled back", "op", op, "err", err)
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing %s: %w", op, err)
		}
		return nil
	})
}
