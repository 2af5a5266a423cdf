package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/procurelens/procurelens/blobstore"
)

// filePrefix namespaces object payload keys inside the database.
const filePrefix = "file:"

// Store is a blobstore.FileStore backed by an embedded BadgerDB database.
// Object payloads are stored raw under "file:<name>" keys; there is no
// structured value encoding.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ blobstore.FileStore = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a local file store at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, nothing is
// written to disk and the contents vanish on Close.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	logger := slog.Default().With("component", "badger-filestore")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Upload stores content under name, overwriting any existing object.
func (s *Store) Upload(ctx context.Context, name string, content []byte) error {
	if name == "" {
		return blobstore.ErrNameRequired
	}

	err := s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(filePrefix+name), content)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("object stored", "name", name, "size", len(content))
	return nil
}

// List returns the names of all stored objects.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string

	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(filePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			names = append(names, string(key[len(filePrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Get returns the content of the named object.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, blobstore.ErrNameRequired
	}

	var content []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(filePrefix + name))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return content, nil
}

// Delete removes the named object.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return blobstore.ErrNameRequired
	}

	err := s.db.Update(func(tx *badger.Txn) error {
		key := []byte(filePrefix + name)
		if _, err := tx.Get(key); err != nil {
			return err
		}
		return tx.Delete(key)
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return blobstore.ErrNotFound
		}
		return err
	}

	s.logger.Debug("object deleted", "name", name)
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
