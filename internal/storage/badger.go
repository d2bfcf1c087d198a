package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore хранит ссылки во встроенной BadgerDB.
// Ключ: <table>:<len(apiKey)>:<apiKey>:<shortLinkId>, значение — JSON ссылки.
type BadgerStore struct {
	db     *badger.DB
	table  string
	logger *zap.Logger
}

// NewBadgerStore opens (or creates) the database at path.
// An empty path opens an in-memory database.
func NewBadgerStore(path, table string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger.Named("badger").Sugar()}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	logger.Info("badger opened", zap.String("path", path), zap.String("table", table))

	return &BadgerStore{db: db, table: table, logger: logger}, nil
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}

func (s *BadgerStore) Get(_ context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	var link *model.Link

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(linkKey(s.table, apiKey, shortLinkID)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			link = &model.Link{}
			return json.Unmarshal(val, link)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("badger get: %w", err)
	}
	return link, nil
}

func (s *BadgerStore) QueryAll(_ context.Context, apiKey string) ([]*model.Link, error) {
	links := make([]*model.Link, 0)
	prefix := []byte(partitionPrefix(s.table, apiKey))

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var link model.Link
				if err := json.Unmarshal(val, &link); err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				links = append(links, &link)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger query: %w", err)
	}
	return links, nil
}

func (s *BadgerStore) Put(_ context.Context, link *model.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("marshal link: %w", err)
	}

	key := []byte(linkKey(s.table, link.APIKey, link.ShortLinkID))
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data))
	})
	if err != nil {
		return fmt.Errorf("badger put: %w", err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, apiKey, shortLinkID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(linkKey(s.table, apiKey, shortLinkID)))
	})
	if err != nil {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// badgerLogger адаптирует zap к интерфейсу логгера Badger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.Warnf(f, v...)
}
