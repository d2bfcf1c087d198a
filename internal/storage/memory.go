package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Totarae/shortlinks/internal/model"
	"go.uber.org/zap"
)

const (
	opPut    = "put"
	opDelete = "delete"
)

// journalEntry — строка журнала операций в файле.
type journalEntry struct {
	Op string `json:"op"`
	model.Link
}

// MemoryStore keeps links in process memory, partitioned by api key.
// With a non-empty file path every mutation is appended to a JSON-lines
// journal that is replayed on start-up.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]model.Link
	file   string
	logger *zap.Logger
}

// NewMemoryStore создаёт хранилище и загружает журнал, если file задан.
func NewMemoryStore(file string, logger *zap.Logger) (*MemoryStore, error) {
	s := &MemoryStore{
		data:   make(map[string]map[string]model.Link),
		file:   file,
		logger: logger,
	}

	if file != "" {
		if err := s.loadFromFile(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) Get(_ context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.data[apiKey][shortLinkID]
	if !ok {
		return nil, nil
	}
	return &link, nil
}

func (s *MemoryStore) QueryAll(_ context.Context, apiKey string) ([]*model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]*model.Link, 0, len(s.data[apiKey]))
	for _, link := range s.data[apiKey] {
		link := link
		links = append(links, &link)
	}
	return links, nil
}

func (s *MemoryStore) Put(_ context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendToFile(journalEntry{Op: opPut, Link: *link}); err != nil {
		return err
	}

	partition, ok := s.data[link.APIKey]
	if !ok {
		partition = make(map[string]model.Link)
		s.data[link.APIKey] = partition
	}
	partition[link.ShortLinkID] = *link
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, apiKey, shortLinkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[apiKey][shortLinkID]; !ok {
		return nil
	}

	entry := journalEntry{Op: opDelete, Link: model.Link{APIKey: apiKey, ShortLinkID: shortLinkID}}
	if err := s.appendToFile(entry); err != nil {
		return err
	}
	s.remove(apiKey, shortLinkID)
	return nil
}

func (s *MemoryStore) remove(apiKey, shortLinkID string) {
	delete(s.data[apiKey], shortLinkID)
	if len(s.data[apiKey]) == 0 {
		delete(s.data, apiKey)
	}
}

// loadFromFile проигрывает журнал. Отсутствие файла ошибкой не является.
func (s *MemoryStore) loadFromFile() error {
	file, err := os.Open(s.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open journal %s: %w", s.file, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	applied := 0
	for {
		var entry journalEntry
		if err := decoder.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode journal %s: %w", s.file, err)
		}

		switch entry.Op {
		case opPut:
			partition, ok := s.data[entry.APIKey]
			if !ok {
				partition = make(map[string]model.Link)
				s.data[entry.APIKey] = partition
			}
			partition[entry.ShortLinkID] = entry.Link
		case opDelete:
			s.remove(entry.APIKey, entry.ShortLinkID)
		default:
			return fmt.Errorf("journal %s: unknown op %q", s.file, entry.Op)
		}
		applied++
	}

	s.logger.Info("journal replayed", zap.String("file", s.file), zap.Int("entries", applied))
	return nil
}

// appendToFile дописывает запись в журнал; без файла ничего не делает.
func (s *MemoryStore) appendToFile(entry journalEntry) error {
	if s.file == "" {
		return nil
	}

	file, err := os.OpenFile(s.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal %s: %w", s.file, err)
	}
	defer file.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write journal %s: %w", s.file, err)
	}
	return nil
}
