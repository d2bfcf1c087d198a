package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/Totarae/shortlinks/internal/util"
	"go.uber.org/zap"
)

//go:generate mockgen -source=links.go -destination=mocks/mock_store.go -package=mocks

// LinkStore — хранилище ссылок, разбитое на партиции по apiKey.
type LinkStore interface {
	// Get возвращает ссылку или nil, nil, если её нет.
	Get(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error)
	// QueryAll возвращает все ссылки партиции apiKey в произвольном порядке.
	QueryAll(ctx context.Context, apiKey string) ([]*model.Link, error)
	// Put создаёт или перезаписывает ссылку.
	Put(ctx context.Context, link *model.Link) error
	// Delete удаляет ссылку; отсутствие ключа ошибкой не считается.
	Delete(ctx context.Context, apiKey, shortLinkID string) error
}

type LinkService struct {
	Store  LinkStore
	Logger *zap.Logger
}

func NewLinkService(store LinkStore, logger *zap.Logger) *LinkService {
	return &LinkService{
		Store:  store,
		Logger: logger,
	}
}

// FetchAll returns every link of the tenant. The result is never nil.
func (s *LinkService) FetchAll(ctx context.Context, apiKey string) ([]*model.Link, error) {
	log := s.Logger.With(zap.String("api_key", apiKey))
	log.Debug("fetching all links")

	links, err := s.Store.QueryAll(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	if links == nil {
		links = []*model.Link{}
	}

	log.Debug("fetching all links done", zap.Int("count", len(links)))
	return links, nil
}

// Fetch returns the link or nil when the tenant has no such id.
func (s *LinkService) Fetch(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	log := s.Logger.With(zap.String("api_key", apiKey), zap.String("short_link_id", shortLinkID))
	log.Debug("fetching link")

	link, err := s.Store.Get(ctx, apiKey, shortLinkID)
	if err != nil {
		return nil, fmt.Errorf("get link %s: %w", shortLinkID, err)
	}

	log.Debug("fetching link done", zap.Bool("found", link != nil))
	return link, nil
}

// Create parses body as {"url": "..."}, mints a short id and stores the link.
// Input problems are reported as *model.ValidationError.
func (s *LinkService) Create(ctx context.Context, apiKey string, body []byte) (*model.Link, error) {
	log := s.Logger.With(zap.String("api_key", apiKey))
	log.Debug("creating link")

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("parse request body: %w", err)
	}

	raw, ok := req["url"]
	if !ok {
		return nil, model.NewValidationError(model.MsgMissingURL)
	}
	// Нестроковое значение не пройдёт проверку формата.
	url, _ := raw.(string)

	id, err := util.NewShortLinkID()
	if err != nil {
		return nil, err
	}

	link, err := model.NewLink(apiKey, id, url)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Put(ctx, link); err != nil {
		return nil, fmt.Errorf("put link %s: %w", id, err)
	}

	log.Debug("creating link done", zap.String("short_link_id", id))
	return link, nil
}

// Delete removes the link. Missing links are not an error.
func (s *LinkService) Delete(ctx context.Context, apiKey, shortLinkID string) error {
	log := s.Logger.With(zap.String("api_key", apiKey), zap.String("short_link_id", shortLinkID))
	log.Debug("deleting link")

	if err := s.Store.Delete(ctx, apiKey, shortLinkID); err != nil {
		return fmt.Errorf("delete link %s: %w", shortLinkID, err)
	}

	log.Debug("deleting link done")
	return nil
}
