package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier — подмножество pgxpool.Pool, которое нужно репозиторию.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LinkRepository реализует service.LinkStore поверх PostgreSQL.
// Таблица links с первичным ключом (api_key, short_link_id).
type LinkRepository struct {
	DB Querier
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db Querier) *LinkRepository {
	return &LinkRepository{DB: db}
}

// Get возвращает ссылку или nil, если её нет.
func (r *LinkRepository) Get(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	query := `SELECT api_key, short_link_id, url FROM links WHERE api_key = $1 AND short_link_id = $2`

	link := &model.Link{}
	err := r.DB.QueryRow(ctx, query, apiKey, shortLinkID).Scan(&link.APIKey, &link.ShortLinkID, &link.URL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("database select error: %w", err)
	}
	return link, nil
}

// QueryAll возвращает все ссылки партиции apiKey.
func (r *LinkRepository) QueryAll(ctx context.Context, apiKey string) ([]*model.Link, error) {
	query := `SELECT api_key, short_link_id, url FROM links WHERE api_key = $1`

	rows, err := r.DB.Query(ctx, query, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := make([]*model.Link, 0)
	for rows.Next() {
		link := &model.Link{}
		if err := rows.Scan(&link.APIKey, &link.ShortLinkID, &link.URL); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return links, nil
}

// Put создаёт ссылку или перезаписывает существующую с тем же ключом.
func (r *LinkRepository) Put(ctx context.Context, link *model.Link) error {
	query := `INSERT INTO links (api_key, short_link_id, url)
              VALUES ($1, $2, $3)
              ON CONFLICT (api_key, short_link_id) DO UPDATE SET url = EXCLUDED.url`

	if _, err := r.DB.Exec(ctx, query, link.APIKey, link.ShortLinkID, link.URL); err != nil {
		return fmt.Errorf("database insert error: %w", err)
	}
	return nil
}

// Delete удаляет ссылку. Отсутствие строки ошибкой не считается.
func (r *LinkRepository) Delete(ctx context.Context, apiKey, shortLinkID string) error {
	query := `DELETE FROM links WHERE api_key = $1 AND short_link_id = $2`

	if _, err := r.DB.Exec(ctx, query, apiKey, shortLinkID); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}
