package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"foto-orders-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads services and question JSONB from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context, catalogID string) (domain.Catalog, error) {
	catalog := domain.Catalog{ID: catalogID}

	rows, err := l.pool.Query(ctx, `SELECT id, name, description, base_price FROM services WHERE catalog_id=$1 ORDER BY name`, catalogID)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load services: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BasePrice); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan service: %w", err)
		}
		catalog.Services = append(catalog.Services, s)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load services: %w", err)
	}

	qrows, err := l.pool.Query(ctx, `SELECT data FROM questions WHERE catalog_id=$1`, catalogID)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load questions: %w", err)
	}
	defer qrows.Close()
	for qrows.Next() {
		var raw []byte
		if err := qrows.Scan(&raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan question: %w", err)
		}
		var question domain.Question
		if err := json.Unmarshal(raw, &question); err != nil {
			return domain.Catalog{}, fmt.Errorf("unmarshal question: %w", err)
		}
		catalog.Questions = append(catalog.Questions, question)
	}
	if err := qrows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("load questions: %w", err)
	}

	if len(catalog.Services) == 0 && len(catalog.Questions) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	return catalog, nil
}
