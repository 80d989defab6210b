package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/models"
	"github.com/lk16/flippy/engine/internal/services"
	"github.com/redis/go-redis/v9"
)

const searchCachePrefix = "search:"

var (
	ErrSearchNotFound  = errors.New("search not found")
	ErrStorageDisabled = errors.New("search storage is not configured")
)

// SearchRepository caches search results in Redis and stores them in Postgres.
type SearchRepository struct {
	services *services.Services
	ttl      time.Duration
}

func NewSearchRepository(c *fiber.Ctx) *SearchRepository {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	return &SearchRepository{
		services: c.Locals("services").(*services.Services),
		ttl:      cfg.CacheTTL,
	}
}

func NewSearchRepositoryFromServices(services *services.Services, ttl time.Duration) *SearchRepository {
	return &SearchRepository{
		services: services,
		ttl:      ttl,
	}
}

// LookupCached returns a cached search result. The boolean is false on a cache miss.
func (repo *SearchRepository) LookupCached(ctx context.Context, key string) (models.MoveResponse, bool, error) {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return models.MoveResponse{}, false, nil
	}

	data, err := redisConn.Get(ctx, searchCachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.MoveResponse{}, false, nil
		}

		return models.MoveResponse{}, false, fmt.Errorf("error getting search from Redis: %w", err)
	}

	var response models.MoveResponse
	if err = json.Unmarshal(data, &response); err != nil {
		return models.MoveResponse{}, false, fmt.Errorf("error unmarshaling cached search: %w", err)
	}

	return response, true, nil
}

// StoreCached caches a search result. It does nothing when Redis is not configured.
func (repo *SearchRepository) StoreCached(ctx context.Context, key string, response models.MoveResponse) error {
	redisConn := repo.services.Redis
	if redisConn == nil {
		return nil
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error marshaling search: %w", err)
	}

	if err = redisConn.Set(ctx, searchCachePrefix+key, data, repo.ttl).Err(); err != nil {
		return fmt.Errorf("error storing search in Redis: %w", err)
	}

	return nil
}

// InsertSearch stores a finished search.
func (repo *SearchRepository) InsertSearch(ctx context.Context, record models.SearchRecord) error {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return ErrStorageDisabled
	}

	query := `
		INSERT INTO searches (id, position, moves, depth, preset, move_row, move_col, score, nodes, created_at)
		VALUES (:id, :position, :moves, :depth, :preset, :move_row, :move_col, :score, :nodes, :created_at)
	`

	if _, err := pgConn.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("error inserting search: %w", err)
	}

	return nil
}

// GetSearch loads a stored search by its id.
func (repo *SearchRepository) GetSearch(ctx context.Context, id uuid.UUID) (models.SearchRecord, error) {
	pgConn := repo.services.Postgres
	if pgConn == nil {
		return models.SearchRecord{}, ErrStorageDisabled
	}

	query := `
		SELECT id, position, moves, depth, preset, move_row, move_col, score, nodes, created_at
		FROM searches
		WHERE id = $1
	`

	var record models.SearchRecord
	if err := pgConn.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SearchRecord{}, ErrSearchNotFound
		}

		return models.SearchRecord{}, fmt.Errorf("error getting search: %w", err)
	}

	return record, nil
}
