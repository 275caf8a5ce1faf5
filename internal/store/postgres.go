package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// UsageLogRecord is one provider call attributed to a user
type UsageLogRecord struct {
	UserID       string
	Feature      string
	Provider     string
	InputTokens  int
	OutputTokens int
	Cost         float64
	Success      bool
	ErrorMessage string
}

func (s *PostgresStore) InsertUsageLog(ctx context.Context, rec UsageLogRecord) error {
	query := `
        INSERT INTO ai_usage_logs (user_id, feature, provider, input_tokens, output_tokens, cost, success, error_message)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := s.db.Exec(ctx, query,
		rec.UserID, rec.Feature, rec.Provider, rec.InputTokens, rec.OutputTokens, rec.Cost, rec.Success, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

// PruneUsageLogs deletes usage logs older than retentionDays and reports how
// many rows went
func (s *PostgresStore) PruneUsageLogs(ctx context.Context, retentionDays int) (int64, error) {
	query := `DELETE FROM ai_usage_logs WHERE created_at < NOW() - ($1 * INTERVAL '1 day')`
	result, err := s.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to prune usage logs: %w", err)
	}
	return result.RowsAffected(), nil
}

// ExtractedContentRecord is the digest of one successful URL extraction
type ExtractedContentRecord struct {
	UserID    string
	URL       string
	Title     string
	Content   string
	Summary   string
	KeyPoints []string
	Topics    []string
	WordCount int
	Language  string
}

func (s *PostgresStore) SaveExtractedContent(ctx context.Context, rec ExtractedContentRecord) error {
	log.Printf("[Store.SaveExtractedContent] Saving extraction - UserID: %s, URL: %s, Words: %d", rec.UserID, rec.URL, rec.WordCount)
	query := `
        INSERT INTO extracted_contents (user_id, url, title, content, summary, key_points, topics, word_count, language)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := s.db.Exec(ctx, query,
		rec.UserID, rec.URL, rec.Title, rec.Content, rec.Summary, rec.KeyPoints, rec.Topics, rec.WordCount, rec.Language)
	if err != nil {
		return fmt.Errorf("failed to insert extracted content: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSetting(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM app_settings WHERE key = $1`
	var value []byte
	if err := s.db.QueryRow(ctx, query, key).Scan(&value); err != nil {
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) SetSetting(ctx context.Context, key string, value []byte, description string) error {
	query := `
        INSERT INTO app_settings (key, value, description)
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = NOW();
    `
	if _, err := s.db.Exec(ctx, query, key, value, description); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}
