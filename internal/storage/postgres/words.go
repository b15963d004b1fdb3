package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scythe504/partyroom-backend/internal/words"
)

const wordsSchema = `
	CREATE TABLE IF NOT EXISTS words (
		id         BIGSERIAL    PRIMARY KEY,
		category   VARCHAR(64)  NOT NULL,
		word       VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		UNIQUE (category, word)
	);
	CREATE INDEX IF NOT EXISTS idx_words_category ON words (category);
`

// WordRepository stores the pictionary word lists.
type WordRepository struct {
	db *pgxpool.Pool
}

func NewWordRepository(db *pgxpool.Pool) *WordRepository {
	return &WordRepository{db: db}
}

// EnsureSchema creates the words table if it does not exist.
func (r *WordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, wordsSchema); err != nil {
		return fmt.Errorf("creating words schema: %w", err)
	}
	return nil
}

// Insert adds words under category, skipping ones already stored. It returns
// how many rows were added.
func (r *WordRepository) Insert(ctx context.Context, category string, list ...string) (int, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	batch := &pgx.Batch{}
	for _, w := range list {
		if w = strings.TrimSpace(w); w == "" {
			continue
		}
		batch.Queue(`INSERT INTO words (category, word) VALUES ($1, $2) ON CONFLICT DO NOTHING`, category, w)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	added := 0
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return added, fmt.Errorf("inserting words into %s: %w", category, err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

// Seed stores every list of bank.
func (r *WordRepository) Seed(ctx context.Context, bank *words.Bank) (int, error) {
	total := 0
	for cat, list := range bank.Lists() {
		n, err := r.Insert(ctx, cat, list...)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// LoadBank reads every stored word into a Bank.
func (r *WordRepository) LoadBank(ctx context.Context) (*words.Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT category, word FROM words ORDER BY category, id`)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	lists := make(map[string][]string)
	for rows.Next() {
		var cat, w string
		if err := rows.Scan(&cat, &w); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		lists[cat] = append(lists[cat], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating words: %w", err)
	}
	return words.NewBank(lists), nil
}
