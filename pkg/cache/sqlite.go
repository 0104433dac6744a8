package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"stylehunt/pkg/logger"
	"stylehunt/pkg/models"
)

type sqliteStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLite opens (or creates) the sqlite cache file. Entries older than ttl
// are treated as misses; they are overwritten in place on the next Set.
func NewSQLite(dbPath string, ttl time.Duration) (Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			platform TEXT NOT NULL,
			search_key TEXT NOT NULL,
			data TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			PRIMARY KEY (platform, search_key)
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, ttl: ttl}, nil
}

func (c *sqliteStore) Get(platform, key string) (*models.SearchResponse, bool) {
	var data string
	var fetchedAt time.Time

	err := c.db.QueryRow(
		`SELECT data, fetched_at FROM searches WHERE platform = ? AND search_key = ?`,
		platform, key,
	).Scan(&data, &fetchedAt)

	if err != nil {
		return nil, false
	}

	if time.Since(fetchedAt) > c.ttl {
		return nil, false
	}

	var res models.SearchResponse
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to unmarshal search response")
		return nil, false
	}

	return &res, true
}

func (c *sqliteStore) Set(platform, key string, res *models.SearchResponse) {
	data, err := json.Marshal(res)
	if err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to marshal search response")
		return
	}

	_, err = c.db.Exec(
		`INSERT INTO searches (platform, search_key, data, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(platform, search_key)
		 DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		platform, key, string(data), time.Now(),
	)
	if err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to store search response")
	}
}

func (c *sqliteStore) Close() error {
	return c.db.Close()
}
