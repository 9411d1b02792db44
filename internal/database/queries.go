package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetTranscript returns the cached transcript for an audio digest and
// settings key, or nil if there is none
func (db *DB) GetTranscript(ctx context.Context, audioSHA256, settingsKey string) (*CachedTranscript, error) {
	var t CachedTranscript
	var language sql.NullString
	var probability, duration sql.NullFloat64

	err := db.QueryRowContext(ctx, `
		SELECT id, audio_sha256, settings_key, filename, text,
		       language, language_probability, duration_seconds, created_at
		FROM transcripts
		WHERE audio_sha256 = ? AND settings_key = ?
	`, audioSHA256, settingsKey).Scan(
		&t.ID, &t.AudioSHA256, &t.SettingsKey, &t.Filename, &t.Text,
		&language, &probability, &duration, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	if language.Valid {
		t.Language = &language.String
	}
	if probability.Valid {
		t.LanguageProbability = &probability.Float64
	}
	if duration.Valid {
		t.DurationSeconds = &duration.Float64
	}

	return &t, nil
}

// PutTranscript stores a transcript, replacing any entry with the same
// audio digest and settings key
func (db *DB) PutTranscript(ctx context.Context, t *CachedTranscript) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO transcripts (id, audio_sha256, settings_key, filename, text,
		                         language, language_probability, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(audio_sha256, settings_key) DO UPDATE SET
			filename = excluded.filename,
			text = excluded.text,
			language = excluded.language,
			language_probability = excluded.language_probability,
			duration_seconds = excluded.duration_seconds,
			created_at = excluded.created_at
	`, t.ID, t.AudioSHA256, t.SettingsKey, t.Filename, t.Text,
		t.Language, t.LanguageProbability, t.DurationSeconds, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	return nil
}

// CacheStats returns aggregate statistics about cached transcripts
func (db *DB) CacheStats(ctx context.Context) (*CacheStats, error) {
	var stats CacheStats
	var oldest, newest sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT audio_sha256),
		       COALESCE(SUM(duration_seconds), 0),
		       COALESCE(SUM(LENGTH(text)), 0),
		       MIN(created_at),
		       MAX(created_at)
		FROM transcripts
	`).Scan(&stats.Entries, &stats.DistinctAudio, &stats.TotalDuration,
		&stats.TotalTextLength, &oldest, &newest)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache stats: %w", err)
	}

	stats.Oldest = parseTimestamp(oldest)
	stats.Newest = parseTimestamp(newest)

	return &stats, nil
}

// ClearCache deletes cached transcripts created before the given time.
// A zero time deletes everything. It returns the number of rows removed.
func (db *DB) ClearCache(ctx context.Context, before time.Time) (int64, error) {
	var result sql.Result
	var err error
	if before.IsZero() {
		result, err = db.ExecContext(ctx, `DELETE FROM transcripts`)
	} else {
		result, err = db.ExecContext(ctx, `DELETE FROM transcripts WHERE created_at < ?`, before.UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	return result.RowsAffected()
}

// timestampFormats are the layouts go-sqlite3 uses when aggregates return
// DATETIME values as text
var timestampFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

func parseTimestamp(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s.String); err == nil {
			return &t
		}
	}
	return nil
}
