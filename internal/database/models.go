package database

import (
	"time"
)

// CachedTranscript is a stored transcription result
type CachedTranscript struct {
	ID                  string    `json:"id"`
	AudioSHA256         string    `json:"audio_sha256"`
	SettingsKey         string    `json:"settings_key"`
	Filename            string    `json:"filename"`
	Text                string    `json:"text"`
	Language            *string   `json:"language,omitempty"`
	LanguageProbability *float64  `json:"language_probability,omitempty"`
	DurationSeconds     *float64  `json:"duration_seconds,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// CacheStats summarizes the transcript cache
type CacheStats struct {
	Entries         int        `json:"entries" yaml:"entries"`
	DistinctAudio   int        `json:"distinct_audio" yaml:"distinct_audio"`
	TotalDuration   float64    `json:"total_duration_seconds" yaml:"total_duration_seconds"`
	TotalTextLength int        `json:"total_text_length" yaml:"total_text_length"`
	Oldest          *time.Time `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest          *time.Time `json:"newest,omitempty" yaml:"newest,omitempty"`
}
