package transcribe

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// DefaultMaxAudioMB is the largest accepted upload
const DefaultMaxAudioMB = 25

var (
	ErrEmptyAudio        = errors.New("audio is empty")
	ErrAudioTooLarge     = errors.New("audio exceeds size limit")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// SupportedExtensions are the accepted audio file types
var SupportedExtensions = []string{"mp3", "wav", "m4a", "aac", "flac", "ogg", "mp4"}

// ValidateAudio checks that audio is non-empty, within maxMB and of a
// supported type
func ValidateAudio(a Audio, maxMB int) error {
	if len(a.Data) == 0 {
		return ErrEmptyAudio
	}

	if maxMB > 0 {
		sizeMB := float64(len(a.Data)) / (1024 * 1024)
		if sizeMB > float64(maxMB) {
			return fmt.Errorf("%w: %.1f MB (limit %d MB)", ErrAudioTooLarge, sizeMB, maxMB)
		}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Filename)), ".")
	if !contains(SupportedExtensions, ext) {
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, a.Filename, strings.Join(SupportedExtensions, ", "))
	}

	return nil
}

// SafeSuffix returns the file extension of name for temporary files, or
// ".audio" when it is missing or implausibly long
func SafeSuffix(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || len(ext) > 10 {
		return ".audio"
	}
	return ext
}

// Digest returns the hex SHA-256 of the audio content
func (a Audio) Digest() string {
	sum := sha256.Sum256(a.Data)
	return hex.EncodeToString(sum[:])
}

// FormatDuration renders seconds as M:SS, or "-" when unknown
func FormatDuration(seconds *float64) string {
	if seconds == nil {
		return "-"
	}
	total := int(math.Max(0, *seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Caption summarizes the metadata on one line
func (m Metadata) Caption() string {
	lang := m.Language
	if lang == "" {
		lang = "unknown"
	}

	confidence := "-"
	if m.LanguageProbability != nil {
		confidence = fmt.Sprintf("%.1f%%", *m.LanguageProbability*100)
	}

	return fmt.Sprintf("Language: %s • Confidence: %s • Duration: %s", lang, confidence, FormatDuration(m.Duration))
}
