package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pingwatch/internal/models"
)

// Archived log files beyond this count are deleted, oldest first.
const maxArchivedLogs = 5

// FileSink appends one JSON record per line to a log file, rotating it by
// size. The rotation check runs once per Write call, before anything is
// appended, so a concurrent reader never sees new records under a name that
// is about to be renamed away.
type FileSink struct {
	path     string
	maxBytes int64
	log      zerolog.Logger
}

// NewFileSink creates a file sink rotating at rotateMB megabytes.
func NewFileSink(path string, rotateMB int, log zerolog.Logger) *FileSink {
	return &FileSink{
		path:     path,
		maxBytes: int64(rotateMB) * 1024 * 1024,
		log:      log,
	}
}

// Name implements models.Sink.
func (s *FileSink) Name() string { return "file" }

// Write rotates if needed, then appends each record as one line. A record
// that fails to serialize or write is skipped with a warning; the rest of
// the batch still goes out.
func (s *FileSink) Write(ctx context.Context, records []models.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := s.rotateIfNeeded(); err != nil {
		s.log.Warn().Err(err).Msg("Log rotation failed, appending to current file")
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			s.log.Warn().Err(err).Msg("Failed to write log record")
		}
	}

	return nil
}

// rotateIfNeeded renames the live file to an archival name once it reaches
// the size threshold, then prunes old archives.
func (s *FileSink) rotateIfNeeded() error {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if info.Size() < s.maxBytes {
		return nil
	}

	archived := s.archiveName(time.Now())
	if err := os.Rename(s.path, archived); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	s.log.Info().Str("archived", archived).Msg("Rotated log file")

	if err := s.pruneArchives(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to prune old log archives")
	}

	return nil
}

func (s *FileSink) archiveName(now time.Time) string {
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(s.path, ext)

	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), ext)
}

// pruneArchives keeps the maxArchivedLogs most recently modified archives
// of this log file and deletes the rest.
func (s *FileSink) pruneArchives() error {
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(filepath.Base(s.path), ext)

	pattern := filepath.Join(filepath.Dir(s.path), base+"_*"+ext)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	type archive struct {
		path    string
		modTime time.Time
	}

	archives := make([]archive, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		archives = append(archives, archive{path: m, modTime: info.ModTime()})
	}

	if len(archives) <= maxArchivedLogs {
		return nil
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].modTime.After(archives[j].modTime)
	})

	for _, old := range archives[maxArchivedLogs:] {
		if err := os.Remove(old.path); err != nil {
			s.log.Warn().Str("path", old.path).Err(err).Msg("Failed to remove old log archive")
		}
	}

	return nil
}
