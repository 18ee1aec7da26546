// Package discovery provides video file discovery for batch processing.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"

	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/util"
)

// videoExtensions are the container extensions eligible for analysis.
var videoExtensions = map[string]bool{
	"mp4":  true,
	"mov":  true,
	"avi":  true,
	"mkv":  true,
	"webm": true,
	"m4v":  true,
	"wmv":  true,
	"flv":  true,
	"ts":   true,
}

// Logger is the logging surface discovery needs. Arguments are slog-style
// key-value pairs.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Result contains discovered files along with skip accounting.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindVideoFiles returns the video files directly under inputDir, sorted
// case-insensitively by filename. Hidden files and subdirectories are
// skipped. Files with a video extension that fail content sniffing are
// skipped too, so a renamed zip never reaches ffprobe.
func FindVideoFiles(inputDir string) ([]string, error) {
	result, err := Scan(inputDir, nil)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// Scan walks inputDir like FindVideoFiles while reporting skips through
// the optional logger.
func Scan(inputDir string, logger Logger) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errors.NewPathError("directory does not exist: " + inputDir)
	}
	if !info.IsDir() {
		return nil, errors.NewPathError(inputDir + " is not a directory")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewIOError("cannot read directory "+inputDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if !videoExtensions[util.GetFileExtension(name)] {
			result.SkippedCount++
			continue
		}
		if !sniffVideo(fullPath) {
			if logger != nil {
				logger.Debug("skipping file, content does not match a video format", "file", name)
			}
			result.SkippedCount++
			continue
		}
		result.Files = append(result.Files, fullPath)
	}

	if len(result.Files) == 0 {
		return nil, errors.NewNoVideosFoundError(inputDir)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(result.Files[i])) < strings.ToLower(filepath.Base(result.Files[j]))
	})

	if logger != nil {
		logDiscovered(result, logger)
	}
	return result, nil
}

// sniffVideo checks magic bytes to confirm the file really holds video.
// Unreadable or too-short files pass through; ffprobe gives the better
// error message for those.
func sniffVideo(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil || n == 0 {
		return true
	}

	// Unrecognized headers pass through; only a confident non-video match
	// (a renamed archive or image) is rejected.
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return true
	}
	return kind.MIME.Type == "video"
}

func logDiscovered(result *Result, logger Logger) {
	logger.Info("found video files", "count", len(result.Files), "skipped", result.SkippedCount)

	maxToLog := min(5, len(result.Files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("discovered", "file", filepath.Base(result.Files[i]))
	}
	if len(result.Files) > 5 {
		logger.Debug("more files discovered", "count", len(result.Files)-5)
	}
}
