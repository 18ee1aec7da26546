// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kB = 1000
	mB = kB * 1000
	gB = mB * 1000
	tB = gB * 1000
)

// FormatSize formats bytes with decimal-prefixed units (B, kB, MB, GB, TB).
func FormatSize(bytes uint64) string {
	bf := float64(bytes)
	switch {
	case bf >= tB:
		return fmt.Sprintf("%.2f TB", bf/tB)
	case bf >= gB:
		return fmt.Sprintf("%.2f GB", bf/gB)
	case bf >= mB:
		return fmt.Sprintf("%.2f MB", bf/mB)
	case bf >= kB:
		return fmt.Sprintf("%.2f kB", bf/kB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration formats seconds as HH:MM:SS.cc with centisecond precision.
// Fractional centiseconds are truncated, not rounded.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??.??"
	}

	totalCentisecs := uint64(seconds * 100)
	hours := totalCentisecs / 360000
	minutes := (totalCentisecs % 360000) / 6000
	secs := (totalCentisecs % 6000) / 100
	centisecs := totalCentisecs % 100
	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}

// ParseFFmpegTime parses an FFmpeg time string (HH:MM:SS.MS) to seconds.
func ParseFFmpegTime(timeStr string) (float64, bool) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}

	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}

	return hours*3600 + minutes*60 + seconds, true
}

// ExtractProgressTime scans an FFmpeg stderr line for a "time=" field and
// returns the elapsed seconds it encodes.
func ExtractProgressTime(line string) (float64, bool) {
	idx := strings.Index(line, "time=")
	if idx < 0 {
		return 0, false
	}

	rest := line[idx+len("time="):]
	if fieldEnd := strings.IndexAny(rest, " \t"); fieldEnd >= 0 {
		rest = rest[:fieldEnd]
	}
	return ParseFFmpegTime(rest)
}
