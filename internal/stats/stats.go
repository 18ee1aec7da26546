// Package stats aggregates per-asset results across a batch run and writes
// the end-of-run conversion report.
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattvenn/vidcomply/internal/compliance"
	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/util"
)

// ScoredFile pairs a filename with its compliance score.
type ScoredFile struct {
	Filename string
	Score    uint8
}

// ComplianceSummary accumulates compliance results incrementally so a batch
// of any size needs only constant extra state beyond the per-file scores.
type ComplianceSummary struct {
	TotalFiles         int
	CompliantFiles     int
	NonCompliantFiles  int
	AverageScore       float64
	CriticalViolations int
	WarningViolations  int
	InfoViolations     int
	FilesByScore       []ScoredFile
}

// NewComplianceSummary creates an empty summary.
func NewComplianceSummary() *ComplianceSummary {
	return &ComplianceSummary{}
}

// AddResult folds one analysis into the summary, updating the running mean
// without rescanning earlier results.
func (s *ComplianceSummary) AddResult(result *compliance.Result, filename string) {
	s.TotalFiles++
	s.AverageScore = (s.AverageScore*float64(s.TotalFiles-1) + float64(result.Score)) / float64(s.TotalFiles)
	s.FilesByScore = append(s.FilesByScore, ScoredFile{Filename: filename, Score: result.Score})

	if result.IsCompliant {
		s.CompliantFiles++
	} else {
		s.NonCompliantFiles++
	}

	for _, v := range result.Violations {
		switch v.Severity {
		case compliance.SeverityCritical:
			s.CriticalViolations++
		case compliance.SeverityWarning:
			s.WarningViolations++
		case compliance.SeverityInfo:
			s.InfoViolations++
		}
	}
}

// ComplianceRate returns the percentage of compliant files, 0 for an empty
// summary.
func (s *ComplianceSummary) ComplianceRate() float64 {
	if s.TotalFiles == 0 {
		return 0
	}
	return float64(s.CompliantFiles) / float64(s.TotalFiles) * 100.0
}

// Worst returns up to n files ordered by ascending score. Ties keep their
// insertion order, and fully scoring files are excluded.
func (s *ComplianceSummary) Worst(n int) []ScoredFile {
	sorted := make([]ScoredFile, len(s.FilesByScore))
	copy(sorted, s.FilesByScore)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	var worst []ScoredFile
	for _, f := range sorted {
		if len(worst) >= n {
			break
		}
		if f.Score < 100 {
			worst = append(worst, f)
		}
	}
	return worst
}

// ProcessingSummary accumulates probed metadata facts across a batch.
type ProcessingSummary struct {
	TotalVideos   int
	TotalSize     uint64
	TotalDuration float64
	Codecs        map[string]int
	AudioCodecs   map[string]int
	Resolutions   map[string]int
}

// NewProcessingSummary creates an empty summary.
func NewProcessingSummary() *ProcessingSummary {
	return &ProcessingSummary{
		Codecs:      make(map[string]int),
		AudioCodecs: make(map[string]int),
		Resolutions: make(map[string]int),
	}
}

// AddVideo folds one asset's metadata into the summary.
func (s *ProcessingSummary) AddVideo(meta *ffprobe.VideoMetadata) {
	s.TotalVideos++
	s.TotalSize += meta.Size
	s.TotalDuration += meta.Duration
	s.Codecs[meta.Codec]++
	s.AudioCodecs[meta.AudioCodec]++
	s.Resolutions[meta.Resolution]++
}

// WriteReport writes the plain-text conversion report into dir as
// conversion_report.txt.
func WriteReport(dir string, summary *ProcessingSummary) error {
	reportPath := filepath.Join(dir, "conversion_report.txt")

	var b strings.Builder
	b.WriteString("Conversion Report\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "Total Videos: %d\n", summary.TotalVideos)
	fmt.Fprintf(&b, "Total Duration: %s\n", util.FormatDuration(summary.TotalDuration))
	fmt.Fprintf(&b, "Total Size: %s\n\n", util.FormatSize(summary.TotalSize))
	b.WriteString("Video Codec Distribution:\n")
	b.WriteString(distribution(summary.Codecs, "using"))
	b.WriteString("\nAudio Codec Distribution:\n")
	b.WriteString(distribution(summary.AudioCodecs, "using"))
	b.WriteString("\nResolution Distribution:\n")
	b.WriteString(distribution(summary.Resolutions, "at"))
	b.WriteString("\n")

	if err := os.WriteFile(reportPath, []byte(b.String()), 0o644); err != nil {
		return errors.NewIOError("failed to write conversion report", err)
	}
	return nil
}

// distribution renders a count map as sorted report lines.
func distribution(counts map[string]int, verb string) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %d videos %s %s", counts[k], verb, k))
	}
	return strings.Join(lines, "\n")
}

// FailedFile records a per-asset failure with its reason.
type FailedFile struct {
	Path   string
	Reason string
}

// BatchProcessor tracks per-file outcomes through a batch run. A file is
// fixed when a remediation produced an output, skipped when it was already
// compliant, and failed when its probe or transcode errored. Failures do
// not stop the batch.
type BatchProcessor struct {
	TotalFiles     int
	ProcessedFiles int
	FixedFiles     []string
	SkippedFiles   []string
	FailedFiles    []FailedFile
}

// NewBatchProcessor creates a tracker for a batch of the given size.
func NewBatchProcessor(totalFiles int) *BatchProcessor {
	return &BatchProcessor{TotalFiles: totalFiles}
}

// RecordFixed notes a successfully remediated file.
func (b *BatchProcessor) RecordFixed(outputPath string) {
	b.ProcessedFiles++
	b.FixedFiles = append(b.FixedFiles, outputPath)
}

// RecordSkipped notes a file that needed no remediation.
func (b *BatchProcessor) RecordSkipped(path string) {
	b.ProcessedFiles++
	b.SkippedFiles = append(b.SkippedFiles, path)
}

// RecordFailed notes a file whose processing errored.
func (b *BatchProcessor) RecordFailed(path string, err error) {
	b.ProcessedFiles++
	b.FailedFiles = append(b.FailedFiles, FailedFile{Path: path, Reason: err.Error()})
}

// FixedRate returns the percentage of files fixed, 0 for an empty batch.
func (b *BatchProcessor) FixedRate() float64 {
	return b.rate(len(b.FixedFiles))
}

// SkippedRate returns the percentage of files skipped.
func (b *BatchProcessor) SkippedRate() float64 {
	return b.rate(len(b.SkippedFiles))
}

// FailedRate returns the percentage of files that failed.
func (b *BatchProcessor) FailedRate() float64 {
	return b.rate(len(b.FailedFiles))
}

func (b *BatchProcessor) rate(count int) float64 {
	if b.TotalFiles == 0 {
		return 0
	}
	return float64(count) / float64(b.TotalFiles) * 100.0
}
