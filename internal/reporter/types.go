package reporter

import (
	"github.com/mattvenn/vidcomply/internal/classify"
	"github.com/mattvenn/vidcomply/internal/compliance"
	"github.com/mattvenn/vidcomply/internal/stats"
)

// HardwareSummary describes the encode hardware check outcome.
type HardwareSummary struct {
	GPUAvailable bool
	Encoder      string
}

// ScanInfo describes the directory scan about to run.
type ScanInfo struct {
	Directory  string
	TotalFiles int
}

// FileInfo carries the probed facts shown per asset.
type FileInfo struct {
	Filename    string
	Duration    string
	Codec       string
	Resolution  string
	BitrateMbps float64
	Size        string
	FPS         float64
	AudioCodec  string
	Container   string
	Profile     string
	ColorSpace  string
}

// ComplianceReport pairs a filename with its analysis result.
type ComplianceReport struct {
	Filename string
	Result   *compliance.Result
}

// RemediationInfo describes a transcode about to start.
type RemediationInfo struct {
	InputPath   string
	OutputPath  string
	ContentType classify.ContentType
	Violations  int
}

// TranscodeProgress is a point-in-time progress snapshot.
type TranscodeProgress struct {
	Percent     float64
	ElapsedSecs float64
}

// RemediationOutcome describes a finished transcode.
type RemediationOutcome struct {
	OutputPath string
}

// ReporterError carries a structured error for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// SummaryView adapts the aggregate types for display.
type SummaryView struct {
	Compliance *stats.ComplianceSummary
	Batch      *stats.BatchProcessor
}
