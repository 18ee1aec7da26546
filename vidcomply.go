// Package vidcomply provides a Go library for checking video assets against
// delivery standards and remediating the ones that fall short.
//
// Each asset is probed with ffprobe, scored against a declarative standards
// catalog, classified by content type, and, when requested, transcoded with
// NVENC settings tuned to that content type.
//
// Basic usage:
//
//	analyzer, err := vidcomply.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	meta, result, err := analyzer.AnalyzeFile("clip.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s scored %d/100 (compliant: %v)\n",
//	    meta.Resolution, result.Score, result.IsCompliant)
package vidcomply

import (
	"context"

	"github.com/mattvenn/vidcomply/internal/classify"
	"github.com/mattvenn/vidcomply/internal/compliance"
	"github.com/mattvenn/vidcomply/internal/discovery"
	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/processing"
	"github.com/mattvenn/vidcomply/internal/remediation"
	"github.com/mattvenn/vidcomply/internal/reporter"
	"github.com/mattvenn/vidcomply/internal/standards"
)

// Re-exported analysis types.
type (
	Catalog       = standards.Catalog
	VideoMetadata = ffprobe.VideoMetadata
	Result        = compliance.Result
	Violation     = compliance.Violation
	Severity      = compliance.Severity
	Category      = compliance.Category
	ContentType   = classify.ContentType
	NamingPolicy  = remediation.NamingPolicy
	Reporter      = reporter.Reporter
	Outcome       = processing.Outcome
)

// Severity levels.
const (
	SeverityCritical = compliance.SeverityCritical
	SeverityWarning  = compliance.SeverityWarning
	SeverityInfo     = compliance.SeverityInfo
)

// Content types.
const (
	ScreenCapture = classify.ScreenCapture
	LiveAction    = classify.LiveAction
	Animation     = classify.Animation
	Presentation  = classify.Presentation
	Unknown       = classify.Unknown
)

// Naming policies.
const (
	NamePreserve = remediation.NamePreserve
	NameSuffix   = remediation.NameSuffix
)

// DefaultCatalog returns the built-in delivery-standards catalog.
func DefaultCatalog() *Catalog {
	return standards.Default()
}

// LoadCatalog reads a standards catalog from a TOML file.
func LoadCatalog(path string) (*Catalog, error) {
	return standards.Load(path)
}

// Analyzer is the main entry point for compliance analysis.
type Analyzer struct {
	opts processing.Options
	rep  reporter.Reporter
}

// Option configures the analyzer.
type Option func(*Analyzer)

// New creates a new Analyzer with the given options.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		opts: processing.Options{Catalog: standards.Default()},
		rep:  reporter.NullReporter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.opts.Catalog.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// WithCatalog replaces the built-in standards catalog.
func WithCatalog(catalog *Catalog) Option {
	return func(a *Analyzer) {
		a.opts.Catalog = catalog
	}
}

// WithNamingPolicy sets how remediated output files are named.
func WithNamingPolicy(policy NamingPolicy) Option {
	return func(a *Analyzer) {
		a.opts.Naming = policy
	}
}

// WithReporter routes progress and results to a custom reporter.
func WithReporter(rep Reporter) Option {
	return func(a *Analyzer) {
		a.rep = rep
	}
}

// AnalyzeFile probes a single asset and scores it against the catalog.
func (a *Analyzer) AnalyzeFile(path string) (*VideoMetadata, *Result, error) {
	return processing.New(a.opts, a.rep).AnalyzeFile(path)
}

// ProcessDirectory analyzes every video file in dir. With convert set,
// non-compliant files are transcoded into an H264 subdirectory.
func (a *Analyzer) ProcessDirectory(ctx context.Context, dir string, convert bool) (*Outcome, error) {
	return processing.New(a.opts, a.rep).ProcessDirectory(ctx, processing.Request{
		InputDir:   dir,
		Convert:    convert,
		Compliance: true,
	})
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}
