// Package processing orchestrates the per-directory compliance pipeline:
// discovery, probing, analysis, and remediation.
package processing

import (
	"context"
	"path/filepath"

	"github.com/mattvenn/vidcomply/internal/classify"
	"github.com/mattvenn/vidcomply/internal/compliance"
	"github.com/mattvenn/vidcomply/internal/discovery"
	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/ffmpeg"
	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/logging"
	"github.com/mattvenn/vidcomply/internal/remediation"
	"github.com/mattvenn/vidcomply/internal/reporter"
	"github.com/mattvenn/vidcomply/internal/standards"
	"github.com/mattvenn/vidcomply/internal/stats"
	"github.com/mattvenn/vidcomply/internal/util"
)

// outputSubdir is created under the scanned directory for remediated files.
const outputSubdir = "H264"

// Prober extracts technical metadata from a media file.
type Prober interface {
	Probe(path string) (*ffprobe.VideoMetadata, error)
}

// Transcoder executes transcode commands and verifies encode hardware.
type Transcoder interface {
	Run(ctx context.Context, args []string, duration float64, callback ffmpeg.ProgressCallback) error
	CheckHardware(ctx context.Context) error
}

// Options configure a Processor for its lifetime.
type Options struct {
	Catalog *standards.Catalog
	Naming  remediation.NamingPolicy
}

// Request describes one directory run.
type Request struct {
	InputDir   string
	Convert    bool
	Compliance bool
}

// Outcome aggregates everything a run produced.
type Outcome struct {
	Processing *stats.ProcessingSummary
	Compliance *stats.ComplianceSummary
	Batch      *stats.BatchProcessor
}

// Processor runs the pipeline over a directory of assets.
type Processor struct {
	engine     *compliance.Engine
	planner    *remediation.Planner
	prober     Prober
	transcoder Transcoder
	reporter   reporter.Reporter
	logger     *logging.Logger
}

// New creates a processor with real collaborators.
func New(opts Options, rep reporter.Reporter) *Processor {
	return NewWithCollaborators(opts, rep, proberFunc(ffprobe.Probe), execTranscoder{})
}

// NewWithCollaborators creates a processor with explicit probe and
// transcode collaborators.
func NewWithCollaborators(opts Options, rep reporter.Reporter, prober Prober, transcoder Transcoder) *Processor {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = standards.Default()
	}
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Processor{
		engine:     compliance.NewEngine(catalog),
		planner:    remediation.NewPlanner(opts.Naming),
		prober:     prober,
		transcoder: transcoder,
		reporter:   rep,
		logger:     logging.Global().WithPrefix("processing"),
	}
}

// ProcessDirectory runs the pipeline over every video file in req.InputDir.
// Setup failures (bad directory, no files, missing hardware) abort the run;
// per-asset failures are recorded and the batch continues.
func (p *Processor) ProcessDirectory(ctx context.Context, req Request) (*Outcome, error) {
	scan, err := discovery.Scan(req.InputDir, p.logger)
	if err != nil {
		return nil, err
	}

	var outputDir string
	if req.Convert {
		if err := p.transcoder.CheckHardware(ctx); err != nil {
			p.reporter.Hardware(reporter.HardwareSummary{GPUAvailable: false, Encoder: "h264_nvenc"})
			return nil, err
		}
		p.reporter.Hardware(reporter.HardwareSummary{GPUAvailable: true, Encoder: "h264_nvenc"})

		outputDir = filepath.Join(req.InputDir, outputSubdir)
		if err := util.EnsureDirectory(outputDir); err != nil {
			return nil, errors.NewIOError("failed to create output directory "+outputDir, err)
		}
	}

	p.reporter.ScanStarted(reporter.ScanInfo{
		Directory:  req.InputDir,
		TotalFiles: len(scan.Files),
	})

	outcome := &Outcome{
		Processing: stats.NewProcessingSummary(),
		Compliance: stats.NewComplianceSummary(),
		Batch:      stats.NewBatchProcessor(len(scan.Files)),
	}

	// Conversion without analysis still needs the violation set to decide
	// what to fix, so convert implies analyze.
	analyze := req.Compliance || req.Convert

	for _, path := range scan.Files {
		if ctx.Err() != nil {
			return outcome, errors.NewCancelledError()
		}
		p.processFile(ctx, req, path, outputDir, analyze, outcome)
	}

	if req.Convert {
		if err := stats.WriteReport(outputDir, outcome.Processing); err != nil {
			return outcome, err
		}
		p.reporter.BatchReport(reporter.SummaryView{Batch: outcome.Batch})
	}
	if req.Compliance {
		p.reporter.ComplianceSummary(reporter.SummaryView{Compliance: outcome.Compliance})
	}

	return outcome, nil
}

// processFile runs one asset through the pipeline, recording rather than
// propagating its failures.
func (p *Processor) processFile(ctx context.Context, req Request, path, outputDir string, analyze bool, outcome *Outcome) {
	filename := util.GetFilename(path)

	meta, err := p.prober.Probe(path)
	if err != nil {
		p.logger.Error("probe failed", "file", filename, "error", err)
		outcome.Batch.RecordFailed(path, err)
		p.reporter.Error(reporter.ReporterError{
			Title:   "Probe failed",
			Message: err.Error(),
			Context: path,
		})
		return
	}

	outcome.Processing.AddVideo(meta)
	p.reporter.FileInfo(reporter.FileInfo{
		Filename:    filename,
		Duration:    util.FormatDuration(meta.Duration),
		Codec:       meta.Codec,
		Resolution:  meta.Resolution,
		BitrateMbps: float64(meta.Bitrate) / 1_000_000.0,
		Size:        util.FormatSize(meta.Size),
		FPS:         meta.FPS,
		AudioCodec:  meta.AudioCodec,
		Container:   meta.Container,
		Profile:     meta.Profile,
		ColorSpace:  meta.ColorSpace,
	})

	if !analyze {
		outcome.Batch.RecordSkipped(path)
		return
	}

	result := p.engine.Analyze(meta)
	outcome.Compliance.AddResult(result, filename)
	if req.Compliance {
		p.reporter.ComplianceReport(reporter.ComplianceReport{Filename: filename, Result: result})
	}

	if !req.Convert {
		outcome.Batch.RecordSkipped(path)
		return
	}
	if result.IsCompliant {
		p.reporter.FileSkipped(filename)
		outcome.Batch.RecordSkipped(path)
		return
	}

	contentType := classify.Detect(meta, path)
	plan := p.planner.BuildPlan(result, contentType, path, outputDir)

	p.logger.Info("remediating file",
		"file", filename,
		"content_type", contentType.String(),
		"violations", len(result.Violations))
	p.reporter.RemediationStarted(reporter.RemediationInfo{
		InputPath:   path,
		OutputPath:  plan.OutputPath,
		ContentType: contentType,
		Violations:  len(result.Violations),
	})

	err = p.transcoder.Run(ctx, plan.Args(), meta.Duration, func(progress ffmpeg.Progress) {
		p.reporter.TranscodeProgress(reporter.TranscodeProgress{
			Percent:     progress.Percent,
			ElapsedSecs: progress.ElapsedSecs,
		})
	})
	if err != nil {
		p.logger.Error("transcode failed", "file", filename, "error", err)
		outcome.Batch.RecordFailed(path, err)
		p.reporter.Error(reporter.ReporterError{
			Title:      "Transcode failed",
			Message:    err.Error(),
			Context:    path,
			Suggestion: "check the run log for the full ffmpeg output",
		})
		return
	}

	outcome.Batch.RecordFixed(plan.OutputPath)
	p.reporter.RemediationComplete(reporter.RemediationOutcome{OutputPath: plan.OutputPath})
}

// AnalyzeFile probes and analyzes a single asset without remediation.
func (p *Processor) AnalyzeFile(path string) (*ffprobe.VideoMetadata, *compliance.Result, error) {
	meta, err := p.prober.Probe(path)
	if err != nil {
		return nil, nil, err
	}
	return meta, p.engine.Analyze(meta), nil
}

// proberFunc adapts a plain probe function to the Prober interface.
type proberFunc func(path string) (*ffprobe.VideoMetadata, error)

func (f proberFunc) Probe(path string) (*ffprobe.VideoMetadata, error) {
	return f(path)
}

// execTranscoder is the real ffmpeg-backed Transcoder.
type execTranscoder struct{}

func (execTranscoder) Run(ctx context.Context, args []string, duration float64, callback ffmpeg.ProgressCallback) error {
	return ffmpeg.Run(ctx, args, duration, callback)
}

func (execTranscoder) CheckHardware(ctx context.Context) error {
	return ffmpeg.CheckHardware(ctx)
}
