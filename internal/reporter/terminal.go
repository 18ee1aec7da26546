package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/mattvenn/vidcomply/internal/compliance"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float64
	verbose    bool
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	blue       *color.Color
	bold       *color.Color
}

// NewTerminalReporter creates a new terminal reporter. With verbose set,
// per-file metadata details and Verbose messages are shown.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		blue:    color.New(color.FgBlue),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("HARDWARE")
	if summary.GPUAvailable {
		r.printLabel(9, "Encoder:", r.green.Sprint(summary.Encoder))
	} else {
		r.printLabel(9, "Encoder:", r.yellow.Sprint("unavailable"))
	}
}

func (r *TerminalReporter) ScanStarted(info ScanInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("SCAN")
	r.printLabel(11, "Directory:", info.Directory)
	r.printLabel(11, "Files:", fmt.Sprintf("%d", info.TotalFiles))
}

func (r *TerminalReporter) FileInfo(info FileInfo) {
	fmt.Println()
	fmt.Printf("%s\n", r.bold.Sprintf("File: %s", info.Filename))
	r.printLabel(12, "Runtime:", info.Duration)

	if !r.verbose {
		return
	}
	r.printLabel(12, "Codec:", info.Codec)
	r.printLabel(12, "Resolution:", info.Resolution)
	r.printLabel(12, "Bitrate:", fmt.Sprintf("%.2f Mbps", info.BitrateMbps))
	r.printLabel(12, "Size:", info.Size)
	r.printLabel(12, "Frame Rate:", fmt.Sprintf("%.1f fps", info.FPS))
	r.printLabel(12, "Audio:", info.AudioCodec)
	r.printLabel(12, "Container:", info.Container)
	r.printLabel(12, "Profile:", info.Profile)
	r.printLabel(12, "Color Space:", info.ColorSpace)
}

func (r *TerminalReporter) ComplianceReport(report ComplianceReport) {
	result := report.Result

	fmt.Println()
	if result.IsCompliant {
		fmt.Printf("  %s %s\n", r.green.Sprint("✓"), r.green.Sprint("COMPLIANT"))
	} else {
		fmt.Printf("  %s %s\n", r.red.Sprint("✗"), r.red.Sprint("NON-COMPLIANT"))
	}
	r.printLabel(7, "Score:", r.bold.Sprintf("%d/100", result.Score))

	if len(result.Violations) > 0 {
		fmt.Printf("  %s\n", r.yellow.Sprint("Violations:"))
		for _, v := range result.Violations {
			c := r.severityColor(v.Severity)
			fmt.Printf("    [%s] %s: %s\n", c.Sprint(v.Severity), v.Category, v.Description)
			fmt.Printf("      Current:  %s\n", v.CurrentValue)
			fmt.Printf("      Expected: %s\n", v.ExpectedValue)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Printf("  %s\n", r.blue.Sprint("Recommendations:"))
		for _, rec := range result.Recommendations {
			fmt.Printf("    - %s\n", rec)
		}
	}
}

func (r *TerminalReporter) severityColor(s compliance.Severity) *color.Color {
	switch s {
	case compliance.SeverityCritical:
		return r.red
	case compliance.SeverityWarning:
		return r.yellow
	default:
		return r.blue
	}
}

func (r *TerminalReporter) RemediationStarted(info RemediationInfo) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("REMEDIATION")
	r.printLabel(13, "Input:", info.InputPath)
	r.printLabel(13, "Output:", info.OutputPath)
	r.printLabel(13, "Content Type:", info.ContentType.String())
	r.printLabel(13, "Violations:", fmt.Sprintf("%d", info.Violations))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Converting [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) TranscodeProgress(progress TranscodeProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := progress.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}

	// The bar only moves forward even when stderr timestamps jitter.
	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}
}

func (r *TerminalReporter) RemediationComplete(outcome RemediationOutcome) {
	r.finishProgress()
	fmt.Printf("  %s Fixed file saved: %s\n", r.green.Sprint("✓"), r.green.Sprint(outcome.OutputPath))
}

func (r *TerminalReporter) FileSkipped(string) {
	fmt.Printf("  %s Already compliant, no fixing needed\n", r.green.Sprint("✓"))
}

func (r *TerminalReporter) ComplianceSummary(summary SummaryView) {
	s := summary.Compliance
	if s == nil {
		return
	}

	fmt.Println()
	_, _ = r.cyan.Println("COMPLIANCE SUMMARY")
	r.printLabel(15, "Files Analyzed:", fmt.Sprintf("%d", s.TotalFiles))
	r.printLabel(15, "Compliant:", r.green.Sprintf("%d (%.1f%%)", s.CompliantFiles, s.ComplianceRate()))
	r.printLabel(15, "Non-Compliant:", r.red.Sprintf("%d (%.1f%%)", s.NonCompliantFiles, 100.0-s.ComplianceRate()))
	r.printLabel(15, "Average Score:", r.bold.Sprintf("%.1f/100", s.AverageScore))

	if s.CriticalViolations > 0 || s.WarningViolations > 0 || s.InfoViolations > 0 {
		fmt.Printf("  %s\n", r.yellow.Sprint("Violation Breakdown:"))
		if s.CriticalViolations > 0 {
			fmt.Printf("    Critical: %s\n", r.red.Sprintf("%d", s.CriticalViolations))
		}
		if s.WarningViolations > 0 {
			fmt.Printf("    Warnings: %s\n", r.yellow.Sprintf("%d", s.WarningViolations))
		}
		if s.InfoViolations > 0 {
			fmt.Printf("    Info:     %s\n", r.blue.Sprintf("%d", s.InfoViolations))
		}
	}

	worst := s.Worst(3)
	if len(worst) > 0 {
		fmt.Printf("  %s\n", r.yellow.Sprint("Files Needing Attention:"))
		for _, f := range worst {
			fmt.Printf("    %s - Score: %s\n", f.Filename, r.scoreColor(f.Score).Sprintf("%d/100", f.Score))
		}
	}
}

func (r *TerminalReporter) scoreColor(score uint8) *color.Color {
	switch {
	case score < 60:
		return r.red
	case score < 80:
		return r.yellow
	default:
		return r.blue
	}
}

func (r *TerminalReporter) BatchReport(summary SummaryView) {
	b := summary.Batch
	if b == nil {
		return
	}

	fmt.Println()
	_, _ = r.cyan.Println("BATCH REPORT")
	r.printLabel(14, "Total Files:", fmt.Sprintf("%d", b.TotalFiles))
	r.printLabel(14, "Files Fixed:", r.green.Sprintf("%d (%.1f%%)", len(b.FixedFiles), b.FixedRate()))
	r.printLabel(14, "Files Skipped:", r.blue.Sprintf("%d (%.1f%%)", len(b.SkippedFiles), b.SkippedRate()))

	if len(b.FailedFiles) > 0 {
		r.printLabel(14, "Files Failed:", r.red.Sprintf("%d (%.1f%%)", len(b.FailedFiles), b.FailedRate()))
		fmt.Printf("  %s\n", r.red.Sprint("Failed Files:"))
		for _, f := range b.FailedFiles {
			fmt.Printf("    %s - %s\n", r.red.Sprint(f.Path), f.Reason)
		}
	}

	if len(b.FixedFiles) > 0 {
		fmt.Printf("  %s\n", r.green.Sprint("Fixed Files:"))
		shown := b.FixedFiles
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, path := range shown {
			fmt.Printf("    %s\n", r.green.Sprint(path))
		}
		if len(b.FixedFiles) > 5 {
			fmt.Printf("    ... and %d more\n", len(b.FixedFiles)-5)
		}
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
