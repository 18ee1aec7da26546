// Package reporter renders analysis progress and results for people.
package reporter

// Reporter defines the interface for progress and result reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	ScanStarted(info ScanInfo)
	FileInfo(info FileInfo)
	ComplianceReport(report ComplianceReport)
	RemediationStarted(info RemediationInfo)
	TranscodeProgress(progress TranscodeProgress)
	RemediationComplete(outcome RemediationOutcome)
	FileSkipped(filename string)
	ComplianceSummary(summary SummaryView)
	BatchReport(summary SummaryView)
	Warning(message string)
	Error(err ReporterError)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)               {}
func (NullReporter) ScanStarted(ScanInfo)                   {}
func (NullReporter) FileInfo(FileInfo)                      {}
func (NullReporter) ComplianceReport(ComplianceReport)      {}
func (NullReporter) RemediationStarted(RemediationInfo)     {}
func (NullReporter) TranscodeProgress(TranscodeProgress)    {}
func (NullReporter) RemediationComplete(RemediationOutcome) {}
func (NullReporter) FileSkipped(string)                     {}
func (NullReporter) ComplianceSummary(SummaryView)          {}
func (NullReporter) BatchReport(SummaryView)                {}
func (NullReporter) Warning(string)                         {}
func (NullReporter) Error(ReporterError)                    {}
func (NullReporter) Verbose(string)                         {}
