package compliance

import (
	"testing"

	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/standards"
)

func testEngine() *Engine {
	return NewEngine(standards.Default())
}

func compliantMeta() *ffprobe.VideoMetadata {
	return &ffprobe.VideoMetadata{
		Codec:           "h264",
		Resolution:      "1920x1080",
		Duration:        120.0,
		Bitrate:         8_000_000,
		Size:            120_000_000,
		FPS:             30.0,
		AudioCodec:      "pcm",
		AudioSampleRate: 48000,
		Container:       "mp4",
		Profile:         "high",
		ColorSpace:      "bt709",
	}
}

func TestAnalyzeCompliantAsset(t *testing.T) {
	result := testEngine().Analyze(compliantMeta())

	if !result.IsCompliant {
		t.Errorf("expected asset to be compliant, violations: %+v", result.Violations)
	}
	if result.Score != 100 {
		t.Errorf("expected score 100, got %d", result.Score)
	}
	if len(result.Violations) != 0 {
		t.Errorf("expected no violations, got %d", len(result.Violations))
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", result.Recommendations)
	}
}

func TestAnalyzeAcceptableAudioIsStillCompliant(t *testing.T) {
	meta := compliantMeta()
	meta.AudioCodec = "aac"

	result := testEngine().Analyze(meta)

	if !result.IsCompliant {
		t.Error("asset with only an Info violation should remain compliant")
	}
	if result.Score != 95 {
		t.Errorf("expected score 95, got %d", result.Score)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result.Violations))
	}
	v := result.Violations[0]
	if v.Severity != SeverityInfo || v.Category != CategoryAudioCodec {
		t.Errorf("unexpected violation: %+v", v)
	}
}

func TestAnalyzeAcceptableResolution(t *testing.T) {
	meta := compliantMeta()
	meta.Resolution = "1600x900"

	result := testEngine().Analyze(meta)

	if result.IsCompliant {
		t.Error("Warning violation should make asset non-compliant")
	}
	if result.Score != 90 {
		t.Errorf("expected score 90, got %d", result.Score)
	}
	if !result.HasCategory(CategoryResolution) {
		t.Error("expected a Resolution violation")
	}
	if result.Violations[0].Severity != SeverityWarning {
		t.Errorf("expected Warning severity, got %v", result.Violations[0].Severity)
	}
}

func TestAnalyzeNonCompliantCombination(t *testing.T) {
	meta := compliantMeta()
	meta.Codec = "mpeg4"
	meta.Container = "mkv"
	meta.ColorSpace = "bt2020"

	result := testEngine().Analyze(meta)

	if result.IsCompliant {
		t.Error("expected non-compliant result")
	}
	// 100 - 20 (codec) - 15 (container) - 25 (color space)
	if result.Score != 40 {
		t.Errorf("expected score 40, got %d", result.Score)
	}
	if len(result.Violations) != 3 {
		t.Errorf("expected 3 violations, got %d: %+v", len(result.Violations), result.Violations)
	}
	for _, cat := range []Category{CategoryVideoCodec, CategoryContainer, CategoryHDR} {
		if !result.HasCategory(cat) {
			t.Errorf("expected a %v violation", cat)
		}
	}
}

func TestAnalyzeScoreFloorsAtZero(t *testing.T) {
	meta := compliantMeta()
	meta.Codec = "mpeg2video"
	meta.Resolution = "720x480"
	meta.Container = "mkv"
	meta.AudioCodec = "mp3"
	meta.ColorSpace = "smpte2084 hdr10"

	result := testEngine().Analyze(meta)

	// Deductions total 105; the score must clamp rather than wrap.
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if result.IsCompliant {
		t.Error("expected non-compliant result")
	}
}

func TestAnalyzeHDRShortCircuitsColorSpaceCheck(t *testing.T) {
	meta := compliantMeta()
	// Matches both an HDR restriction ("hdr10") and an unsupported color
	// space ("bt2020"); only the HDR violation may be emitted.
	meta.ColorSpace = "bt2020 hdr10"

	result := testEngine().Analyze(meta)

	if result.Score != 70 {
		t.Errorf("expected score 70 (single -30 deduction), got %d", result.Score)
	}
	hdrCount := 0
	for _, v := range result.Violations {
		if v.Category == CategoryHDR {
			hdrCount++
		}
	}
	if hdrCount != 1 {
		t.Errorf("expected exactly 1 HDR violation, got %d", hdrCount)
	}
	if result.Violations[0].Description != "HDR content not supported by delivery pipeline" {
		t.Errorf("expected HDR restriction violation, got %q", result.Violations[0].Description)
	}
}

func TestAnalyzeUnsupportedResolution(t *testing.T) {
	meta := compliantMeta()
	meta.Resolution = "3840x2160"

	result := testEngine().Analyze(meta)

	if result.Score != 75 {
		t.Errorf("expected score 75, got %d", result.Score)
	}
	if result.Violations[0].Severity != SeverityCritical {
		t.Errorf("expected Critical severity, got %v", result.Violations[0].Severity)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("expected a resize recommendation, got %v", result.Recommendations)
	}
}

func TestSeverityBlocking(t *testing.T) {
	if !SeverityCritical.Blocking() {
		t.Error("Critical must block")
	}
	if !SeverityWarning.Blocking() {
		t.Error("Warning must block")
	}
	if SeverityInfo.Blocking() {
		t.Error("Info must not block")
	}
}
