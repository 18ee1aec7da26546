package remediation

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mattvenn/vidcomply/internal/classify"
	"github.com/mattvenn/vidcomply/internal/compliance"
)

func violation(cat compliance.Category, sev compliance.Severity) compliance.Violation {
	return compliance.Violation{
		Severity:      sev,
		Category:      cat,
		ExpectedValue: "Preferred: 1280x720, 1920x1080",
	}
}

func TestBuildPlanStreamCopyWhenNoViolations(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{IsCompliant: true, Score: 100}

	plan := planner.BuildPlan(result, classify.LiveAction, "/in/clip.mp4", "/out")

	if !plan.VideoCopy() {
		t.Errorf("expected video stream copy, got %v", plan.VideoArgs)
	}
	if !reflect.DeepEqual(plan.AudioArgs, []string{"-c:a", "copy"}) {
		t.Errorf("expected audio stream copy, got %v", plan.AudioArgs)
	}
	if plan.UseHWDecode {
		t.Error("no violations should not request hardware decode")
	}
}

func TestBuildPlanVideoFixPerContentType(t *testing.T) {
	tests := []struct {
		contentType classify.ContentType
		wantArgs    []string
	}{
		{classify.ScreenCapture, []string{"-preset", "p7", "-cq", "15", "-temporal-aq", "1", "-rc-lookahead", "32"}},
		{classify.Presentation, []string{"-preset", "p7", "-cq", "15"}},
		{classify.LiveAction, []string{"-preset", "p5", "-cq", "18", "-spatial-aq", "1", "-temporal-aq", "1"}},
		{classify.Animation, []string{"-preset", "p6", "-cq", "16", "-aq-mode", "3"}},
		{classify.Unknown, []string{"-preset", "p6", "-cq", "18"}},
	}

	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryVideoCodec, compliance.SeverityCritical)},
	}

	for _, tt := range tests {
		plan := planner.BuildPlan(result, tt.contentType, "/in/clip.mp4", "/out")
		joined := strings.Join(plan.VideoArgs, " ")
		want := strings.Join(tt.wantArgs, " ")
		if !strings.Contains(joined, want) {
			t.Errorf("%v: video args %q missing %q", tt.contentType, joined, want)
		}
		if !strings.Contains(joined, "-c:v h264_nvenc") {
			t.Errorf("%v: expected h264_nvenc encoder, got %q", tt.contentType, joined)
		}
	}
}

func TestBuildPlanResolutionScaling(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryResolution, compliance.SeverityCritical)},
	}

	plan := planner.BuildPlan(result, classify.Unknown, "/in/clip.mp4", "/out")

	joined := strings.Join(plan.VideoArgs, " ")
	if !strings.Contains(joined, "-vf scale=1920:1080") {
		t.Errorf("expected scale filter, got %q", joined)
	}
	if !plan.UseHWDecode {
		t.Error("resolution violation should request hardware decode")
	}
}

func TestBuildPlanColorNormalization(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryHDR, compliance.SeverityCritical)},
	}

	plan := planner.BuildPlan(result, classify.LiveAction, "/in/clip.mp4", "/out")

	joined := strings.Join(plan.VideoArgs, " ")
	for _, flag := range []string{"-colorspace bt709", "-color_primaries bt709", "-color_trc bt709"} {
		if !strings.Contains(joined, flag) {
			t.Errorf("expected %q in video args %q", flag, joined)
		}
	}
	if !plan.UseHWDecode {
		t.Error("HDR violation should request hardware decode")
	}
}

func TestBuildPlanAudioFix(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryAudioCodec, compliance.SeverityWarning)},
	}

	plan := planner.BuildPlan(result, classify.LiveAction, "/in/clip.mp4", "/out")

	want := []string{"-c:a", "pcm_s24le", "-ar", "48000", "-ac", "2"}
	if !reflect.DeepEqual(plan.AudioArgs, want) {
		t.Errorf("audio args = %v, want %v", plan.AudioArgs, want)
	}
	if !plan.VideoCopy() {
		t.Errorf("audio-only violation must not re-encode video, got %v", plan.VideoArgs)
	}
	if plan.UseHWDecode {
		t.Error("single audio violation should not request hardware decode")
	}
}

func TestBuildPlanHWDecodeOnManyViolations(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{
			violation(compliance.CategoryVideoCodec, compliance.SeverityCritical),
			violation(compliance.CategoryContainer, compliance.SeverityCritical),
			violation(compliance.CategoryAudioCodec, compliance.SeverityWarning),
		},
	}

	plan := planner.BuildPlan(result, classify.LiveAction, "/in/clip.mkv", "/out")
	if !plan.UseHWDecode {
		t.Error("more than two violations should request hardware decode")
	}
}

func TestOutputNamingPreserve(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryVideoCodec, compliance.SeverityCritical)},
	}

	plan := planner.BuildPlan(result, classify.Unknown, "/in/clip.mp4", "/out/H264")
	if plan.OutputPath != filepath.Join("/out/H264", "clip.mp4") {
		t.Errorf("unexpected output path %q", plan.OutputPath)
	}
}

func TestOutputNamingSuffix(t *testing.T) {
	planner := NewPlanner(NameSuffix)
	result := &compliance.Result{
		Violations: []compliance.Violation{
			violation(compliance.CategoryResolution, compliance.SeverityCritical),
			violation(compliance.CategoryVideoCodec, compliance.SeverityCritical),
			violation(compliance.CategoryAudioCodec, compliance.SeverityWarning),
			violation(compliance.CategoryHDR, compliance.SeverityCritical),
		},
	}

	plan := planner.BuildPlan(result, classify.Unknown, "/in/clip.mp4", "/out")
	want := filepath.Join("/out", "clip.compliant.scaled.h264.aac.rec709.mp4")
	if plan.OutputPath != want {
		t.Errorf("output path = %q, want %q", plan.OutputPath, want)
	}
}

func TestArgsAssembly(t *testing.T) {
	planner := NewPlanner(NamePreserve)
	result := &compliance.Result{
		Violations: []compliance.Violation{violation(compliance.CategoryResolution, compliance.SeverityCritical)},
	}

	plan := planner.BuildPlan(result, classify.ScreenCapture, "/in/clip.mp4", "/out")
	args := plan.Args()

	if args[0] != "-hwaccel" || args[1] != "cuda" {
		t.Errorf("expected decode acceleration before input, got %v", args[:2])
	}
	if args[2] != "-i" || args[3] != "/in/clip.mp4" {
		t.Errorf("expected input after acceleration, got %v", args[2:4])
	}
	last := args[len(args)-1]
	if last != plan.OutputPath {
		t.Errorf("expected output path last, got %q", last)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-movflags +faststart") {
		t.Errorf("expected faststart flag, got %q", joined)
	}
	if !strings.Contains(joined, "-y") {
		t.Errorf("expected overwrite flag, got %q", joined)
	}
}

func TestParseNamingPolicy(t *testing.T) {
	if p, err := ParseNamingPolicy("preserve"); err != nil || p != NamePreserve {
		t.Errorf("ParseNamingPolicy(preserve) = %v, %v", p, err)
	}
	if p, err := ParseNamingPolicy("suffix"); err != nil || p != NameSuffix {
		t.Errorf("ParseNamingPolicy(suffix) = %v, %v", p, err)
	}
	if _, err := ParseNamingPolicy("timestamped"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestHWDecoder(t *testing.T) {
	tests := []struct {
		codec string
		want  string
	}{
		{"h264", "h264_cuvid"},
		{"hevc", "hevc_cuvid"},
		{"av1", "av1_cuvid"},
		{"vp8", "vp8_cuvid"},
		{"vp9", "vp9_cuvid"},
		{"mpeg4", ""},
	}
	for _, tt := range tests {
		if got := HWDecoder(tt.codec); got != tt.want {
			t.Errorf("HWDecoder(%q) = %q, want %q", tt.codec, got, tt.want)
		}
	}
}
