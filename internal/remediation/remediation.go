// Package remediation turns a non-compliant analysis into an ordered set of
// transcode directives that bring the asset back within the delivery
// standards.
package remediation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattvenn/vidcomply/internal/classify"
	"github.com/mattvenn/vidcomply/internal/compliance"
	"github.com/mattvenn/vidcomply/internal/util"
)

// NamingPolicy controls how output filenames are derived from inputs.
type NamingPolicy int

const (
	// NamePreserve keeps the input filename unchanged.
	NamePreserve NamingPolicy = iota
	// NameSuffix appends ".compliant" plus per-fix markers before the
	// extension, so a remediated file never collides with its source in
	// the same directory.
	NameSuffix
)

// ParseNamingPolicy maps a flag value to a NamingPolicy.
func ParseNamingPolicy(s string) (NamingPolicy, error) {
	switch strings.ToLower(s) {
	case "preserve", "":
		return NamePreserve, nil
	case "suffix":
		return NameSuffix, nil
	default:
		return NamePreserve, fmt.Errorf("unknown naming policy %q (want preserve or suffix)", s)
	}
}

// Plan is an ordered set of ffmpeg directives for one asset.
type Plan struct {
	InputPath   string
	OutputPath  string
	ContentType classify.ContentType
	UseHWDecode bool
	VideoArgs   []string
	AudioArgs   []string
}

// VideoCopy reports whether the plan leaves the video stream untouched.
func (p *Plan) VideoCopy() bool {
	return len(p.VideoArgs) == 2 && p.VideoArgs[0] == "-c:v" && p.VideoArgs[1] == "copy"
}

// Args assembles the complete ffmpeg argument list. Decode acceleration
// comes before the input, stream directives after, and the faststart flag
// keeps the moov atom at the front of the output.
func (p *Plan) Args() []string {
	var args []string
	if p.UseHWDecode {
		args = append(args, "-hwaccel", "cuda")
	}
	args = append(args, "-i", p.InputPath)
	args = append(args, p.VideoArgs...)
	args = append(args, p.AudioArgs...)
	args = append(args, "-movflags", "+faststart", "-y", p.OutputPath)
	return args
}

// Planner builds remediation plans with a fixed naming policy.
type Planner struct {
	naming NamingPolicy
}

// NewPlanner creates a planner using the given naming policy.
func NewPlanner(naming NamingPolicy) *Planner {
	return &Planner{naming: naming}
}

// BuildPlan derives the transcode directives for one asset from its
// compliance result and detected content type. Streams with no violations
// in their dimensions are copied, never re-encoded.
func (p *Planner) BuildPlan(result *compliance.Result, contentType classify.ContentType, inputPath, outputDir string) *Plan {
	plan := &Plan{
		InputPath:   inputPath,
		ContentType: contentType,
		UseHWDecode: useHWDecode(result),
		VideoArgs:   videoArgs(result, contentType),
		AudioArgs:   audioArgs(result),
	}
	plan.OutputPath = filepath.Join(outputDir, p.outputName(inputPath, result))
	return plan
}

// outputName applies the naming policy to the input filename.
func (p *Planner) outputName(inputPath string, result *compliance.Result) string {
	if p.naming == NamePreserve {
		return util.GetFilename(inputPath)
	}

	stem := util.GetFileStem(inputPath)
	ext := util.GetFileExtension(inputPath)
	if ext == "" {
		ext = "mp4"
	}

	suffix := ".compliant"
	if result.HasCategory(compliance.CategoryResolution) {
		suffix += ".scaled"
	}
	if result.HasCategory(compliance.CategoryVideoCodec) {
		suffix += ".h264"
	}
	if result.HasCategory(compliance.CategoryAudio) || result.HasCategory(compliance.CategoryAudioCodec) {
		suffix += ".aac"
	}
	if result.HasCategory(compliance.CategoryColorSpace) || result.HasCategory(compliance.CategoryHDR) {
		suffix += ".rec709"
	}

	return stem + suffix + "." + ext
}

// useHWDecode decides whether decode acceleration is worth requesting.
func useHWDecode(result *compliance.Result) bool {
	if len(result.Violations) > 2 {
		return true
	}
	return result.HasCategory(compliance.CategoryResolution) ||
		result.HasCategory(compliance.CategoryColorSpace) ||
		result.HasCategory(compliance.CategoryHDR)
}

// videoArgs builds the video stream directives. The encoder preset and
// quality target are tuned per content type.
func videoArgs(result *compliance.Result, contentType classify.ContentType) []string {
	needsVideoFix := result.HasCategory(compliance.CategoryVideoCodec) ||
		result.HasCategory(compliance.CategoryResolution) ||
		result.HasCategory(compliance.CategoryColorSpace) ||
		result.HasCategory(compliance.CategoryHDR)
	if !needsVideoFix {
		return []string{"-c:v", "copy"}
	}

	args := []string{
		"-c:v", "h264_nvenc",
		"-profile:v", "high",
		"-pix_fmt", "yuv420p",
	}

	switch contentType {
	case classify.ScreenCapture, classify.Presentation:
		// Sharpness and detail over motion smoothness.
		args = append(args,
			"-preset", "p7",
			"-cq", "15",
			"-temporal-aq", "1",
			"-rc-lookahead", "32",
		)
	case classify.LiveAction:
		args = append(args,
			"-preset", "p5",
			"-cq", "18",
			"-spatial-aq", "1",
			"-temporal-aq", "1",
		)
	case classify.Animation:
		// Flat colors and hard edges favor temporal AQ.
		args = append(args,
			"-preset", "p6",
			"-cq", "16",
			"-aq-mode", "3",
		)
	default:
		args = append(args,
			"-preset", "p6",
			"-cq", "18",
		)
	}

	if result.HasCategory(compliance.CategoryResolution) {
		args = append(args, "-vf", "scale="+targetResolution(result))
	}

	if result.HasCategory(compliance.CategoryColorSpace) || result.HasCategory(compliance.CategoryHDR) {
		args = append(args,
			"-colorspace", "bt709",
			"-color_primaries", "bt709",
			"-color_trc", "bt709",
		)
	}

	return args
}

// audioArgs builds the audio stream directives. Remediated audio is 24-bit
// PCM at 48 kHz stereo for editorial compatibility.
func audioArgs(result *compliance.Result) []string {
	needsAudioFix := result.HasCategory(compliance.CategoryAudio) ||
		result.HasCategory(compliance.CategoryAudioCodec)
	if !needsAudioFix {
		return []string{"-c:a", "copy"}
	}
	return []string{
		"-c:a", "pcm_s24le",
		"-ar", "48000",
		"-ac", "2",
	}
}

// targetResolution picks a scale target from the resolution violation's
// expected value, falling back to 1080p.
func targetResolution(result *compliance.Result) string {
	for _, v := range result.Violations {
		if v.Category != compliance.CategoryResolution {
			continue
		}
		if strings.Contains(v.ExpectedValue, "1920x1080") {
			return "1920:1080"
		}
		if strings.Contains(v.ExpectedValue, "1280x720") {
			return "1280:720"
		}
	}
	return "1920:1080"
}

// HWDecoder maps a source codec to its CUDA decoder, or "" when no
// hardware decoder exists for the codec.
func HWDecoder(codec string) string {
	switch codec {
	case "h264":
		return "h264_cuvid"
	case "hevc":
		return "hevc_cuvid"
	case "av1":
		return "av1_cuvid"
	case "vp8":
		return "vp8_cuvid"
	case "vp9":
		return "vp9_cuvid"
	default:
		return ""
	}
}
