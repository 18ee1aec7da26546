// Package compliance evaluates probed video metadata against a delivery
// standards catalog and produces a scored compliance result.
package compliance

import (
	"fmt"
	"strings"

	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/standards"
)

// Severity ranks how serious a violation is.
type Severity int

const (
	// SeverityCritical blocks delivery.
	SeverityCritical Severity = iota
	// SeverityWarning should be fixed but does not block delivery on its own.
	SeverityWarning
	// SeverityInfo is advisory only.
	SeverityInfo
)

// String returns a string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Blocking reports whether a violation of this severity prevents the asset
// from being considered compliant.
func (s Severity) Blocking() bool {
	return s != SeverityInfo
}

// Category identifies which rule dimension a violation belongs to.
type Category int

const (
	CategoryVideoCodec Category = iota
	CategoryAudioCodec
	CategoryResolution
	CategoryFrameRate
	CategoryBitrate
	CategoryContainer
	CategoryColorSpace
	CategoryHDR
	CategoryProfile
	CategoryAudio
)

// String returns a string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryVideoCodec:
		return "VideoCodec"
	case CategoryAudioCodec:
		return "AudioCodec"
	case CategoryResolution:
		return "Resolution"
	case CategoryFrameRate:
		return "FrameRate"
	case CategoryBitrate:
		return "Bitrate"
	case CategoryContainer:
		return "Container"
	case CategoryColorSpace:
		return "ColorSpace"
	case CategoryHDR:
		return "HDR"
	case CategoryProfile:
		return "Profile"
	case CategoryAudio:
		return "Audio"
	default:
		return "Unknown"
	}
}

// Violation describes one failed check against the standards catalog.
type Violation struct {
	Severity      Severity
	Category      Category
	Description   string
	CurrentValue  string
	ExpectedValue string
}

// Result is the outcome of analyzing a single asset.
type Result struct {
	IsCompliant     bool
	Score           uint8
	Violations      []Violation
	Recommendations []string
}

// HasCategory reports whether any violation belongs to the given category.
func (r *Result) HasCategory(cat Category) bool {
	for _, v := range r.Violations {
		if v.Category == cat {
			return true
		}
	}
	return false
}

// Engine applies the catalog rules to probed metadata.
type Engine struct {
	catalog *standards.Catalog
}

// NewEngine creates an engine bound to the given catalog.
func NewEngine(catalog *standards.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Analyze checks metadata against every rule dimension in a fixed order and
// returns the scored result. The score starts at 100 and each violation
// subtracts a fixed deduction, clamping at zero. An asset is compliant only
// when every violation is informational.
func (e *Engine) Analyze(meta *ffprobe.VideoMetadata) *Result {
	var violations []Violation
	var recommendations []string
	score := uint8(100)

	c := e.catalog

	if !standards.Contains(c.Video.PreferredCodecs, meta.Codec) {
		violations = append(violations, Violation{
			Severity:      SeverityCritical,
			Category:      CategoryVideoCodec,
			Description:   "Video codec not in preferred list",
			CurrentValue:  meta.Codec,
			ExpectedValue: strings.Join(c.Video.PreferredCodecs, ", "),
		})
		score = deduct(score, 20)
		recommendations = append(recommendations, "Convert to H.264 codec for optimal compatibility")
	}

	preferredRes := standards.Contains(c.Video.PreferredResolutions, meta.Resolution)
	acceptableRes := standards.Contains(c.Video.AcceptableResolutions, meta.Resolution)
	if !preferredRes && !acceptableRes {
		violations = append(violations, Violation{
			Severity:      SeverityCritical,
			Category:      CategoryResolution,
			Description:   "Resolution not supported",
			CurrentValue:  meta.Resolution,
			ExpectedValue: fmt.Sprintf("Preferred: %s", strings.Join(c.Video.PreferredResolutions, ", ")),
		})
		score = deduct(score, 25)
		recommendations = append(recommendations, "Resize to 1920x1080 or 1280x720 for standard content")
	} else if !preferredRes {
		violations = append(violations, Violation{
			Severity:      SeverityWarning,
			Category:      CategoryResolution,
			Description:   "Resolution acceptable but not preferred",
			CurrentValue:  meta.Resolution,
			ExpectedValue: fmt.Sprintf("Preferred: %s", strings.Join(c.Video.PreferredResolutions, ", ")),
		})
		score = deduct(score, 10)
	}

	if standards.Contains(c.Video.UnsupportedContainers, strings.ToLower(meta.Container)) {
		violations = append(violations, Violation{
			Severity:      SeverityCritical,
			Category:      CategoryContainer,
			Description:   "Container format not supported",
			CurrentValue:  meta.Container,
			ExpectedValue: strings.Join(c.Video.Containers, ", "),
		})
		score = deduct(score, 15)
		recommendations = append(recommendations, "Convert to MP4 or MOV container")
	}

	preferredAudio := standards.Contains(c.Audio.PreferredCodecs, meta.AudioCodec)
	acceptableAudio := standards.Contains(c.Audio.AcceptableCodecs, meta.AudioCodec)
	if !preferredAudio && !acceptableAudio {
		violations = append(violations, Violation{
			Severity:    SeverityWarning,
			Category:    CategoryAudioCodec,
			Description: "Audio codec not in preferred or acceptable list",
			CurrentValue: meta.AudioCodec,
			ExpectedValue: fmt.Sprintf("Preferred: %s | Acceptable: %s",
				strings.Join(c.Audio.PreferredCodecs, ", "),
				strings.Join(c.Audio.AcceptableCodecs, ", ")),
		})
		score = deduct(score, 15)
		recommendations = append(recommendations, "Convert audio to PCM or ALAC for highest quality")
	} else if acceptableAudio {
		violations = append(violations, Violation{
			Severity:      SeverityInfo,
			Category:      CategoryAudioCodec,
			Description:   "Audio codec is acceptable but not preferred",
			CurrentValue:  meta.AudioCodec,
			ExpectedValue: fmt.Sprintf("Preferred: %s", strings.Join(c.Audio.PreferredCodecs, ", ")),
		})
		score = deduct(score, 5)
	}

	// HDR restrictions win over the generic color space list. A color space
	// matching both yields exactly one violation.
	colorSpace := strings.ToLower(meta.ColorSpace)
	hdrViolation := false
	for _, restricted := range c.Quality.HDRRestrictions {
		if strings.Contains(colorSpace, strings.ToLower(restricted)) {
			violations = append(violations, Violation{
				Severity:      SeverityCritical,
				Category:      CategoryHDR,
				Description:   "HDR content not supported by delivery pipeline",
				CurrentValue:  meta.ColorSpace,
				ExpectedValue: "Rec. 709 (SDR)",
			})
			score = deduct(score, 30)
			recommendations = append(recommendations, "Convert to SDR (Rec. 709) color space")
			hdrViolation = true
			break
		}
	}
	if !hdrViolation {
		for _, unsupported := range c.Quality.UnsupportedColorSpaces {
			if strings.Contains(colorSpace, strings.ToLower(unsupported)) {
				violations = append(violations, Violation{
					Severity:      SeverityCritical,
					Category:      CategoryHDR,
					Description:   "Color space not supported by delivery pipeline",
					CurrentValue:  meta.ColorSpace,
					ExpectedValue: "Rec. 709 (SDR)",
				})
				score = deduct(score, 25)
				recommendations = append(recommendations, "Convert to SDR (Rec. 709) color space")
				break
			}
		}
	}

	isCompliant := true
	for _, v := range violations {
		if v.Severity.Blocking() {
			isCompliant = false
			break
		}
	}

	return &Result{
		IsCompliant:     isCompliant,
		Score:           score,
		Violations:      violations,
		Recommendations: recommendations,
	}
}

// deduct subtracts amount from score without going below zero.
func deduct(score, amount uint8) uint8 {
	if amount > score {
		return 0
	}
	return score - amount
}
