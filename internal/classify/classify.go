// Package classify infers the content type of a video asset so that
// remediation can pick encoder settings suited to the material.
package classify

import (
	"strings"

	"github.com/mattvenn/vidcomply/internal/ffprobe"
	"github.com/mattvenn/vidcomply/internal/util"
)

// ContentType is the inferred production style of an asset.
type ContentType int

const (
	ScreenCapture ContentType = iota
	LiveAction
	Animation
	Presentation
	Unknown
)

// String returns a string representation of the content type.
func (c ContentType) String() string {
	switch c {
	case ScreenCapture:
		return "Screen Capture"
	case LiveAction:
		return "Live Action"
	case Animation:
		return "Animation"
	case Presentation:
		return "Presentation"
	default:
		return "Unknown"
	}
}

// Detect classifies an asset from its filename and probed metadata.
// Filename hints take precedence over frame rate, which takes precedence
// over resolution. Assets nothing matches default to ScreenCapture.
func Detect(meta *ffprobe.VideoMetadata, inputPath string) ContentType {
	filename := strings.ToLower(util.GetFilename(inputPath))

	switch {
	case containsAny(filename, "screen", "capture", "recording"):
		return ScreenCapture
	case containsAny(filename, "presentation", "slide", "demo"):
		return Presentation
	case containsAny(filename, "cartoon", "animated", "anime"):
		return Animation
	}

	// High frame rate usually means camera footage, very low frame rate
	// means screen capture or slides.
	if meta.FPS > 50.0 {
		return LiveAction
	}
	if meta.FPS < 20.0 {
		return ScreenCapture
	}

	if strings.Contains(meta.Resolution, "1920x1080") && meta.FPS >= 24.0 && meta.FPS <= 30.0 {
		return LiveAction
	}

	return ScreenCapture
}

// OptimalBitrate returns the target bitrate in kbps for the given content
// type at the given resolution.
func OptimalBitrate(contentType ContentType, resolution string) uint32 {
	is1080 := strings.Contains(resolution, "1920x1080")
	is720 := strings.Contains(resolution, "1280x720")

	switch contentType {
	case ScreenCapture, Presentation:
		switch {
		case is1080:
			return 6000
		case is720:
			return 4000
		default:
			return 3000
		}
	case LiveAction:
		switch {
		case is1080:
			return 12000
		case is720:
			return 8000
		default:
			return 5000
		}
	case Animation:
		switch {
		case is1080:
			return 8000
		case is720:
			return 6000
		default:
			return 4000
		}
	default:
		switch {
		case is1080:
			return 8000
		case is720:
			return 6000
		default:
			return 4000
		}
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
