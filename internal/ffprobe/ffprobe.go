// Package ffprobe extracts technical metadata from media files using ffprobe.
package ffprobe

import (
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/util"
)

// VideoMetadata contains the probed technical facts about one asset.
// It is a read-only input to the compliance engine and classifier.
type VideoMetadata struct {
	Codec           string
	Resolution      string // "WxH"
	Duration        float64
	Bitrate         uint64
	Size            uint64
	FPS             float64
	AudioCodec      string
	AudioSampleRate uint32
	AudioBitrate    uint64
	Container       string
	Profile         string
	ColorSpace      string
}

// probeOutput mirrors the JSON emitted by ffprobe.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
	Size     string `json:"size"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Profile    string `json:"profile"`
	Width      uint64 `json:"width"`
	Height     uint64 `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	ColorSpace string `json:"color_space"`
	SampleRate string `json:"sample_rate"`
	BitRate    string `json:"bit_rate"`
}

// Probe runs ffprobe against the given path and returns parsed metadata.
// Numeric fields arrive as strings and are parsed defensively; absent or
// unparseable values default to 0 or "unknown" rather than failing.
func Probe(inputPath string) (*VideoMetadata, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		return nil, errors.WrapExecError("ffprobe", err, stderr)
	}

	return ParseMetadata(output, inputPath)
}

// ParseMetadata parses raw ffprobe JSON output into VideoMetadata.
// The container is derived from the file extension, not the probe.
func ParseMetadata(raw []byte, inputPath string) (*VideoMetadata, error) {
	var probe probeOutput
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.NewProbeParseError("failed to parse ffprobe output", err)
	}

	var videoStream *probeStream
	var audioStream *probeStream
	for i := range probe.Streams {
		switch probe.Streams[i].CodecType {
		case "video":
			if videoStream == nil {
				videoStream = &probe.Streams[i]
			}
		case "audio":
			if audioStream == nil {
				audioStream = &probe.Streams[i]
			}
		}
	}

	if videoStream == nil {
		return nil, errors.NewProbeParseError("no video stream found in "+inputPath, nil)
	}

	meta := &VideoMetadata{
		Codec:      stringOr(videoStream.CodecName, "unknown"),
		Resolution: strconv.FormatUint(videoStream.Width, 10) + "x" + strconv.FormatUint(videoStream.Height, 10),
		Duration:   parseFloat(probe.Format.Duration),
		Bitrate:    parseUint(probe.Format.BitRate),
		Size:       parseUint(probe.Format.Size),
		FPS:        parseFrameRate(videoStream.RFrameRate),
		Container:  containerFromPath(inputPath),
		Profile:    strings.ToLower(stringOr(videoStream.Profile, "unknown")),
		ColorSpace: strings.ToLower(stringOr(videoStream.ColorSpace, "unknown")),
	}

	if audioStream != nil {
		meta.AudioCodec = stringOr(audioStream.CodecName, "none")
		meta.AudioSampleRate = uint32(parseUint(audioStream.SampleRate))
		meta.AudioBitrate = parseUint(audioStream.BitRate)
	} else {
		meta.AudioCodec = "none"
	}

	return meta, nil
}

// parseFrameRate parses the ffprobe "num/den" rational frame rate.
// A zero denominator or unparseable value yields 0.
func parseFrameRate(s string) float64 {
	if s == "" {
		return 0
	}

	parts := strings.Split(s, "/")
	if len(parts) == 2 {
		num, errN := strconv.ParseFloat(parts[0], 64)
		den, errD := strconv.ParseFloat(parts[1], 64)
		if errN != nil || errD != nil || den == 0 {
			return 0
		}
		return num / den
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseUint(s string) uint64 {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return u
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func containerFromPath(path string) string {
	ext := util.GetFileExtension(path)
	if ext == "" {
		return "unknown"
	}
	return ext
}
