// Package standards defines the declarative delivery-standards catalog.
//
// A Catalog is built once at startup, either from the built-in defaults or
// from a TOML file, and is never mutated afterward. Concurrent analyses may
// share a single Catalog without synchronization.
package standards

import (
	"github.com/BurntSushi/toml"

	"github.com/mattvenn/vidcomply/internal/errors"
)

// Catalog is the top-level delivery policy shared by all analyses.
type Catalog struct {
	Video   VideoStandards   `toml:"video"`
	Audio   AudioStandards   `toml:"audio"`
	Quality QualityStandards `toml:"quality"`
}

// VideoStandards holds video-dimension rules.
type VideoStandards struct {
	PreferredResolutions  []string             `toml:"preferred_resolutions"`
	AcceptableResolutions []string             `toml:"acceptable_resolutions"`
	PreferredCodecs       []string             `toml:"preferred_codecs"`
	PreferredFrameRates   []float64            `toml:"preferred_frame_rates"`
	BitrateRanges         map[string]RateRange `toml:"bitrate_ranges"`
	Containers            []string             `toml:"containers"`
	UnsupportedContainers []string             `toml:"unsupported_containers"`
	Profiles              []string             `toml:"profiles"`
}

// AudioStandards holds audio-dimension rules.
type AudioStandards struct {
	PreferredCodecs  []string          `toml:"preferred_codecs"`
	AcceptableCodecs []string          `toml:"acceptable_codecs"`
	SampleRates      []uint32          `toml:"sample_rates"`
	BitDepths        []uint8           `toml:"bit_depths"`
	BitrateCapsKbps  map[string]uint32 `toml:"bitrate_caps_kbps"`
	Channels         []string          `toml:"channels"`
}

// QualityStandards holds color and keyframe rules.
type QualityStandards struct {
	ColorSpaces            []string `toml:"color_spaces"`
	UnsupportedColorSpaces []string `toml:"unsupported_color_spaces"`
	KeyframeIntervalMin    uint32   `toml:"keyframe_interval_min"`
	ChromaSubsampling      []string `toml:"chroma_subsampling"`
	HDRRestrictions        []string `toml:"hdr_restrictions"`
}

// RateRange is a per-content-type bitrate band in kbps.
type RateRange struct {
	MinKbps     uint32 `toml:"min_kbps"`
	MaxKbps     uint32 `toml:"max_kbps"`
	ContentType string `toml:"content_type"`
}

// Default returns the built-in delivery-standards catalog.
func Default() *Catalog {
	return &Catalog{
		Video: VideoStandards{
			PreferredResolutions: []string{
				"1280x720",
				"1920x1080",
				"720x1280",  // Vertical
				"1080x1920", // Vertical HD
			},
			AcceptableResolutions: []string{
				"1360x768",
				"1280x800",
				"1600x900",
				"1440x900",
				"1680x1048",
				"1440x810",
				"2160x3840", // Vertical 4K
			},
			PreferredCodecs:     []string{"h264", "libx264"},
			PreferredFrameRates: []float64{15.0, 23.976, 24.0, 25.0, 29.97, 30.0},
			BitrateRanges: map[string]RateRange{
				"screen_capture": {MinKbps: 6000, MaxKbps: 8000, ContentType: "Screen Capture"},
				"live_action":    {MinKbps: 8000, MaxKbps: 15000, ContentType: "Live Action"},
			},
			Containers:            []string{"mp4", "mov"},
			UnsupportedContainers: []string{"mkv"},
			Profiles:              []string{"main", "high"},
		},
		Audio: AudioStandards{
			PreferredCodecs:  []string{"pcm", "alac"},
			AcceptableCodecs: []string{"aac"},
			SampleRates:      []uint32{44100, 48000},
			BitDepths:        []uint8{16, 24},
			BitrateCapsKbps:  map[string]uint32{"aac": 320},
			Channels:         []string{"stereo", "2.0"},
		},
		Quality: QualityStandards{
			ColorSpaces:            []string{"rec709", "bt709"},
			UnsupportedColorSpaces: []string{"bt2020", "dci-p3", "rec2020"},
			KeyframeIntervalMin:    2,
			ChromaSubsampling:      []string{"4:2:0", "4:2:2"},
			HDRRestrictions:        []string{"hdr10", "hdr10+", "dolby_vision", "hlg"},
		},
	}
}

// Load reads a catalog from a TOML file and validates it. Per-tenant
// catalogs can coexist; nothing here touches global state.
func Load(path string) (*Catalog, error) {
	catalog := &Catalog{}
	if _, err := toml.DecodeFile(path, catalog); err != nil {
		return nil, errors.NewStandardsError("failed to load standards catalog from "+path, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate checks that the catalog can drive the compliance rules.
func (c *Catalog) Validate() error {
	if len(c.Video.PreferredCodecs) == 0 {
		return errors.NewStandardsError("catalog has no preferred video codecs", nil)
	}
	if len(c.Video.PreferredResolutions) == 0 {
		return errors.NewStandardsError("catalog has no preferred resolutions", nil)
	}
	if len(c.Audio.PreferredCodecs) == 0 {
		return errors.NewStandardsError("catalog has no preferred audio codecs", nil)
	}
	return nil
}

// PrimaryCodec returns the first preferred video codec.
func (c *Catalog) PrimaryCodec() string {
	return c.Video.PreferredCodecs[0]
}

// PrimaryAudioCodec returns the first preferred audio codec.
func (c *Catalog) PrimaryAudioCodec() string {
	return c.Audio.PreferredCodecs[0]
}

// PrimarySampleRate returns the highest preferred audio sample rate.
func (c *Catalog) PrimarySampleRate() uint32 {
	var best uint32
	for _, rate := range c.Audio.SampleRates {
		if rate > best {
			best = rate
		}
	}
	if best == 0 {
		best = 48000
	}
	return best
}

// Contains reports whether list holds the exact value.
func Contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
