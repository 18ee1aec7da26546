// Package ffmpeg runs transcode commands and verifies encoder hardware.
package ffmpeg

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/mattvenn/vidcomply/internal/errors"
	"github.com/mattvenn/vidcomply/internal/util"
)

// Progress carries the elapsed media time parsed from a transcode in
// flight, plus its fraction of the total duration when that is known.
type Progress struct {
	ElapsedSecs float64
	Percent     float64
}

// ProgressCallback receives progress updates during a transcode.
type ProgressCallback func(Progress)

// Run executes ffmpeg with the given arguments, streaming progress to the
// callback. duration is the input's length in seconds, used to compute the
// percentage; pass 0 when unknown. Cancellation through ctx kills the
// process and surfaces as a cancellation error.
func Run(ctx context.Context, args []string, duration float64, callback ProgressCallback) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.NewIOError("failed to get ffmpeg stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return errors.NewCommandStartError("ffmpeg", err)
	}

	var stderrBuilder strings.Builder
	scanProgress(stderr, &stderrBuilder, duration, callback)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.WrapExecError("ffmpeg", err, lastLines(stderrBuilder.String(), 10))
	}
	return nil
}

// scanProgress reads ffmpeg stderr byte-wise so carriage-return progress
// lines are seen as they arrive, capturing the full stream for error
// reporting.
func scanProgress(stderr io.Reader, stderrBuilder *strings.Builder, duration float64, callback ProgressCallback) {
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		stderrBuilder.WriteByte(b)

		if b != '\r' && b != '\n' {
			lineBuf.WriteByte(b)
			continue
		}

		line := lineBuf.String()
		lineBuf.Reset()

		if callback == nil {
			continue
		}
		if elapsed, ok := util.ExtractProgressTime(line); ok {
			p := Progress{ElapsedSecs: elapsed}
			if duration > 0 {
				p.Percent = elapsed / duration * 100.0
				if p.Percent > 100 {
					p.Percent = 100
				}
			}
			callback(p)
		}
	}
}

// lastLines returns the trailing n non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, strings.TrimRight(line, "\r"))
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}

// CheckHardware verifies that an NVIDIA GPU is present and that the local
// ffmpeg build carries the h264_nvenc encoder.
func CheckHardware(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "nvidia-smi").Run(); err != nil {
		return errors.NewHardwareError("NVIDIA GPU not detected")
	}

	out, err := exec.CommandContext(ctx, "ffmpeg", "-codecs").Output()
	if err != nil {
		return errors.WrapExecError("ffmpeg", err, "")
	}
	if !strings.Contains(string(out), "h264_nvenc") {
		return errors.NewHardwareError("h264_nvenc not available")
	}
	return nil
}
