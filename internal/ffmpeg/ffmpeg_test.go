package ffmpeg

import (
	"strings"
	"testing"
)

func TestScanProgress(t *testing.T) {
	stderr := strings.NewReader(
		"frame- junk header\n" +
			"frame=  100 fps= 50 q=20.0 size=1024kB time=00:00:10.00 bitrate=838.9kbits/s speed=2x\r" +
			"frame=  200 fps= 50 q=20.0 size=2048kB time=00:00:20.00 bitrate=838.9kbits/s speed=2x\r" +
			"done\n")

	var updates []Progress
	var captured strings.Builder
	scanProgress(stderr, &captured, 40.0, func(p Progress) {
		updates = append(updates, p)
	})

	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d", len(updates))
	}
	if updates[0].ElapsedSecs != 10 || updates[1].ElapsedSecs != 20 {
		t.Errorf("elapsed = %v, %v; want 10, 20", updates[0].ElapsedSecs, updates[1].ElapsedSecs)
	}
	if updates[1].Percent != 50 {
		t.Errorf("percent = %v, want 50", updates[1].Percent)
	}
	if !strings.Contains(captured.String(), "done") {
		t.Error("full stderr must be captured")
	}
}

func TestScanProgressUnknownDuration(t *testing.T) {
	stderr := strings.NewReader("time=00:00:05.00 speed=1x\n")

	var updates []Progress
	var captured strings.Builder
	scanProgress(stderr, &captured, 0, func(p Progress) {
		updates = append(updates, p)
	})

	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	if updates[0].Percent != 0 {
		t.Errorf("unknown duration must leave percent 0, got %v", updates[0].Percent)
	}
}

func TestScanProgressClampsPercent(t *testing.T) {
	stderr := strings.NewReader("time=00:01:00.00 speed=1x\n")

	var updates []Progress
	var captured strings.Builder
	scanProgress(stderr, &captured, 30.0, func(p Progress) {
		updates = append(updates, p)
	})

	if len(updates) != 1 || updates[0].Percent != 100 {
		t.Errorf("percent must clamp at 100, got %+v", updates)
	}
}

func TestScanProgressNilCallback(t *testing.T) {
	stderr := strings.NewReader("time=00:00:05.00\n")
	var captured strings.Builder
	scanProgress(stderr, &captured, 10, nil)
	if captured.Len() == 0 {
		t.Error("stderr must be captured even without a callback")
	}
}

func TestLastLines(t *testing.T) {
	input := "one\r\ntwo\r\n\r\nthree\r\nfour\r\n"
	got := lastLines(input, 3)
	want := "two\nthree\nfour"
	if got != want {
		t.Errorf("lastLines = %q, want %q", got, want)
	}

	if got := lastLines("only", 10); got != "only" {
		t.Errorf("lastLines short input = %q, want %q", got, "only")
	}
}
