package errors

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindPath, "Path error"},
		{KindCommand, "Command error"},
		{KindFFmpeg, "FFmpeg error"},
		{KindProbeParse, "Probe parse error"},
		{KindNoVideosFound, "No video files found"},
		{KindHardware, "Hardware acceleration error"},
		{KindStandards, "Standards error"},
		{KindCompliance, "Compliance error"},
		{KindOperationFailed, "Operation failed"},
		{KindCancelled, "Operation cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "I/O error: test message: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{
		Kind:    KindStandards,
		Message: "catalog issue",
	}

	got2 := err2.Error()
	expected2 := "Standards error: catalog issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindIO, Message: "test1"}
	err2 := &CoreError{Kind: KindIO, Message: "test2"}
	err3 := &CoreError{Kind: KindHardware, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}

	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}
}

func TestCommandError(t *testing.T) {
	startErr := &CommandError{
		Command:    "ffmpeg",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute ffmpeg: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	failedErr := &CommandError{
		Command:  "ffmpeg",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "conversion failed",
	}
	if got := failedErr.Error(); got != "command ffmpeg failed with exit code 1: conversion failed" {
		t.Errorf("CommandFailed error = %v", got)
	}

	failedNoStderr := &CommandError{
		Command:  "nvidia-smi",
		Kind:     CommandFailed,
		ExitCode: 127,
	}
	if got := failedNoStderr.Error(); got != "command nvidia-smi failed with exit code 127" {
		t.Errorf("CommandFailed (no stderr) error = %v", got)
	}
}

func TestIsKindHelpers(t *testing.T) {
	if !IsNoVideosFound(NewNoVideosFoundError("/videos")) {
		t.Error("IsNoVideosFound should match")
	}
	if !IsCancelled(NewCancelledError()) {
		t.Error("IsCancelled should match")
	}
	if !IsHardware(NewHardwareError("NVIDIA GPU not detected")) {
		t.Error("IsHardware should match")
	}
	if IsHardware(NewPathError("bad path")) {
		t.Error("IsHardware should not match a path error")
	}
	if IsKind(errors.New("plain"), KindIO) {
		t.Error("IsKind should not match a plain error")
	}
}

func TestIsKindWrapped(t *testing.T) {
	inner := NewNoVideosFoundError("/empty")
	wrapped := NewOperationFailedError("scan failed", inner)

	// errors.As walks the chain, so the inner kind should take priority
	// only when the outer error is unwrapped explicitly.
	if !IsKind(wrapped, KindOperationFailed) {
		t.Error("outer kind should match first")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("wrapped error should satisfy errors.Is for the inner error")
	}
}

func TestWrapExecError(t *testing.T) {
	plainErr := errors.New("executable file not found")
	wrapped := WrapExecError("ffprobe", plainErr, "")

	if wrapped.Kind != KindCommand {
		t.Errorf("WrapExecError kind = %v, want KindCommand", wrapped.Kind)
	}

	var cmdErr *CommandError
	if !errors.As(wrapped, &cmdErr) {
		t.Fatal("WrapExecError should wrap a CommandError")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("CommandError kind = %v, want CommandStart", cmdErr.Kind)
	}
}
