package logger

import (
	"log/slog"
	"testing"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	log := New()

	if log == nil {
		t.Fatal("expected logger to be created")
	}
	if log.level.Level() != slog.LevelInfo {
		t.Errorf("expected default level info, got %v", log.level.Level())
	}
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging to be disabled by default")
	}
}

func TestNewWithLevel(t *testing.T) {
	log := NewWithLevel(slog.LevelDebug)

	if log.level.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", log.level.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestSetLevel(t *testing.T) {
	log := New()

	log.SetLevel(slog.LevelError)

	if log.level.Level() != slog.LevelError {
		t.Errorf("expected error level after SetLevel, got %v", log.level.Level())
	}
}

func TestHTTPLoggingToggle(t *testing.T) {
	log := New()

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging enabled")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled")
	}
}

func TestNoop_ImplementsLogger(t *testing.T) {
	var log Logger = Noop{}

	// All methods must be safe to call
	log.Debug("debug", "k", "v")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.SetLevel(slog.LevelDebug)
	log.EnableHTTPLogging()
	log.DisableHTTPLogging()

	if log.IsHTTPLoggingEnabled() {
		t.Error("expected Noop to report HTTP logging disabled")
	}
}
