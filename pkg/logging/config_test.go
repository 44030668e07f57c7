package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLoggerFromConfigNilUsesDefaults(t *testing.T) {
	logger := NewLoggerFromConfig(nil)
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %v", logger.GetLevel())
	}
}

func TestTestLoggerCapturesFields(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Info().Str("repo", "mod_linux_base").Msg("resolved")

	tl.AssertContains(t, "mod_linux_base")
	tl.AssertContains(t, "resolved")
	if len(tl.Lines()) != 1 {
		t.Errorf("expected 1 log line, got %d", len(tl.Lines()))
	}
	if !strings.Contains(tl.Output(), `"level":"info"`) {
		t.Errorf("expected structured level field, got %s", tl.Output())
	}
}
