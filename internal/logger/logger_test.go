package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSimpleLogger_LevelsAndFields(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewWithWriters(LevelInfo, &out, &errOut)

	log.Debug("hidden")
	log.Info("fetched fixtures", "endpoint", "/fixtures", "results", 3)
	log.Error("upstream call failed", errors.New("timeout"), "endpoint", "/injuries")

	if strings.Contains(out.String(), "hidden") {
		t.Error("Debug output should be filtered at info level")
	}
	if !strings.Contains(out.String(), "INFO: fetched fixtures endpoint=/fixtures results=3") {
		t.Errorf("Unexpected info output: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "upstream call failed: timeout endpoint=/injuries") {
		t.Errorf("Unexpected error output: %q", errOut.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatFields_OddCount(t *testing.T) {
	if got := formatFields([]interface{}{"a", 1, "dangling"}); got != " a=1 extra=dangling" {
		t.Errorf("Unexpected fields rendering %q", got)
	}
}
