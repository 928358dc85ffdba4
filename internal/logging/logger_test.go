package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipsplit/internal/config"
	"clipsplit/internal/logging"
	"clipsplit/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("file sink message")

	content, err := os.ReadFile(cfg.LogFile())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "file sink message") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestNewFromConfigWriterTeesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	logger, err := logging.NewFromConfigWriter(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfigWriter returned error: %v", err)
	}
	logger.Info("tee message")

	content, err := os.ReadFile(cfg.LogFile())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "tee message") || !strings.Contains(buf.String(), "tee message") {
		t.Fatalf("expected message in both sinks, file=%q writer=%q", content, buf.String())
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithSourceFile(context.Background(), "clip.mp4")
	ctx = services.WithVariant(ctx, "mid_9x16")
	component := logging.NewComponentLogger(logger, "transcode")
	logging.WithContext(ctx, component).Error("transcode job failed",
		logging.Int("exit_code", 1),
		logging.String("command", "ffmpeg -y -i clip.mp4"),
	)

	line := buf.String()
	for _, fragment := range []string{
		"ERROR [transcode] clip.mp4 · mid_9x16 – transcode job failed",
		"exit_code=1",
		`command="ffmpeg -y -i clip.mp4"`,
	} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be folded into the header, got %q", line)
	}
}

func TestJSONLoggerUsesCompactKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if record["k"] != "v" {
		t.Fatalf("expected attribute, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected info level filtering, got %q", buf.String())
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-xyz")
	ctx = services.WithSourceFile(ctx, "a.mov")

	fields := logging.ContextFields(ctx)
	got := map[string]string{}
	for _, f := range fields {
		got[f.Key] = f.Value.String()
	}
	if got[logging.FieldRunID] != "run-xyz" {
		t.Fatalf("expected run id field, got %v", got)
	}
	if got[logging.FieldSourceFile] != "a.mov" {
		t.Fatalf("expected source file field, got %v", got)
	}
	if _, ok := got[logging.FieldVariant]; ok {
		t.Fatalf("unexpected variant field: %v", got)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "probe failed", "probe_failed", logging.Error(errors.New("boom")))

	line := buf.String()
	for _, fragment := range []string{"event_type=probe_failed", `impact="batch continues"`, "error=boom"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
}

func TestFormatSubject(t *testing.T) {
	if got := logging.FormatSubject("a.mp4", "left_9x16"); got != "a.mp4 · left_9x16" {
		t.Fatalf("unexpected subject: %q", got)
	}
	if got := logging.FormatSubject(" a.mp4 ", ""); got != "a.mp4" {
		t.Fatalf("unexpected subject: %q", got)
	}
	if got := logging.FormatSubject("", ""); got != "" {
		t.Fatalf("expected empty subject, got %q", got)
	}
}
