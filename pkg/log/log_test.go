package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestToLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range cases {
		if got := ToLogLevel(name); got != want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unknown level")
		}
	}()
	ToLogLevel("verbose")
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.New("covariance solve failed")
	logger.LogAttrs(context.Background(), slog.LevelError, "fit failed", ErrAttr(err))

	var record map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("output is not JSON: %v", jsonErr)
	}
	if _, ok := record[ErrAttrKey]; !ok {
		t.Errorf("missing %q attribute: %s", ErrAttrKey, buf.String())
	}
	st, ok := record[StacktraceAttrKey].(string)
	if !ok || st == "" {
		t.Fatalf("missing %q attribute: %s", StacktraceAttrKey, buf.String())
	}
	if !strings.Contains(st, "TestErrFmtHandlerAddsStacktrace") {
		t.Errorf("stacktrace does not mention the caller: %s", st)
	}
}

func TestErrFmtHandlerPassesThroughPlainRecords(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("fitted model", slog.Int(SamplesKey, 6))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Errorf("stacktrace added to a record without an error: %s", buf.String())
	}
}
