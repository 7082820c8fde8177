package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Info("forecast.fit ok",
		String("model", "SVM"),
		Int("samples", 21),
		Float64("accuracy", 98.5),
		Error(errors.New("boom")),
	)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "forecast.fit ok" {
		t.Fatalf("unexpected message %v", line["message"])
	}
	if line["model"] != "SVM" {
		t.Fatalf("unexpected model %v", line["model"])
	}
	if line["samples"] != float64(21) {
		t.Fatalf("unexpected samples %v", line["samples"])
	}
	if line["accuracy"] != 98.5 {
		t.Fatalf("unexpected accuracy %v", line["accuracy"])
	}
	if line["error"] != "boom" {
		t.Fatalf("unexpected error %v", line["error"])
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf).With(String("ticker", "AAPL"))
	l.Warn("predict.empty")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if line["ticker"] != "AAPL" {
		t.Fatalf("expected ticker field, got %v", line["ticker"])
	}
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	l.Error("nothing", String("k", "v"))
}
