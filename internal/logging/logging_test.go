package logging

import (
    "bytes"
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
)

func TestNewJSONCarriesService(t *testing.T) {
    l, err := New(Config{Level: "debug", Format: "json"}, "pincheck")
    if err != nil {
        t.Fatal(err)
    }
    var buf bytes.Buffer
    l.SetOutput(&buf)
    l.WithField("pin", MaskCode("123456")).Info("issued")

    var entry map[string]any
    if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
        t.Fatalf("not json: %v: %s", err, buf.String())
    }
    if entry["service"] != "pincheck" {
        t.Fatalf("service = %v", entry["service"])
    }
    if entry["message"] != "issued" || entry["severity"] != "info" {
        t.Fatalf("unexpected entry: %v", entry)
    }
    if entry["pin"] != "****56" {
        t.Fatalf("pin = %v", entry["pin"])
    }
}

func TestNewFileSink(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "pincheck.log")
    l, err := New(Config{Format: "text", File: path}, "pincheck")
    if err != nil {
        t.Fatal(err)
    }
    l.Info("hello")
    data, err := os.ReadFile(path)
    if err != nil {
        t.Fatal(err)
    }
    if !bytes.Contains(data, []byte("hello")) {
        t.Fatalf("log file missing entry: %s", data)
    }
}

func TestMaskCode(t *testing.T) {
    if got := MaskCode("42"); got != "**" {
        t.Fatalf("got %q", got)
    }
    if got := MaskCode("987654"); got != "****54" {
        t.Fatalf("got %q", got)
    }
}
