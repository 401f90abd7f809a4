package tds

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger_UnknownCodeWarns(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	if v := Decode(ColumnType(999), []byte("x")); !v.IsNull() {
		t.Fatalf("expected null, got %s", v.Kind())
	}
	out := buf.String()
	if !strings.Contains(out, "unknown column type") || !strings.Contains(out, "code=999") {
		t.Errorf("unexpected log output %q", out)
	}

	// malformed values of a known code are not logged
	buf.Reset()
	Decode(SYBINT4, []byte("abc"))
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}
