package state

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestManager(t *testing.T) {
	m := NewManager()

	r := strings.NewReader("FXRT old state")
	if err := m.Load(r); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Len() != 0 {
		t.Error("Load should consume the stream")
	}
	if err := m.Load(nil); err != nil {
		t.Errorf("Load(nil): %v", err)
	}
	if err := m.Load(failingReader{}); err == nil {
		t.Error("read errors should be reported")
	}

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil || buf.Len() != 0 {
		t.Errorf("Save wrote %d bytes, err %v", buf.Len(), err)
	}
}
