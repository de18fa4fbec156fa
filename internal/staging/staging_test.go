package staging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/rfqflow/internal/staging"
)

func TestStage_RoundTrip(t *testing.T) {
	area, err := staging.NewArea(t.TempDir())
	if err != nil {
		t.Fatalf("new area: %v", err)
	}

	content := []byte("%PDF-1.4 fake")
	file, err := area.Stage(bytes.NewReader(content), "quote.pdf", 1024)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	if filepath.Dir(file.Path) != area.Dir() {
		t.Errorf("staged outside the area: %s", file.Path)
	}
	if filepath.Ext(file.Path) != ".pdf" {
		t.Errorf("extension got %s, want .pdf", filepath.Ext(file.Path))
	}
	got, err := file.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content got %q, want %q", got, content)
	}

	if err := file.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := file.Remove(); err != nil {
		t.Errorf("second remove: %v", err)
	}
	if _, err := os.Stat(file.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still present after remove: %v", err)
	}
}

func TestStage_UniqueNames(t *testing.T) {
	area, err := staging.NewArea(t.TempDir())
	if err != nil {
		t.Fatalf("new area: %v", err)
	}

	first, err := area.Stage(strings.NewReader("a"), "same.docx", 16)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	defer first.Remove()
	second, err := area.Stage(strings.NewReader("b"), "same.docx", 16)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	defer second.Remove()

	if first.Path == second.Path {
		t.Fatalf("two uploads share %s", first.Path)
	}
}

func TestStage_TooLarge(t *testing.T) {
	area, err := staging.NewArea(t.TempDir())
	if err != nil {
		t.Fatalf("new area: %v", err)
	}

	_, err = area.Stage(strings.NewReader(strings.Repeat("x", 17)), "big.pdf", 16)
	if !errors.Is(err, staging.ErrTooLarge) {
		t.Fatalf("error got %v, want ErrTooLarge", err)
	}

	entries, err := os.ReadDir(area.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("oversized upload left %d files behind", len(entries))
	}
}
