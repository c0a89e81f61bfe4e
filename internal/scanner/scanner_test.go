package scanner

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractAndScan(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"acme-repo-abc123/main.go":                 "package main\n",
		"acme-repo-abc123/node_modules/x/index.js": "module.exports = 1\n",
		"acme-repo-abc123/logo.png":                "\x89PNG",
		"acme-repo-abc123/empty.py":                "   \n",
		"acme-repo-abc123/docs/guide.md":           "# Guide\n",
	})

	files, err := New(0).ExtractAndScan(archive)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	byPath := map[string]File{}
	for _, f := range files {
		byPath[f.Path] = f
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), byPath)
	}
	if _, ok := byPath["main.go"]; !ok {
		t.Fatalf("expected main.go with archive root stripped")
	}
	if _, ok := byPath["docs/guide.md"]; !ok {
		t.Fatalf("expected nested markdown file")
	}
}

func TestExtractAndScan_SizeCap(t *testing.T) {
	big := make([]byte, 128)
	for i := range big {
		big[i] = 'a'
	}

	archive := buildZip(t, map[string]string{
		"r-1/big.go":   string(big),
		"r-1/small.go": "package small\n",
	})

	files, err := New(64).ExtractAndScan(archive)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != "small.go" {
		t.Fatalf("expected only the small file, got %v", files)
	}
}

func TestFilterByLanguage(t *testing.T) {
	files := []File{
		{Path: "a.py"},
		{Path: "b.go"},
		{Path: "c.js"},
	}

	got := FilterByLanguage(files, "Python")
	if len(got) != 1 || got[0].Path != "a.py" {
		t.Fatalf("unexpected filter result %v", got)
	}

	// Unknown language keeps everything.
	if got := FilterByLanguage(files, "cobol"); len(got) != 3 {
		t.Fatalf("unknown language should not filter, got %v", got)
	}
}
