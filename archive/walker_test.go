package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

type zipEntry struct {
	name    string
	content string
	dir     bool
}

func createZip(t *testing.T, entries []zipEntry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		if e.dir {
			hdr := &zip.FileHeader{Name: e.name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", e.name, err)
			}
			continue
		}
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	zipFile.Close()
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, []zipEntry{
		{name: "icons/", dir: true},
		{name: "icons/arrow.svg", content: "<svg/>"},
		{name: "icons/close.svg", content: "<svg/>"},
		{name: "icons/extra/star.svg", content: "<svg/>"},
		{name: "icons/readme.txt", content: "readme"},
		{name: "logo.svg", content: "<svg/>"},
	})

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"single level", "icons/*.svg", []string{"icons/arrow.svg", "icons/close.svg"}},
		{"recursive", "icons/**/*.svg", []string{"icons/arrow.svg", "icons/close.svg", "icons/extra/star.svg"}},
		{"any svg", "**/*.svg", []string{"icons/arrow.svg", "icons/close.svg", "icons/extra/star.svg", "logo.svg"}},
		{"top level", "*.svg", []string{"logo.svg"}},
		{"no match", "nonexistent/*.svg", nil},
		{"empty pattern", "", []string{"icons/arrow.svg", "icons/close.svg", "icons/extra/star.svg", "icons/readme.txt", "logo.svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.pattern, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			sort.Strings(visited)
			if len(visited) != len(tt.want) {
				t.Fatalf("visited %v, want %v", visited, tt.want)
			}
			for i := range tt.want {
				if visited[i] != tt.want[i] {
					t.Errorf("visited[%d] = %s, want %s", i, visited[i], tt.want[i])
				}
			}
		})
	}
}

func TestWalk_BadPattern(t *testing.T) {
	zipPath := createZip(t, []zipEntry{{name: "a.svg", content: "<svg/>"}})
	err := Walk(zipPath, "[", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("Expected error for malformed pattern")
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", "", func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		err := Walk(invalidZip, "", func(archive string, file *zip.File) error {
			return nil
		})
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})
}

func TestWalk_UnsafeEntry(t *testing.T) {
	zipPath := createZip(t, []zipEntry{
		{name: "ok.svg", content: "<svg/>"},
		{name: "../evil.svg", content: "<svg/>"},
	})
	err := Walk(zipPath, "**/*.svg", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("Expected error for path traversal entry")
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	var entries []zipEntry
	for i := range 5 {
		entries = append(entries, zipEntry{name: "files/file" + string(rune('0'+i)) + ".svg", content: "<svg/>"})
	}
	zipPath := createZip(t, entries)

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(zipPath, "files/*", func(archive string, file *zip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})

	if err != stopErr {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2 (early termination)", visited)
	}
}

func TestWalk_CaseSensitivity(t *testing.T) {
	zipPath := createZip(t, []zipEntry{{name: "Icons/A.svg", content: "<svg/>"}})

	count := func(pattern string) int {
		var visited int
		if err := Walk(zipPath, pattern, func(string, *zip.File) error {
			visited++
			return nil
		}); err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		return visited
	}
	if n := count("Icons/*.svg"); n != 1 {
		t.Errorf("visited %d files with 'Icons/*.svg', want 1", n)
	}
	if n := count("icons/*.svg"); n != 0 {
		t.Errorf("visited %d files with 'icons/*.svg', want 0", n)
	}
}

func TestOpenEntry(t *testing.T) {
	content := `<svg viewBox="0 0 1 1"/>`
	zipPath := createZip(t, []zipEntry{
		{name: "icons/", dir: true},
		{name: "icons/a.svg", content: content},
	})

	t.Run("existing entry", func(t *testing.T) {
		rc, err := OpenEntry(zipPath, "icons/a.svg")
		if err != nil {
			t.Fatalf("OpenEntry() error = %v", err)
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if !bytes.Equal(data, []byte(content)) {
			t.Errorf("content = %s, want %s", data, content)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := OpenEntry(zipPath, "icons/b.svg")
		if !errors.Is(err, ErrEntryNotFound) {
			t.Errorf("OpenEntry() error = %v, want ErrEntryNotFound", err)
		}
	})

	t.Run("directory entry", func(t *testing.T) {
		_, err := OpenEntry(zipPath, "icons/")
		if !errors.Is(err, ErrEntryNotFound) {
			t.Errorf("OpenEntry() error = %v, want ErrEntryNotFound", err)
		}
	})

	t.Run("unsafe name", func(t *testing.T) {
		if _, err := OpenEntry(zipPath, "../a.svg"); err == nil {
			t.Error("Expected error for unsafe entry name")
		}
	})

	t.Run("missing archive", func(t *testing.T) {
		if _, err := OpenEntry("/nonexistent/file.zip", "a.svg"); err == nil {
			t.Error("Expected error for nonexistent archive")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		safe bool
	}{
		{"icons/a.svg", true},
		{"a..b.svg", true},
		{"../a.svg", false},
		{"icons/../../a.svg", false},
		{"/etc/passwd", false},
		{`\windows\a.svg`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.safe {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.safe)
		}
	}
}
