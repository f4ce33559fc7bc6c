package security

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/voxelgrid/internal/testutil"
)

func TestCheckWithinDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "plots"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"direct child", filepath.Join(dir, "grid.png"), false},
		{"nested new file", filepath.Join(dir, "plots", "a", "b.png"), false},
		{"dir itself", dir, false},
		{"dot dot", filepath.Join(dir, "..", "escape.png"), true},
		{"sneaky dot dot", dir + "/plots/../../escape.png", true},
		{"absolute elsewhere", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWithinDir(tt.path, dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckWithinDir(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestCheckWithinDir_Symlink(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := CheckWithinDir(filepath.Join(link, "new.db"), dir); err == nil {
		t.Error("expected symlinked parent to be rejected")
	}
}

func TestCheckWithinDir_MissingDir(t *testing.T) {
	testutil.AssertError(t, CheckWithinDir("x", filepath.Join(t.TempDir(), "nope")))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":                 "unknown",
		"bench-10":         "bench-10",
		"grid 10x10x10":    "grid_10x10x10",
		"../../etc/passwd": "etc_passwd",
		"a//b??c":          "a_b_c",
		"__x__":            "x",
		"日本":               "unknown",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
	long := SanitizeFilename(strings.Repeat("a", 500))
	if len(long) != maxFilenameLen {
		t.Errorf("long name len = %d, want %d", len(long), maxFilenameLen)
	}
}
