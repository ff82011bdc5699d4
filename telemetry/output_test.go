package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/tensai/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Methods are safe on a nil manager.
	if err := om.WriteScene(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteFrames(FrameStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.SnapshotDir() != "" {
		t.Error("nil manager should report empty dir")
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for tick := int64(1); tick <= 3; tick++ {
		if err := om.WriteScene(WindowStats{WindowEndTick: tick * 60, Bodies: 5}); err != nil {
			t.Fatalf("WriteScene: %v", err)
		}
		if err := om.WriteFrames(FrameStats{Frames: uint64(tick)}, tick*60); err != nil {
			t.Fatalf("WriteFrames: %v", err)
		}
		if err := om.WriteBookmark(Bookmark{Type: BookmarkSteadyState, Tick: tick * 60}); err != nil {
			t.Fatalf("WriteBookmark: %v", err)
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, tt := range []struct {
		file   string
		header string
	}{
		{"scene.csv", "window_end,sim_time,bodies"},
		{"frames.csv", "tick,frames,mean_ms"},
		{"bookmarks.csv", "type,tick,description"},
	} {
		data, err := os.ReadFile(filepath.Join(dir, tt.file))
		if err != nil {
			t.Fatalf("reading %s: %v", tt.file, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header plus 3 rows, got %d lines", tt.file, len(lines))
		}
		if !strings.HasPrefix(lines[0], tt.header) {
			t.Errorf("%s: unexpected header %q", tt.file, lines[0])
		}
		if strings.Count(string(data), tt.header) != 1 {
			t.Errorf("%s: header written more than once", tt.file)
		}
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
