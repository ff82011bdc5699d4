package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		Seed:        42,
		WorldWidth:  1280,
		WorldHeight: 662,
		Tick:        1000,
		Bodies: []BodyState{
			{
				ID:          1,
				Shape:       "circle",
				X:           150,
				Y:           250,
				VelX:        0.5,
				VelY:        -0.3,
				Radius:      12,
				Mass:        1.44,
				Friction:    0.02,
				Restitution: 0.8,
				Color:       [4]uint8{200, 100, 50, 255},
			},
			{ID: 2, Shape: "square", X: 10, Y: 20, Radius: 6, Mass: 1e6, Kinematic: true},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkContactSpike,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != snapshot.Seed {
		t.Errorf("Seed mismatch: got %d, want %d", loaded.Seed, snapshot.Seed)
	}
	if loaded.Tick != snapshot.Tick {
		t.Errorf("Tick mismatch: got %d, want %d", loaded.Tick, snapshot.Tick)
	}
	if len(loaded.Bodies) != len(snapshot.Bodies) {
		t.Fatalf("Bodies count mismatch: got %d, want %d", len(loaded.Bodies), len(snapshot.Bodies))
	}
	if loaded.Bodies[0] != snapshot.Bodies[0] {
		t.Errorf("body 0 mismatch: got %+v, want %+v", loaded.Bodies[0], snapshot.Bodies[0])
	}
	if !loaded.Bodies[1].Kinematic {
		t.Error("kinematic flag not loaded")
	}
	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark type mismatch: got %s, want %s", loaded.Bookmark.Type, snapshot.Bookmark.Type)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		snapshot *Snapshot
		want     string
	}{
		{
			name: "with bookmark",
			snapshot: &Snapshot{
				Version:  SnapshotVersion,
				Tick:     5000,
				Bookmark: &Bookmark{Type: BookmarkEnergyDrop, Tick: 5000},
			},
			want: "snapshot_5000_energy_drop.json",
		},
		{
			name:     "without bookmark",
			snapshot: &Snapshot{Version: SnapshotVersion, Tick: 3000},
			want:     "snapshot_3000.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SaveSnapshot(tt.snapshot, tmpDir)
			if err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if want := filepath.Join(tmpDir, tt.want); path != want {
				t.Errorf("Path mismatch: got %s, want %s", path, want)
			}
		})
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "tick": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unknown snapshot version")
	}
}
