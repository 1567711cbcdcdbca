package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048plus/internal/powerup"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	parsed, err := ParseRules(defaultRulesYAML)
	if err != nil {
		t.Fatalf("embedded rules do not parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, DefaultRules()) {
		t.Errorf("embedded rules.yaml and DefaultRules() differ:\n%+v\n%+v", parsed, DefaultRules())
	}
}

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules invalid: %v", err)
	}
}

func TestRewardTable(t *testing.T) {
	grants := make(map[int]map[powerup.Kind]int)
	for _, rw := range DefaultRules().Rewards {
		grants[rw.Tile] = rw.Grants
	}

	if !reflect.DeepEqual(grants[32], map[powerup.Kind]int{powerup.Swap: 1}) {
		t.Errorf("32 grants %v", grants[32])
	}
	if !reflect.DeepEqual(grants[2048], map[powerup.Kind]int{powerup.Undo: 1, powerup.Shuffle: 1}) {
		t.Errorf("2048 grants %v", grants[2048])
	}
	if !reflect.DeepEqual(grants[4096], map[powerup.Kind]int{powerup.Remove: 1, powerup.Double: 1}) {
		t.Errorf("4096 grants %v", grants[4096])
	}
}

func TestInitialTilesFor(t *testing.T) {
	r := DefaultRules()
	if got := r.InitialTilesFor(4); got != 2 {
		t.Errorf("4x4 initial tiles = %d, want 2", got)
	}
	if got := r.InitialTilesFor(5); got != 3 {
		t.Errorf("5x5 initial tiles = %d, want 3", got)
	}
}

func TestParseRulesPartialOverride(t *testing.T) {
	cfg, err := ParseRules([]byte("grid_size: 5\nlock_moves: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridSize != 5 || cfg.LockMoves != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.WinTile != 2048 || len(cfg.Themes) != 4 {
		t.Error("omitted keys should keep defaults")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"size not listed", "grid_size: 7\n", "not listed"},
		{"bad win tile", "win_tile: 1000\n", "win_tile"},
		{"unknown kind", "starting_inventory: {boost: 1}\n", "unknown kind"},
		{"reward not power of two", "rewards: [{tile: 48, grants: {swap: 1}}]\n", "reward tile"},
		{"missing default theme", "themes: [{id: matrix, unlock_at: 4096}]\n", "missing"},
		{"bad requirement", "achievements: [{id: x, requirement: {type: secrets}}]\n", "unknown requirement"},
		{"spawn chance", "spawn_four_chance: 1.5\n", "spawn_four_chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRulesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("grid_size: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if cfg.GridSize != 3 {
		t.Errorf("GridSize = %d, want 3", cfg.GridSize)
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := MarshalRules(DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseRules(data)
	if err != nil {
		t.Fatalf("marshalled rules do not parse: %v", err)
	}
	if !reflect.DeepEqual(back, DefaultRules()) {
		t.Error("MarshalRules output does not round-trip")
	}
}
