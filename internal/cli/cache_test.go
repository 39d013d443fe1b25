package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// writeCacheConfig writes a config file pointing the cache at dir and
// returns the config path.
func writeCacheConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deckgen.toml")
	body := `[cache]
dir = "` + filepath.ToSlash(dir) + `"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Write config: %v", err)
	}
	return path
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "charts"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"payload.json", filepath.Join("charts", "pie.png")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c := newTestCLI(t)
	if err := runCommand(t, c, "cache", "clear", "--config", writeCacheConfig(t, dir)); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "payload.json")); !os.IsNotExist(err) {
		t.Error("Cached file should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "charts")); !os.IsNotExist(err) {
		t.Error("Empty subdirectory should be removed")
	}

	// The cache root itself stays.
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Cache root should remain: %v", err)
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	c := newTestCLI(t)
	if err := runCommand(t, c, "cache", "clear", "--config", writeCacheConfig(t, dir)); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
}

func TestCacheInfo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI(t)
	if err := runCommand(t, c, "cache", "info", "--config", writeCacheConfig(t, dir)); err != nil {
		t.Fatalf("cache info: %v", err)
	}
}
