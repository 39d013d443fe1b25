package cli

import (
	"io"
	"testing"

	"github.com/matzehuels/deckgen/pkg/buildinfo"
	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/config"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	return New(io.Discard, LogInfo)
}

func TestRootCommand(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
	if root.Version != buildinfo.Version {
		t.Errorf("Version = %q, want %q", root.Version, buildinfo.Version)
	}

	want := map[string]bool{
		"generate":   false,
		"serve":      false,
		"inspect":    false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Persistent flag %q not registered", flag)
		}
	}
}

func TestNewCache(t *testing.T) {
	c := newTestCLI(t)
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	if _, ok := c.newCache(cfg, false).(*cache.FileCache); !ok {
		t.Error("Enabled cache should be a file cache")
	}
	if _, ok := c.newCache(cfg, true).(*cache.NullCache); !ok {
		t.Error("noCache should force a null cache")
	}

	cfg.Cache.Disabled = true
	if _, ok := c.newCache(cfg, false).(*cache.NullCache); !ok {
		t.Error("Disabled config should force a null cache")
	}
}

func TestNewRunner(t *testing.T) {
	c := newTestCLI(t)
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	runner := c.newRunner(cfg, true)
	defer runner.Close()

	if runner.Logger != c.Logger {
		t.Error("Runner should carry the CLI logger")
	}
	if runner.Cache == nil || runner.Keyer == nil {
		t.Error("Runner cache and keyer should be set")
	}
}
