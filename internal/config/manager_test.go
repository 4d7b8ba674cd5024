package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.ModelName = "deepseek-chat"
	cfg.LLMProvider = ProviderDeepSeek
	cfg.CacheEnabled = false

	data, _ := json.Marshal(cfg)
	if err := mgr.UpdateFromJSON(string(data)); err != nil {
		t.Fatalf("UpdateFromJSON: %v", err)
	}

	updated := mgr.Get()
	if updated.LLMProvider != ProviderDeepSeek || updated.CacheEnabled {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestManagerRejectsInvalidUpdate(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.LLMProvider = "mainframe"
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("invalid provider accepted")
	}
	if mgr.Get().LLMProvider == "mainframe" {
		t.Fatal("invalid config applied")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		select {
		case changed <- cfg:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// External edit, not through the manager.
	cfg := mgr.Get()
	cfg.ModelName = "gpt-4o-mini"
	data, _ := json.MarshalIndent(cfg, "", "  ")
	if err := os.WriteFile(mgr.Path(), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	select {
	case got := <-changed:
		if got.ModelName != "gpt-4o-mini" {
			t.Fatalf("reloaded model = %q", got.ModelName)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not pick up external edit")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg.EinoDebugPort = 0
	if err := cfg.Validate(); err == nil {
		t.Error("port 0 accepted")
	}
	cfg.EinoDebugPort = 52538

	cfg.MaxRecurLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative recursion limit accepted")
	}
}

func TestRequireLLMCredentials(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	if err := cfg.RequireLLMCredentials(); err == nil {
		t.Error("missing openai key accepted")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.RequireLLMCredentials(); err != nil {
		t.Errorf("key present but rejected: %v", err)
	}

	cfg.LLMProvider = ProviderDeepSeek
	if err := cfg.RequireLLMCredentials(); err == nil {
		t.Error("missing deepseek key accepted")
	}
}
