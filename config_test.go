package mailclean

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	mcerrors "github.com/infodancer/mailclean/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	cfg := DefaultConfig()

	tests := []struct {
		field string
		got   any
		want  any
	}{
		{"base path", cfg.BasePath, filepath.Join("/home/alice", "Maildir")},
		{"prefix", cfg.Prefix, "."},
		{"separator", cfg.Separator, "."},
		{"trash folder", cfg.TrashFolder, "Trash"},
		{"archive folder", cfg.ArchiveFolder, "Archive"},
		{"archive depth", cfg.ArchiveDepth, 2},
		{"min age", cfg.MinAgeDays, 14.0},
		{"keep read", cfg.KeepRead, false},
		{"trial run", cfg.TrialRun, false},
		{"retry delay", cfg.RetryDelay, 2 * time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, tt.got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		BasePath:      "/mail",
		TrashFolder:   "Trash",
		ArchiveFolder: "Archive",
		ArchiveDepth:  2,
		MinAgeDays:    14,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		mode    Mode
		wantErr error
	}{
		{"valid archive", func(*Config) {}, ModeArchive, nil},
		{"valid delete", func(*Config) {}, ModeDelete, nil},
		{"unknown mode", func(*Config) {}, Mode("shred"), mcerrors.ErrInvalidMode},
		{"depth zero", func(c *Config) { c.ArchiveDepth = 0 }, ModeArchive, mcerrors.ErrInvalidDepth},
		{"depth four", func(c *Config) { c.ArchiveDepth = 4 }, ModeArchive, mcerrors.ErrInvalidDepth},
		{"depth ignored outside archive", func(c *Config) { c.ArchiveDepth = 9 }, ModeTrash, nil},
		{"negative age", func(c *Config) { c.MinAgeDays = -1 }, ModeDelete, mcerrors.ErrInvalidAge},
		{"missing base path", func(c *Config) { c.BasePath = "" }, ModeDelete, mcerrors.ErrStoreConfigInvalid},
		{"empty trash folder", func(c *Config) { c.TrashFolder = "" }, ModeTrash, mcerrors.ErrEmptyFolderName},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }, ModeTrash, mcerrors.ErrStoreConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate(tt.mode)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.toml")
	content := `
base_path = "/srv/mail/bob"
archive_depth = 3
min_age_days = 30.5
keep_flagged_threads = true
retry_delay = "500ms"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := Config{Prefix: ".", TrashFolder: "Trash"}
	if err := LoadConfigFile(path, &cfg); err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.BasePath != "/srv/mail/bob" || cfg.ArchiveDepth != 3 || cfg.MinAgeDays != 30.5 || !cfg.KeepFlaggedThreads {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.RetryDelay)
	}
	if cfg.Prefix != "." || cfg.TrashFolder != "Trash" {
		t.Errorf("keys absent from the file must keep their values: %+v", cfg)
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleanup.toml")
	if err := os.WriteFile(path, []byte("archive_dpeth = 3\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg := Config{}
	if err := LoadConfigFile(path, &cfg); !errors.Is(err, mcerrors.ErrStoreConfigInvalid) {
		t.Fatalf("expected ErrStoreConfigInvalid, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"archive", "trash", "delete", "TRASH"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseMode("purge"); !errors.Is(err, mcerrors.ErrInvalidMode) {
		t.Errorf("ParseMode(purge): expected ErrInvalidMode, got %v", err)
	}
}
