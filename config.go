package mailclean

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	mcerrors "github.com/infodancer/mailclean/errors"
)

// Defaults applied by DefaultConfig.
const (
	DefaultPrefix         = "."
	DefaultSeparator      = "."
	DefaultTrashFolder    = "Trash"
	DefaultArchiveFolder  = "Archive"
	DefaultArchiveDepth   = 2
	DefaultMinAgeDays     = 14
	DefaultMaildirSubpath = "Maildir"
	DefaultRetryDelay     = 2 * time.Second
)

// Config holds the options of one cleanup run.
type Config struct {
	// BasePath is the maildir root holding the top-level inbox.
	BasePath string `toml:"base_path"`

	// Prefix is prepended to every folder directory name.
	Prefix string `toml:"prefix"`

	// Separator replaces "/" in hierarchical folder names.
	Separator string `toml:"separator"`

	// TrashFolder is the logical folder trashed messages go to.
	TrashFolder string `toml:"trash_folder"`

	// ArchiveFolder is the logical base folder for archived messages.
	ArchiveFolder string `toml:"archive_folder"`

	// ArchiveDepth is the number of date segments (1-3) below ArchiveFolder.
	ArchiveDepth int `toml:"archive_depth"`

	// MinAgeDays is the age at which a message becomes eligible for cleanup.
	MinAgeDays float64 `toml:"min_age_days"`

	// KeepRead keeps messages carrying the seen flag.
	KeepRead bool `toml:"keep_read"`

	// KeepFlaggedThreads keeps every message of a thread that has
	// at least one flagged message.
	KeepFlaggedThreads bool `toml:"keep_flagged_threads"`

	// TrialRun logs every decision without touching storage.
	TrialRun bool `toml:"trial_run"`

	// RetryDelay is the pause between failed delivery attempts.
	RetryDelay time.Duration `toml:"retry_delay"`
}

// DefaultConfig returns a Config with the documented defaults.
// BasePath is $HOME/Maildir when HOME is set.
func DefaultConfig() Config {
	cfg := Config{
		Prefix:        DefaultPrefix,
		Separator:     DefaultSeparator,
		TrashFolder:   DefaultTrashFolder,
		ArchiveFolder: DefaultArchiveFolder,
		ArchiveDepth:  DefaultArchiveDepth,
		MinAgeDays:    DefaultMinAgeDays,
		RetryDelay:    DefaultRetryDelay,
	}
	if home := os.Getenv("HOME"); home != "" {
		cfg.BasePath = filepath.Join(home, DefaultMaildirSubpath)
	}
	return cfg
}

// LoadConfigFile overlays the TOML file at path onto cfg.
// Keys absent from the file keep their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", mcerrors.ErrStoreConfigInvalid, undecoded[0].String())
	}
	return nil
}

// Validate checks the configuration for a run in the given mode.
// All problems are reported together; each matches one of the
// configuration sentinels in the errors package.
func (c *Config) Validate(mode Mode) error {
	var errs []error

	switch mode {
	case ModeArchive, ModeTrash, ModeDelete:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", mcerrors.ErrInvalidMode, mode))
	}

	if c.BasePath == "" {
		errs = append(errs, fmt.Errorf("%w: base path is required", mcerrors.ErrStoreConfigInvalid))
	}
	if c.MinAgeDays < 0 {
		errs = append(errs, fmt.Errorf("%w: %v days", mcerrors.ErrInvalidAge, c.MinAgeDays))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: negative retry delay %v", mcerrors.ErrStoreConfigInvalid, c.RetryDelay))
	}
	if mode == ModeArchive {
		if c.ArchiveDepth < 1 || c.ArchiveDepth > 3 {
			errs = append(errs, fmt.Errorf("%w: %d (expected 1, 2 or 3)", mcerrors.ErrInvalidDepth, c.ArchiveDepth))
		}
		if c.ArchiveFolder == "" {
			errs = append(errs, fmt.Errorf("%w: archive folder", mcerrors.ErrEmptyFolderName))
		}
	}
	if mode == ModeTrash && c.TrashFolder == "" {
		errs = append(errs, fmt.Errorf("%w: trash folder", mcerrors.ErrEmptyFolderName))
	}

	return errors.Join(errs...)
}
