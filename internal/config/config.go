package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	toml "github.com/pelletier/go-toml/v2"

	"ticklist/internal/export"
	"ticklist/internal/task"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "ticklist.db"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Search         string `toml:"search"`
	NextFilter     string `toml:"next_filter"`
	PrevFilter     string `toml:"prev_filter"`
	ClearCompleted string `toml:"clear_completed"`
	Archive        string `toml:"archive_completed"`
	Theme          string `toml:"theme"`
	Export         string `toml:"export"`
	Dismiss        string `toml:"dismiss"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	ExportDir       string `toml:"export_dir"`
	ExportFormat    string `toml:"export_format"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultPriority string `toml:"default_priority"`
	DefaultDueToday bool   `toml:"default_due_today"`
	ConfirmDelete   bool   `toml:"confirm_delete"`
	SeedSamples     bool   `toml:"seed_samples"`
	ToastSeconds    int    `toml:"toast_seconds"`
	Keys            Keymap `toml:"keys"`
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. A relative db_path is resolved against dataDir.
func LoadOrCreate(path, dataDir string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(dataDir), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	return cfg.resolve(dataDir), nil
}

func (c Config) resolve(dataDir string) Config {
	if !filepath.IsAbs(c.DBPath) && dataDir != "" {
		c.DBPath = filepath.Join(dataDir, c.DBPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks every field and reports all problems at once as
// criterio field errors.
func (c Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("db_path", c.DBPath, notEmpty),
		criterio.Run("export_format", c.ExportFormat, validExportFormat),
		criterio.Run("default_filter", c.DefaultFilter, validFilter),
		criterio.Run("default_priority", c.DefaultPriority, validPriority),
		validToastSeconds(c.ToastSeconds),
		c.Keys.validate(),
	)
}

// Filter returns the configured start-up filter, falling back to all.
func (c Config) Filter() task.Mode {
	m, err := task.ParseMode(c.DefaultFilter)
	if err != nil {
		return task.ModeAll
	}
	return m
}

func (c Config) Priority() task.Priority {
	p, err := task.ParsePriority(c.DefaultPriority)
	if err != nil {
		return task.PriorityMedium
	}
	return p
}

func (c Config) Format() export.Format {
	f, err := export.ParseFormat(c.ExportFormat)
	if err != nil {
		return export.FormatCSV
	}
	return f
}

func (c Config) ToastTTL() time.Duration {
	if c.ToastSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.ToastSeconds) * time.Second
}

func (k Keymap) validate() error {
	var errs criterio.FieldErrorsBuilder
	seen := map[string]string{}
	bindings := []struct {
		name string
		key  string
	}{
		{"keys.quit", k.Quit},
		{"keys.add", k.Add},
		{"keys.up", k.Up},
		{"keys.down", k.Down},
		{"keys.toggle", k.Toggle},
		{"keys.delete", k.Delete},
		{"keys.edit", k.Edit},
		{"keys.search", k.Search},
		{"keys.next_filter", k.NextFilter},
		{"keys.prev_filter", k.PrevFilter},
		{"keys.clear_completed", k.ClearCompleted},
		{"keys.archive_completed", k.Archive},
		{"keys.theme", k.Theme},
		{"keys.export", k.Export},
		{"keys.dismiss", k.Dismiss},
	}
	for _, b := range bindings {
		if b.key == "" {
			errs = errs.Append(b.name, errors.New("must not be empty"))
			continue
		}
		if other, ok := seen[b.key]; ok {
			errs = errs.Append(b.name, fmt.Errorf("key %q already bound to %s", b.key, other))
			continue
		}
		seen[b.key] = b.name
	}
	if k.Confirm == "" {
		errs = errs.Append("keys.confirm", errors.New("must not be empty"))
	}
	if k.Cancel == "" {
		errs = errs.Append("keys.cancel", errors.New("must not be empty"))
	}
	return errs.ToError()
}

func notEmpty(v string) error {
	if v == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validToastSeconds(v int) error {
	if v <= 0 {
		return criterio.NewFieldErrors("toast_seconds", errors.New("must be greater than zero"))
	}
	return nil
}

func validFilter(v string) error {
	_, err := task.ParseMode(v)
	return err
}

func validPriority(v string) error {
	_, err := task.ParsePriority(v)
	return err
}

func validExportFormat(v string) error {
	_, err := export.ParseFormat(v)
	return err
}

// Default returns the configuration written on first launch.
func Default() Config {
	return Config{
		DBPath:          DefaultDBName,
		ExportDir:       ".",
		ExportFormat:    string(export.FormatCSV),
		DefaultFilter:   string(task.ModeAll),
		DefaultPriority: string(task.PriorityMedium),
		DefaultDueToday: true,
		ConfirmDelete:   true,
		SeedSamples:     true,
		ToastSeconds:    3,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Confirm:        "enter",
			Cancel:         "esc",
			Search:         "/",
			NextFilter:     "f",
			PrevFilter:     "F",
			ClearCompleted: "C",
			Archive:        "A",
			Theme:          "t",
			Export:         "x",
			Dismiss:        "ctrl+x",
		},
	}
}
