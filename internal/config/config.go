// Package config loads the optional ft-patch.json project file, validates
// it against an embedded JSON Schema and layers FT_PATCH_* environment
// overrides on top. Engine knobs stay explicit per-call options; config only
// fills them at the CLI boundary.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/buivietphi/ft-patch-package/pkg/diff"
	"github.com/xeipuuv/gojsonschema"
)

// FileName is the project config file looked up in the working directory.
const FileName = "ft-patch.json"

// Config carries the tool-level defaults fed into engine options and
// command behavior.
type Config struct {
	PatchDir     string   `json:"patchDir"`
	ContextLines int      `json:"contextLines"`
	MaxLCSLines  int      `json:"maxLcsLines"`
	Exclude      []string `json:"exclude,omitempty"`
	Color        string   `json:"color"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		PatchDir:     ".ft-patch/patches",
		ContextLines: 3,
		MaxLCSLines:  5000,
		Color:        "auto",
	}
}

// DiffOptions converts the config into generator options.
func (c Config) DiffOptions() diff.Options {
	return diff.Options{
		ContextLines: c.ContextLines,
		MaxLCSLines:  c.MaxLCSLines,
		Exclude:      append([]string(nil), c.Exclude...),
	}
}

// SchemaError reports the individual schema violations found in a config
// file.
type SchemaError struct {
	issues []string
}

// Issues lists the violations in schema order.
func (e SchemaError) Issues() []string {
	return e.issues
}

func (e SchemaError) Error() string {
	if len(e.issues) == 0 {
		return "config file failed schema validation"
	}
	return strings.Join(e.issues, "; ")
}

var (
	schemaLoader     gojsonschema.JSONLoader
	schemaLoaderOnce sync.Once
)

func loadSchema() gojsonschema.JSONLoader {
	schemaLoaderOnce.Do(func() {
		schemaLoader = gojsonschema.NewGoLoader(schemaMap())
	})
	return schemaLoader
}

func validateRaw(raw []byte) error {
	result, err := gojsonschema.Validate(loadSchema(), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("config: schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return SchemaError{issues: issues}
}

// Load reads ft-patch.json from dir when present, validates it against the
// embedded schema, then applies FT_PATCH_* environment overrides. A missing
// file is not an error; defaults are used.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := validateRaw(raw); err != nil {
			return Config{}, err
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return applyEnv(cfg)
}

// Write serializes cfg to ft-patch.json in dir. Used by the init scaffold.
func Write(dir string, cfg Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	raw = append(raw, '\n')
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := os.Getenv("FT_PATCH_DIR"); v != "" {
		cfg.PatchDir = v
	}
	if v := os.Getenv("FT_PATCH_CONTEXT_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("config: invalid FT_PATCH_CONTEXT_LINES %q", v)
		}
		cfg.ContextLines = n
	}
	if v := os.Getenv("FT_PATCH_MAX_LCS_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("config: invalid FT_PATCH_MAX_LCS_LINES %q", v)
		}
		cfg.MaxLCSLines = n
	}
	if v := os.Getenv("FT_PATCH_EXCLUDE"); v != "" {
		var patterns []string
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				patterns = append(patterns, trimmed)
			}
		}
		cfg.Exclude = patterns
	}
	if v := os.Getenv("FT_PATCH_COLOR"); v != "" {
		if v != "auto" && v != "always" && v != "never" {
			return Config{}, fmt.Errorf("config: invalid FT_PATCH_COLOR %q", v)
		}
		cfg.Color = v
	}
	return cfg, nil
}
