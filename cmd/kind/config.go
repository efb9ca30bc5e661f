package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "kind.toml"

// projectConfig — содержимое kind.toml. Все секции необязательны.
type projectConfig struct {
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
	Trace  traceConfig  `toml:"trace"`
}

type parseConfig struct {
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Extensions     []string `toml:"extensions"`
}

type outputConfig struct {
	Format      string `toml:"format"`
	Color       string `toml:"color"`
	Diagnostics string `toml:"diagnostics"`
	PathMode    string `toml:"path_mode"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
}

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

// defined reports whether key was written in the file; nil-safe, so
// callers do not need to check for a missing kind.toml.
func (m *projectManifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

func findKindToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest ищет kind.toml вверх от startDir. Отсутствие файла
// не ошибка: возвращается nil.
func loadProjectManifest(startDir string) (*projectManifest, error) {
	path, ok, err := findKindToml(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return loadProjectManifestFile(path)
}

func loadProjectManifestFile(path string) (*projectManifest, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Parse.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
	}
	for _, ext := range cfg.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("%s: [parse].extensions: %q must look like \".kind\"", path, ext)
		}
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}
