// Package config loads and resolves fixturelock settings.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Serapieum-of-alex/github-actions/internal/schema"
)

// File is the on-disk configuration. Every field is optional; unset fields
// keep the mode defaults.
type File struct {
	Tool *ToolConfig `json:"tool,omitempty"`
	Scan *ModeConfig `json:"scan,omitempty"`
	List *ModeConfig `json:"list,omitempty"`
}

// ToolConfig overrides the external tool invocation.
type ToolConfig struct {
	Name string   `json:"name,omitempty"`
	Args []string `json:"args,omitempty"`
}

// ModeConfig overrides the settings of one mode.
type ModeConfig struct {
	FixturesDir    string        `json:"fixtures_dir,omitempty"`
	Dirs           []string      `json:"dirs,omitempty"`
	Manifest       string        `json:"manifest,omitempty"`
	LockFile       string        `json:"lock_file,omitempty"`
	CacheDir       string        `json:"cache_dir,omitempty"`
	TimeoutSeconds *int64        `json:"timeout_seconds,omitempty"`
	OnFailure      FailurePolicy `json:"on_failure,omitempty"`
	Cleanup        *bool         `json:"cleanup,omitempty"`
}

// FileNames are the config file names looked up in the root, in order.
var FileNames = []string{
	DefaultConfigPrefix + ".json",
	DefaultConfigPrefix + ".yaml",
	DefaultConfigPrefix + ".yml",
}

// Discover returns the first config file present in root, if any.
func Discover(root string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads a JSON or YAML config file and validates it against the schema.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return parse(data)
}

func parse(data []byte) (*File, error) {
	if err := schema.ValidateConfig(data); err != nil {
		return nil, err
	}

	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := f.Scan.checkTimeout(ModeScan); err != nil {
		return nil, err
	}
	if err := f.List.checkTimeout(ModeList); err != nil {
		return nil, err
	}
	return &f, nil
}

// checkTimeout rejects values that would overflow time.Duration.
func (m *ModeConfig) checkTimeout(mode Mode) error {
	if m == nil || m.TimeoutSeconds == nil {
		return nil
	}
	if *m.TimeoutSeconds > MaxTimeoutSeconds {
		return &ValidationError{
			Field:   field(mode, "timeout_seconds"),
			Message: fmt.Sprintf("%d exceeds the maximum of %d", *m.TimeoutSeconds, MaxTimeoutSeconds),
		}
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// schema and one decoder. An empty document becomes an empty object.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(doc)
}

// Apply overlays the file's tool section and the section for s.Mode onto s.
func (f *File) Apply(s *Settings) {
	if f == nil {
		return
	}
	if f.Tool != nil {
		if f.Tool.Name != "" {
			s.Tool = f.Tool.Name
		}
		if f.Tool.Args != nil {
			s.ToolArgs = append([]string(nil), f.Tool.Args...)
		}
	}

	section := f.Scan
	if s.Mode == ModeList {
		section = f.List
	}
	section.apply(s)
}

func (m *ModeConfig) apply(s *Settings) {
	if m == nil {
		return
	}
	if m.FixturesDir != "" {
		s.FixturesDir = m.FixturesDir
	}
	if m.Dirs != nil {
		s.Dirs = append([]string(nil), m.Dirs...)
	}
	if m.Manifest != "" {
		s.Manifest = m.Manifest
	}
	if m.LockFile != "" {
		s.LockFile = m.LockFile
	}
	if m.CacheDir != "" {
		s.CacheDir = m.CacheDir
	}
	if m.TimeoutSeconds != nil {
		s.Timeout = time.Duration(*m.TimeoutSeconds) * time.Second
	}
	if m.OnFailure != "" {
		s.OnFailure = m.OnFailure
	}
	if m.Cleanup != nil {
		s.Cleanup = *m.Cleanup
	}
}
