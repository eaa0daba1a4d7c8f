package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults_Scan(t *testing.T) {
	s := Defaults(ModeScan)

	if s.FixturesDir != "tests/data/pixi" {
		t.Errorf("FixturesDir = %q, want %q", s.FixturesDir, "tests/data/pixi")
	}
	if s.Timeout != 300*time.Second {
		t.Errorf("Timeout = %v, want 5m0s", s.Timeout)
	}
	if s.OnFailure != ContinueOnFailure {
		t.Errorf("OnFailure = %q, want %q", s.OnFailure, ContinueOnFailure)
	}
	if !s.Cleanup {
		t.Error("Cleanup = false, want true")
	}
	if got := s.Command(); !reflect.DeepEqual(got, []string{"pixi", "install"}) {
		t.Errorf("Command() = %v, want [pixi install]", got)
	}
}

func TestDefaults_List(t *testing.T) {
	s := Defaults(ModeList)

	if s.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 (unbounded)", s.Timeout)
	}
	if s.OnFailure != StopOnFailure {
		t.Errorf("OnFailure = %q, want %q", s.OnFailure, StopOnFailure)
	}
	if s.Cleanup {
		t.Error("Cleanup = true, want false")
	}
	if !reflect.DeepEqual(s.Dirs, DefaultListDirs) {
		t.Errorf("Dirs = %v, want %v", s.Dirs, DefaultListDirs)
	}

	// Mutating the returned slice must not leak into the defaults.
	s.Dirs[0] = "changed"
	if DefaultListDirs[0] == "changed" {
		t.Error("Defaults() aliased DefaultListDirs")
	}
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixturelock.json", `{
		"tool": {"name": "pixi-dev", "args": ["install", "--frozen"]},
		"scan": {"fixtures_dir": "fixtures", "timeout_seconds": 60, "cleanup": false}
	}`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := Defaults(ModeScan)
	f.Apply(&s)

	if s.Tool != "pixi-dev" {
		t.Errorf("Tool = %q, want %q", s.Tool, "pixi-dev")
	}
	if !reflect.DeepEqual(s.ToolArgs, []string{"install", "--frozen"}) {
		t.Errorf("ToolArgs = %v", s.ToolArgs)
	}
	if s.FixturesDir != "fixtures" {
		t.Errorf("FixturesDir = %q, want %q", s.FixturesDir, "fixtures")
	}
	if s.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m0s", s.Timeout)
	}
	if s.Cleanup {
		t.Error("Cleanup = true, want false")
	}
	if s.OnFailure != ContinueOnFailure {
		t.Errorf("OnFailure = %q, want default %q", s.OnFailure, ContinueOnFailure)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixturelock.yaml", `
list:
  fixtures_dir: docs/fixtures
  dirs:
    - one
    - two
  timeout_seconds: 30
  on_failure: continue
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := Defaults(ModeList)
	f.Apply(&s)

	if !reflect.DeepEqual(s.Dirs, []string{"one", "two"}) {
		t.Errorf("Dirs = %v, want [one two]", s.Dirs)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", s.Timeout)
	}
	if s.OnFailure != ContinueOnFailure {
		t.Errorf("OnFailure = %q, want %q", s.OnFailure, ContinueOnFailure)
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixturelock.yml", "# nothing configured\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Tool != nil || f.Scan != nil || f.List != nil {
		t.Errorf("Load() = %+v, want empty file", f)
	}
}

func TestLoad_SectionForOtherModeIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixturelock.json", `{"list": {"dirs": ["x"]}}`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := Defaults(ModeScan)
	f.Apply(&s)
	if s.Dirs != nil {
		t.Errorf("scan Dirs = %v, want nil", s.Dirs)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown key", "fixturelock.json", `{"scan": {"retries": 2}}`, "config validation failed"},
		{"bad json", "fixturelock.json", `{"scan":`, "invalid JSON"},
		{"bad yaml", "fixturelock.yaml", "scan: [unclosed", "failed to parse config file"},
		{"wrong type in yaml", "fixturelock.yaml", "scan:\n  cleanup: maybe\n", "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	if _, ok := Discover(dir); ok {
		t.Error("Discover() found a config in an empty directory")
	}

	writeFile(t, dir, "fixturelock.yaml", "{}\n")
	writeFile(t, dir, "fixturelock.json", "{}\n")

	path, ok := Discover(dir)
	if !ok {
		t.Fatal("Discover() found nothing")
	}
	if filepath.Base(path) != "fixturelock.json" {
		t.Errorf("Discover() = %q, want fixturelock.json to win", path)
	}
}

func TestResolve_Precedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fixturelock.json", `{"tool": {"name": "from-file"}, "scan": {"timeout_seconds": 10}}`)

	tool := "from-flag"
	policy := StopOnFailure
	s, path, err := Resolve(Options{
		Mode: ModeScan,
		Root: root,
		Overrides: Overrides{
			Tool:      &tool,
			OnFailure: &policy,
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if filepath.Base(path) != "fixturelock.json" {
		t.Errorf("config path = %q", path)
	}
	if s.Tool != "from-flag" {
		t.Errorf("Tool = %q, want flag to win", s.Tool)
	}
	if s.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want file value 10s", s.Timeout)
	}
	if s.OnFailure != StopOnFailure {
		t.Errorf("OnFailure = %q, want %q", s.OnFailure, StopOnFailure)
	}
	if s.SearchDir() != filepath.Join(root, "tests", "data", "pixi") {
		t.Errorf("SearchDir() = %q", s.SearchDir())
	}
}

func TestResolve_ExplicitConfigMissing(t *testing.T) {
	_, _, err := Resolve(Options{
		Mode:       ModeScan,
		Root:       t.TempDir(),
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err == nil {
		t.Error("Resolve() with missing explicit config should fail")
	}
}

func TestResolve_UnknownMode(t *testing.T) {
	if _, _, err := Resolve(Options{Mode: "both"}); err == nil {
		t.Error("Resolve() with unknown mode should fail")
	}
}

func TestResolve_InvalidOverride(t *testing.T) {
	timeout := -time.Second
	_, _, err := Resolve(Options{
		Mode:      ModeScan,
		Root:      t.TempDir(),
		Overrides: Overrides{Timeout: &timeout},
	})
	if err == nil {
		t.Error("Resolve() with negative timeout should fail")
	}
}

func TestResolve_TimeoutOverflow(t *testing.T) {
	tests := []struct {
		name    string
		seconds string
		ok      bool
	}{
		{"largest representable", "9223372036", true},
		{"one past the maximum", "9223372037", false},
		{"wraps to a short duration", "18446744074", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, "fixturelock.json", `{"scan": {"timeout_seconds": `+tt.seconds+`}}`)

			s, _, err := Resolve(Options{Mode: ModeScan, Root: root})
			if !tt.ok {
				if err == nil {
					t.Fatalf("Resolve() timeout = %v, want an error", s.Timeout)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if want := time.Duration(MaxTimeoutSeconds) * time.Second; s.Timeout != want {
				t.Errorf("Timeout = %v, want %v", s.Timeout, want)
			}
		})
	}
}

func TestModeConfig_CheckTimeout(t *testing.T) {
	over := int64(MaxTimeoutSeconds + 1)
	err := (&ModeConfig{TimeoutSeconds: &over}).checkTimeout(ModeList)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("checkTimeout() error = %v, want ValidationError", err)
	}
	if ve.Field != "list.timeout_seconds" {
		t.Errorf("Field = %q, want list.timeout_seconds", ve.Field)
	}

	limit := int64(MaxTimeoutSeconds)
	if err := (&ModeConfig{TimeoutSeconds: &limit}).checkTimeout(ModeScan); err != nil {
		t.Errorf("checkTimeout(max) error = %v", err)
	}
	if err := (*ModeConfig)(nil).checkTimeout(ModeScan); err != nil {
		t.Errorf("checkTimeout(nil) error = %v", err)
	}
}

func TestSettings_SearchDirAbsolute(t *testing.T) {
	abs := t.TempDir()
	s := Defaults(ModeScan)
	s.Root = "/elsewhere"
	s.FixturesDir = abs

	if got := s.SearchDir(); got != abs {
		t.Errorf("SearchDir() = %q, want %q", got, abs)
	}
}
