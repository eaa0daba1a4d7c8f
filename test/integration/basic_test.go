package integration

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	"github.com/Serapieum-of-alex/github-actions/internal/fixture"
)

func TestScanFixtureTree(t *testing.T) {
	t.Parallel()

	settings, _, err := config.Resolve(config.Options{Mode: config.ModeScan, Root: fixturesDir()})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	fixtures, err := fixture.Scan(settings.SearchDir(), settings.Manifest)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{".hidden", "simple", "with-deps"}
	if got := fixture.Names(fixtures); !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() names = %v, want %v", got, want)
	}
}

func TestListFixtureTree(t *testing.T) {
	t.Parallel()

	settings, _, err := config.Resolve(config.Options{Mode: config.ModeList, Root: fixturesDir()})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	fixtures, missing := fixture.Resolve(settings.SearchDir(), settings.Dirs)

	want := []string{"test-pull-request-pixi", "test-package-manager-commands"}
	if got := fixture.Names(fixtures); !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() names = %v, want %v", got, want)
	}
	wantMissing := []string{filepath.Join(settings.SearchDir(), "test-release-trigger-pixi")}
	if !reflect.DeepEqual(missing, wantMissing) {
		t.Errorf("Resolve() missing = %v, want %v", missing, wantMissing)
	}
}
