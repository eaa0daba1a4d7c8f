package regen

import "github.com/Serapieum-of-alex/github-actions/internal/fixture"

// PlannedFixture describes what a run would do to one fixture.
type PlannedFixture struct {
	Fixture  fixture.Fixture
	HasLock  bool // a stale lock file would be deleted
	HasCache bool // the cache directory would be removed after a successful run
}

// Plan reports the lock and cache state of each fixture without changing anything.
// Paths whose state cannot be read are reported as absent.
func (p *Pipeline) Plan(fixtures []fixture.Fixture) []PlannedFixture {
	planned := make([]PlannedFixture, 0, len(fixtures))
	for _, f := range fixtures {
		hasLock, _ := p.fsys.Exists(f.Path(p.settings.LockFile))
		hasCache, _ := p.fsys.Exists(f.Path(p.settings.CacheDir))
		planned = append(planned, PlannedFixture{
			Fixture:  f,
			HasLock:  hasLock,
			HasCache: hasCache,
		})
	}
	return planned
}
