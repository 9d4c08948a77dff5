package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/soyunomas/dedup/internal/entities"
	"github.com/soyunomas/dedup/internal/hasher"
	"github.com/soyunomas/dedup/internal/scanner"
)

// RunnerTestSuite cubre el pipeline escaneo -> hashing -> agrupación.
type RunnerTestSuite struct {
	suite.Suite
	dirA string
	dirB string
}

func (s *RunnerTestSuite) SetupTest() {
	base := s.T().TempDir()
	s.dirA = filepath.Join(base, "a")
	s.dirB = filepath.Join(base, "b")
	s.Require().NoError(os.MkdirAll(s.dirA, 0o755))
	s.Require().NoError(os.MkdirAll(s.dirB, 0o755))
}

func (s *RunnerTestSuite) write(dir, name, content string) string {
	path := filepath.Join(dir, name)
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *RunnerTestSuite) run(opts Options) *entities.ScanResult {
	res, err := New(opts).Run(context.Background(), []string{s.dirA, s.dirB})
	s.Require().NoError(err)
	return res
}

func (s *RunnerTestSuite) onlyGroup(res *entities.ScanResult) *entities.DuplicateGroup {
	s.Require().Len(res.Groups, 1)
	for _, g := range res.Groups {
		return g
	}
	return nil
}

// Tres copias de 100 bytes en dos carpetas y un archivo distinto de 50.
func (s *RunnerTestSuite) TestEndToEndGroups() {
	same := strings.Repeat("A", 100)
	s.write(s.dirA, "a", same)
	s.write(s.dirA, "b", same)
	s.write(s.dirB, "c", same)
	d := s.write(s.dirB, "d", strings.Repeat("D", 50))

	res := s.run(Options{Workers: 4})

	g := s.onlyGroup(res)
	s.Equal(3, g.Count())
	s.Equal(int64(200), g.WastedBytes())
	s.Equal(int64(200), res.WastedBytes())
	s.Equal(int64(2), res.DuplicateCount())
	s.Equal(int64(4), res.TotalFiles)
	s.Equal(int64(350), res.TotalBytes)
	for _, f := range g.Files {
		s.NotEqual(d, f.Path)
		s.Equal(g.Hash, f.Hash)
		s.Len(f.Hash, hasher.Blake3.HexLen())
	}
}

func (s *RunnerTestSuite) TestMinSizeExcludesSmallPairs() {
	same := strings.Repeat("x", 500)
	s.write(s.dirA, "one", same)
	s.write(s.dirB, "two", same)

	res := s.run(Options{Filter: scanner.Config{MinSize: 1000}})
	s.Empty(res.Groups)
	s.Zero(res.TotalFiles)
}

func (s *RunnerTestSuite) TestIncludeExtensionGroupsOnlyMatching() {
	s.write(s.dirA, "x.txt", "same")
	s.write(s.dirB, "y.txt", "same")
	s.write(s.dirA, "x.log", "same")
	s.write(s.dirB, "y.log", "same")

	res := s.run(Options{Filter: scanner.Config{IncludeExt: []string{"txt"}}})
	g := s.onlyGroup(res)
	s.Equal(2, g.Count())
	s.Equal(int64(2), res.TotalFiles)
	for _, f := range g.Files {
		s.Equal(".txt", filepath.Ext(f.Path))
	}
}

func (s *RunnerTestSuite) TestGroupsHaveAtLeastTwoMembersOfSameSize() {
	for i := 0; i < 20; i++ {
		content := strings.Repeat(string(rune('a'+i%5)), 10+i%5)
		s.write(s.dirA, filepath.Join("n", string(rune('a'+i))), content)
	}

	res := s.run(Options{Workers: 3})
	s.NotEmpty(res.Groups)
	for _, g := range res.Groups {
		s.GreaterOrEqual(g.Count(), 2)
		for _, f := range g.Files {
			s.Equal(g.Size(), f.Size)
		}
	}
}

// El Keeper por defecto es el primero en orden de descubrimiento,
// sin importar qué worker terminó primero.
func (s *RunnerTestSuite) TestKeeperIsDeterministic() {
	same := strings.Repeat("k", 64)
	first := s.write(s.dirA, "z-last-name", same)
	s.write(s.dirB, "a-first-name", same)
	s.write(s.dirB, "m", same)

	for i := 0; i < 5; i++ {
		g := s.onlyGroup(s.run(Options{Workers: 8}))
		s.Equal(first, g.Keeper().Path)
	}

	g := s.onlyGroup(s.run(Options{Strategy: KeepPath}))
	s.Equal(filepath.Join(s.dirA, "z-last-name"), g.Keeper().Path)
}

func (s *RunnerTestSuite) TestQuickFilterMatchesFullHash() {
	prefix := strings.Repeat("p", hasher.PreHashSize)
	s.write(s.dirA, "dup1", prefix+"same-tail")
	s.write(s.dirB, "dup2", prefix+"same-tail")
	s.write(s.dirA, "near", prefix+"diff-tail")
	s.write(s.dirB, "unique-size", "tiny")

	full := s.run(Options{})
	quick := s.run(Options{QuickFilter: true})

	s.Equal(len(full.Groups), len(quick.Groups))
	s.Equal(full.WastedBytes(), quick.WastedBytes())
	s.Equal(full.TotalFiles, quick.TotalFiles)
	s.Equal(full.TotalBytes, quick.TotalBytes)
	g := s.onlyGroup(quick)
	s.Equal(2, g.Count())
}

func (s *RunnerTestSuite) TestMissingRootIsWarning() {
	s.write(s.dirA, "f1", "same")
	s.write(s.dirA, "f2", "same")

	res, err := New(Options{}).Run(context.Background(), []string{filepath.Join(s.dirA, "ghost"), s.dirA})
	s.Require().NoError(err)
	s.Len(res.Warnings, 1)
	s.Len(res.Groups, 1)
}

func (s *RunnerTestSuite) TestNestedRootsDoNotPairAFileWithItself() {
	only := s.write(s.dirA, "sub/only.txt", "unique content")

	res, err := New(Options{}).Run(context.Background(), []string{s.dirA, filepath.Dir(only), s.dirA})
	s.Require().NoError(err)
	s.Empty(res.Groups)
	s.Equal(int64(1), res.TotalFiles)
}

func (s *RunnerTestSuite) TestEmptyTree() {
	res := s.run(Options{})
	s.Empty(res.Groups)
	s.Zero(res.TotalFiles)
}

func TestRunnerTestSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func TestNewDefaultsWorkers(t *testing.T) {
	assert.Greater(t, New(Options{}).Workers(), 0)
	assert.Equal(t, 3, New(Options{Workers: 3}).Workers())
}

func TestBuildIndexDropsSingletons(t *testing.T) {
	records := []*entities.FileRecord{
		{Path: "a", Hash: "h1", Size: 10},
		{Path: "b", Hash: "h2", Size: 20},
		{Path: "c", Hash: "h1", Size: 10},
	}
	groups, err := buildIndex(records)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	g := groups["h1"]
	require.NotNil(t, g)
	assert.Equal(t, "a", g.Keeper().Path, "se conserva el orden de llegada")
	assert.Equal(t, "c", g.Files[1].Path)
}

func TestBuildIndexIgnoresRepeatedPaths(t *testing.T) {
	records := []*entities.FileRecord{
		{Path: "/data/sub/only.txt", Hash: "h1", Size: 14},
		{Path: "/data/sub/./only.txt", Hash: "h1", Size: 14},
	}
	groups, err := buildIndex(records)
	require.NoError(t, err)
	assert.Empty(t, groups, "un archivo no es duplicado de sí mismo")
}

func TestBuildIndexRejectsSizeMismatch(t *testing.T) {
	records := []*entities.FileRecord{
		{Path: "a", Hash: "h1", Size: 10},
		{Path: "b", Hash: "h1", Size: 11},
	}
	_, err := buildIndex(records)
	assert.ErrorIs(t, err, ErrInconsistentGroup)
}

func TestSortGroupsStrategies(t *testing.T) {
	now := time.Now()
	mk := func() map[string]*entities.DuplicateGroup {
		return map[string]*entities.DuplicateGroup{
			"h": {Hash: "h", Files: []*entities.FileRecord{
				{Path: "/b/long/path", ModTime: now, Order: 2},
				{Path: "/a", ModTime: now.Add(-time.Hour), Order: 1},
				{Path: "/c/x", ModTime: now.Add(time.Hour), Order: 0},
			}},
		}
	}

	cases := map[KeepStrategy]string{
		KeepFirstSeen:    "/c/x",
		KeepShortestPath: "/a",
		KeepLongestPath:  "/b/long/path",
		KeepOldest:       "/a",
		KeepNewest:       "/c/x",
		KeepPath:         "/a",
	}
	for strategy, want := range cases {
		groups := mk()
		sortGroups(groups, strategy)
		assert.Equal(t, want, groups["h"].Keeper().Path, strategy.String())
	}
}

func TestParseKeepStrategy(t *testing.T) {
	for i, name := range strategyNames {
		got, err := ParseKeepStrategy(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, KeepStrategy(i), got)
	}
	got, err := ParseKeepStrategy("")
	require.NoError(t, err)
	assert.Equal(t, KeepFirstSeen, got)

	_, err = ParseKeepStrategy("biggest")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func feed(items ...result[int]) <-chan result[int] {
	ch := make(chan result[int], len(items))
	for _, it := range items {
		ch <- it
	}
	close(ch)
	return ch
}

func TestCollectAbortReturnsFirstErrorAfterDraining(t *testing.T) {
	r := New(Options{OnError: scanner.Abort})
	boom := errors.New("boom")

	var kept int
	_, err := collect(r, "test", feed(
		result[int]{cand: scanner.Candidate{Path: "a"}, val: 1},
		result[int]{cand: scanner.Candidate{Path: "b"}, err: boom},
		result[int]{cand: scanner.Candidate{Path: "c"}, val: 3},
	), 3, func(scanner.Candidate, int) { kept++ })

	assert.ErrorIs(t, err, ErrHash)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, kept, "las tareas en vuelo terminan antes de propagar el error")
}

func TestCollectSkipOmitsFailedFiles(t *testing.T) {
	r := New(Options{OnError: scanner.Skip})

	var kept []string
	skipped, err := collect(r, "test", feed(
		result[int]{cand: scanner.Candidate{Path: "a", Size: 5}, val: 1},
		result[int]{cand: scanner.Candidate{Path: "b", Size: 7}, err: errors.New("unreadable")},
	), 2, func(c scanner.Candidate, _ int) { kept = append(kept, c.Path) })

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, kept)
	require.Len(t, skipped, 1)
	assert.Equal(t, "b", skipped[0].Path)
}

func TestCollectSkipStillAbortsOnCancel(t *testing.T) {
	r := New(Options{OnError: scanner.Skip})
	_, err := collect(r, "test", feed(
		result[int]{cand: scanner.Candidate{Path: "a"}, err: context.Canceled},
	), 1, func(scanner.Candidate, int) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHashAllSkipPolicyDiscountsTotals(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok")
	require.NoError(t, os.WriteFile(ok, []byte("data"), 0o644))

	r := New(Options{OnError: scanner.Skip, Workers: 2})
	records, skipped, err := r.hashAll(context.Background(), []scanner.Candidate{
		{Path: ok, Size: 4},
		{Path: filepath.Join(dir, "vanished"), Size: 9, Order: 1},
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	require.Len(t, skipped, 1)

	res := entities.NewScanResult()
	res.TotalFiles, res.TotalBytes = 2, 13
	r.discount(res, skipped)
	assert.Equal(t, int64(1), res.TotalFiles)
	assert.Equal(t, int64(4), res.TotalBytes)
}

func TestHashAllAbortPolicyFails(t *testing.T) {
	dir := t.TempDir()
	r := New(Options{Workers: 2})
	_, _, err := r.hashAll(context.Background(), []scanner.Candidate{
		{Path: filepath.Join(dir, "vanished")},
	})
	assert.ErrorIs(t, err, ErrHash)
	assert.ErrorIs(t, err, hasher.ErrRead)
}

type countingProgress struct {
	starts, incs, stops int
}

func (p *countingProgress) Start(string, int) { p.starts++ }
func (p *countingProgress) Increment()        { p.incs++ }
func (p *countingProgress) Stop()             { p.stops++ }

func TestProgressIsReported(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("same"), 0o644))
	}
	p := &countingProgress{}
	_, err := New(Options{Progress: p}).Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 1, p.starts)
	assert.Equal(t, 3, p.incs)
	assert.Equal(t, 1, p.stops)
}
