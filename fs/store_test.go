package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/vanity"
	"github.com/fwojciec/vanity/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: File Result Store
// Results live in valid_<mode>.json and invalid_<mode>.json and survive
// across runs.

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResultStore_LoadMissingFilesIsEmpty(t *testing.T) {
	t.Parallel()

	// Given an empty output directory
	store := fs.NewResultStore(t.TempDir(), vanity.ModeProfile)

	// When I load the state
	state, err := store.Load(context.Background())

	// Then it is empty
	require.NoError(t, err)
	available, unavailable := state.Counts()
	assert.Zero(t, available)
	assert.Zero(t, unavailable)
}

func TestResultStore_LoadNormalizesIdentifiers(t *testing.T) {
	t.Parallel()

	// Given files written by hand with mixed case and a short id
	dir := t.TempDir()
	writeFile(t, fs.ValidPath(dir, vanity.ModeGroup), `["ABC", "xy"]`)
	writeFile(t, fs.InvalidPath(dir, vanity.ModeGroup), `{"Def": "2026-10-01", "abc": "2026-10-02"}`)
	store := fs.NewResultStore(dir, vanity.ModeGroup)

	// When I load the state
	state, err := store.Load(context.Background())

	// Then identifiers are normalized, short ones dropped and available wins
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, state.Available())
	assert.Equal(t, map[string]string{"def": "2026-10-01"}, state.Unavailable())
}

func TestResultStore_LoadRejectsMalformedFiles(t *testing.T) {
	t.Parallel()

	// Given an available file that is not a JSON array
	dir := t.TempDir()
	writeFile(t, fs.ValidPath(dir, vanity.ModeProfile), `{"abc": true}`)
	store := fs.NewResultStore(dir, vanity.ModeProfile)

	// When I load the state
	_, err := store.Load(context.Background())

	// Then loading fails as invalid
	require.Error(t, err)
	assert.Equal(t, vanity.EINVALID, vanity.ErrorCode(err))
}

func TestResultStore_LoadKeepsMalformedDates(t *testing.T) {
	t.Parallel()

	// Given a stored date that does not parse
	dir := t.TempDir()
	writeFile(t, fs.InvalidPath(dir, vanity.ModeProfile), `{"abc": "yesterday"}`)
	store := fs.NewResultStore(dir, vanity.ModeProfile)

	// When I load the state
	state, err := store.Load(context.Background())

	// Then the date is kept verbatim for the checker to report
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"abc": "yesterday"}, state.Unavailable())
}

func TestResultStore_PersistWritesIndentedFiles(t *testing.T) {
	t.Parallel()

	// Given a state with one entry of each kind
	dir := t.TempDir()
	store := fs.NewResultStore(dir, vanity.ModeProfile)
	state := vanity.NewState()
	state.MarkAvailable("ab1")
	state.MarkUnavailable("xy9", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	// When I persist it
	err := store.Persist(context.Background(), state)
	require.NoError(t, err)

	// Then both files hold 4-space indented JSON
	valid, err := os.ReadFile(filepath.Join(dir, "valid_profile.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n    \"ab1\"\n]", string(valid))

	invalid, err := os.ReadFile(filepath.Join(dir, "invalid_profile.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"xy9\": \"2026-10-17\"\n}", string(invalid))
}

func TestResultStore_PersistWritesEmptyCollections(t *testing.T) {
	t.Parallel()

	// Given an empty state
	dir := t.TempDir()
	store := fs.NewResultStore(dir, vanity.ModeGroup)

	// When I persist it
	require.NoError(t, store.Persist(context.Background(), vanity.NewState()))

	// Then both files exist and are empty collections
	valid, err := os.ReadFile(fs.ValidPath(dir, vanity.ModeGroup))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(valid))

	invalid, err := os.ReadFile(fs.InvalidPath(dir, vanity.ModeGroup))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(invalid))
}

func TestResultStore_PersistMergesWithDisk(t *testing.T) {
	t.Parallel()

	// Given files written by an earlier run
	dir := t.TempDir()
	writeFile(t, fs.ValidPath(dir, vanity.ModeProfile), `["old"]`)
	writeFile(t, fs.InvalidPath(dir, vanity.ModeProfile), `{"abc": "2026-01-01", "def": "2026-01-01"}`)
	store := fs.NewResultStore(dir, vanity.ModeProfile)

	// And a run state that found abc available and rechecked def
	state := vanity.NewState()
	state.MarkAvailable("abc")
	state.MarkUnavailable("def", time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))

	// When I persist it
	require.NoError(t, store.Persist(context.Background(), state))

	// Then nothing from the earlier run is lost and the run's results win
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "old"}, loaded.Available())
	assert.Equal(t, map[string]string{"def": "2026-10-17"}, loaded.Unavailable())
}

func TestResultStore_PersistLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	// Given a store
	dir := t.TempDir()
	store := fs.NewResultStore(dir, vanity.ModeProfile)
	state := vanity.NewState()
	state.MarkAvailable("abc")

	// When I persist twice
	require.NoError(t, store.Persist(context.Background(), state))
	require.NoError(t, store.Persist(context.Background(), state))

	// Then only the two result files remain
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"invalid_profile.json", "valid_profile.json"}, names)
}

func TestResultStore_ModesAreSeparate(t *testing.T) {
	t.Parallel()

	// Given results persisted in profile mode
	dir := t.TempDir()
	state := vanity.NewState()
	state.MarkAvailable("abc")
	require.NoError(t, fs.NewResultStore(dir, vanity.ModeProfile).Persist(context.Background(), state))

	// When I load group mode
	loaded, err := fs.NewResultStore(dir, vanity.ModeGroup).Load(context.Background())

	// Then group mode sees none of them
	require.NoError(t, err)
	assert.Empty(t, loaded.Available())
}
