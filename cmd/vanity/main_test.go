package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/vanity"
	main "github.com/fwojciec/vanity/cmd/vanity"
	"github.com/fwojciec/vanity/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace lays out the directories the check command reads and writes.
type workspace struct {
	root        string
	configDir   string
	wordlistDir string
	outputDir   string
}

func newWorkspace(t *testing.T, wordlist string) workspace {
	t.Helper()
	root := t.TempDir()
	ws := workspace{
		root:        root,
		configDir:   filepath.Join(root, "config"),
		wordlistDir: filepath.Join(root, "wordlists"),
		outputDir:   filepath.Join(root, "output"),
	}
	require.NoError(t, os.MkdirAll(ws.configDir, 0755))
	require.NoError(t, os.MkdirAll(ws.wordlistDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.wordlistDir, "wordlist.json"), []byte(wordlist), 0644))
	return ws
}

func (ws workspace) args(extra ...string) []string {
	args := []string{
		"check",
		"--config-dir", ws.configDir,
		"--wordlist-dir", ws.wordlistDir,
		"--output-dir", ws.outputDir,
	}
	return append(args, extra...)
}

func (ws workspace) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws.outputDir, name))
	require.NoError(t, err)
	return string(data)
}

// tableResolver answers from a fixed table; unknown identifiers are taken.
func tableResolver(available ...string) *mock.Resolver {
	free := make(map[string]bool, len(available))
	for _, id := range available {
		free[id] = true
	}
	return &mock.Resolver{
		ResolveFn: func(_ context.Context, id string) (vanity.Resolution, error) {
			if free[id] {
				return vanity.Resolution{Verdict: vanity.VerdictAvailable}, nil
			}
			return vanity.Resolution{Verdict: vanity.VerdictTaken}, nil
		},
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "vanity")
	assert.Contains(t, stdout.String(), "check")
	assert.Contains(t, stdout.String(), "history")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsUnknownMode(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"check", "clan"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Check(t *testing.T) {
	t.Parallel()

	t.Run("writes result files and the activity log", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["AB1", "xy9", "ab", "admin"]`)
		require.NoError(t, os.WriteFile(filepath.Join(ws.configDir, "skiplist_profile.json"), []byte(`["admin"]`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(ws.configDir, "config.json"), []byte(`{"api_key": "k", "retry_delay": 0}`), 0644))

		m := main.NewMain()
		m.Resolver = tableResolver("ab1")
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), ws.args("profile"), &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, "[\n    \"ab1\"\n]", ws.read(t, "valid_profile.json"))
		assert.Contains(t, ws.read(t, "invalid_profile.json"), `"xy9": "`)
		assert.Contains(t, stdout.String(), "Available: 1")
		assert.Contains(t, stdout.String(), "Unavailable: 1")

		activity := ws.read(t, "activity.log")
		assert.Contains(t, activity, "check complete")
		assert.Contains(t, activity, "reason=\"in skip set\"")
		assert.Contains(t, activity, "reason=\"too short\"")
	})

	t.Run("group mode needs no credential", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["grp"]`)

		m := main.NewMain()
		m.Resolver = tableResolver("grp")
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), ws.args("group", "--credential", ""), &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, "[\n    \"grp\"\n]", ws.read(t, "valid_group.json"))
	})

	t.Run("profile mode without a credential fails before checking", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["abc"]`)

		m := main.NewMain()
		m.Resolver = &mock.Resolver{
			ResolveFn: func(_ context.Context, id string) (vanity.Resolution, error) {
				t.Errorf("unexpected lookup for %q", id)
				return vanity.Resolution{}, nil
			},
		}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), ws.args("profile", "--credential", ""), &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, vanity.EINVALID, vanity.ErrorCode(err))
		assert.Contains(t, stderr.String(), "credential required")
	})

	t.Run("missing wordlist fails", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `[]`)

		m := main.NewMain()
		m.Resolver = tableResolver()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), ws.args("group", "--wordlist", "missing.json"), &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, vanity.ENOTFOUND, vanity.ErrorCode(err))
	})

	t.Run("second run leaves results unchanged", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["ab1", "xy9"]`)

		run := func() {
			m := main.NewMain()
			m.Resolver = tableResolver("ab1")
			var stdout, stderr bytes.Buffer
			require.NoError(t, m.Run(context.Background(), ws.args("group"), &stdout, &stderr), stderr.String())
		}

		run()
		valid, invalid := ws.read(t, "valid_group.json"), ws.read(t, "invalid_group.json")
		run()

		assert.Equal(t, valid, ws.read(t, "valid_group.json"))
		assert.Equal(t, invalid, ws.read(t, "invalid_group.json"))
	})

	t.Run("writes metrics when asked", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["abc"]`)
		metrics := filepath.Join(ws.root, "vanity.prom")

		m := main.NewMain()
		m.Resolver = tableResolver("abc")
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), ws.args("group", "--metrics-file", metrics), &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		data, err := os.ReadFile(metrics)
		require.NoError(t, err)
		assert.Contains(t, string(data), `vanity_checks_total{mode="group",outcome="available"} 1`)
		assert.Contains(t, string(data), `vanity_available_identifiers{mode="group"} 1`)
	})
}

func TestMain_Run_Database(t *testing.T) {
	t.Parallel()

	t.Run("records runs and lists them in history", func(t *testing.T) {
		t.Parallel()

		ws := newWorkspace(t, `["ab1", "xy9"]`)
		dbPath := filepath.Join(ws.root, "vanity.db")

		m := main.NewMain()
		m.Resolver = tableResolver("ab1")
		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), ws.args("group", "--db", dbPath), &stdout, &stderr)
		require.NoError(t, err, stderr.String())

		_, statErr := os.Stat(filepath.Join(ws.outputDir, "valid_group.json"))
		assert.True(t, os.IsNotExist(statErr), "JSON files are not written when a database is used")

		history := main.NewMain()
		stdout.Reset()
		err = history.Run(context.Background(), []string{"history", "--db", dbPath}, &stdout, &stderr)
		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "group")
		assert.Contains(t, stdout.String(), "candidates=2 available=1 unavailable=1")
	})

	t.Run("history without a database fails", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"history", "--db", ""}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "requires a database")
	})
}
