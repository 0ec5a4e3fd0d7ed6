package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseduty/internal/model"
)

func sampleState() model.State {
	return model.State{
		AnchorSunday:  "2026-01-18",
		LastRunSunday: "2026-02-01",
		BonusCounts:   map[string]int{"SD_HALL_FLOOR": 2},
		TaskCounts:    map[string]map[string]int{"Alex": {"T1": 3}},
		LastWeekTasks: map[string]map[string]int{"Bob": {"T2": 1}},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chore_state.json")

	require.NoError(t, Save(path, sampleState()))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestLoad_MissingFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, model.State{}, got)
}

func TestSave_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "chore_state.json")

	require.NoError(t, Save(path, sampleState()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSave_CreatesBackupOnOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chore_state.json")

	first := sampleState()
	require.NoError(t, Save(path, first))

	second := first
	second.LastRunSunday = "2026-02-08"
	require.NoError(t, Save(path, second))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-08", got.LastRunSunday)

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Contains(t, string(bak), "2026-02-01")
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chore_state.json")

	require.NoError(t, Save(path, sampleState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "houseduty-tmp")
	}
}

func TestLoad_CorruptedFileQuarantinedAndFresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chore_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, model.State{}, got)

	// Original moved aside, not left in place.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Join(dir, "quarantine"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "chore_state.json")
	assert.Contains(t, entries[0].Name(), ".corrupt")
}

func TestLoadReadOnly_CorruptedFileLeftInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chore_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	got, err := LoadReadOnly(path, nil)
	require.NoError(t, err)
	assert.Equal(t, model.State{}, got)

	// The corrupted file stays exactly where it was, byte for byte.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))

	_, err = os.Stat(filepath.Join(dir, "quarantine"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadReadOnly_MissingFileStartsFresh(t *testing.T) {
	got, err := LoadReadOnly(filepath.Join(t.TempDir(), "nope.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.State{}, got)
}

func TestLoad_CorruptedFileRestoresBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chore_state.json")

	require.NoError(t, Save(path, sampleState()))
	require.NoError(t, Save(path, sampleState())) // second save creates .bak

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	// The live file is usable again after the restore.
	again, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), again)
}
