package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"todo/internal/keyed"
	"todo/internal/storage"
	"todo/internal/task"
)

// seedDB writes tasks to a fresh database and returns the config and db paths.
func seedDB(t *testing.T, tasks ...task.Task) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "todo.db")
	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	store := task.Open(keyed.New(db, nil))
	for _, rec := range tasks {
		added, err := store.Insert(rec)
		require.NoError(t, err)
		if rec.Done {
			store.SetDone(added.ID, true)
		}
	}
	require.NoError(t, store.Flush())
	require.NoError(t, db.Close())
	return filepath.Join(dir, "config.toml"), dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExport_JSON(t *testing.T) {
	cfgPath, dbPath := seedDB(t,
		task.Task{Title: "bread", Priority: task.High},
		task.Task{Title: "milk", Done: true},
	)

	out, err := execute(t, "--config", cfgPath, "--db", dbPath, "export")
	require.NoError(t, err)

	var got []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "bread", got[0].Title)
	assert.Equal(t, task.High, got[0].Priority)
	assert.Equal(t, 1, got[1].ID)
	assert.True(t, got[1].Done)
}

func TestExport_YAML(t *testing.T) {
	cfgPath, dbPath := seedDB(t, task.Task{Title: "bread", Date: "2024-05-01"})

	out, err := execute(t, "--config", cfgPath, "--db", dbPath, "export", "--format", "yaml")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bread", got[0]["title"])
	assert.Equal(t, "2024-05-01", got[0]["date"])
}

func TestExport_UnknownFormat(t *testing.T) {
	cfgPath, dbPath := seedDB(t)
	_, err := execute(t, "--config", cfgPath, "--db", dbPath, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestList_Filter(t *testing.T) {
	cfgPath, dbPath := seedDB(t,
		task.Task{Title: "bread"},
		task.Task{Title: "milk", Done: true},
	)

	out, err := execute(t, "--config", cfgPath, "--db", dbPath, "list", "--filter", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "milk")
	assert.Contains(t, out, "[x]")
	assert.NotContains(t, out, "bread")

	out, err = execute(t, "--config", cfgPath, "--db", dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "bread")
	assert.Contains(t, out, "milk")

	_, err = execute(t, "--config", cfgPath, "--db", dbPath, "list", "--filter", "someday")
	assert.Error(t, err)
}

func TestPrintList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printList(&buf, nil))
	assert.Equal(t, "No tasks.\n", buf.String())
}

func TestWriteTasks_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTasks(&buf, nil, "json"))
	assert.JSONEq(t, "[]", buf.String())
}
