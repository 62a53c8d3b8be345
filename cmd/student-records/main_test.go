package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
)

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	store := memory.New()

	require.NoError(t, runDemo(store, &out))

	got := out.String()
	assert.Contains(t, got, `added Student{id=1, name="学生A", phone="11111111111"}`)
	assert.Contains(t, got, `modified Student{id=2, name="学生B修改", phone="22222222220"}`)
	assert.Contains(t, got, "rejected: invalid student data: field name must not be blank")
	assert.Contains(t, got, "rejected: student not found: id 999")
	assert.Contains(t, got, "total 2")

	list, err := store.ListStudents()
	require.NoError(t, err)
	assert.Empty(t, list, "demo ends by clearing the store")
}

func TestNewStore(t *testing.T) {
	for _, backend := range []string{config.StorageMemory, config.StorageSQLite} {
		t.Run(backend, func(t *testing.T) {
			var logs bytes.Buffer
			cfg := &config.Config{Env: "dev", Storage: backend}

			store, closeStore, err := newStore(cfg, setupLogger(cfg.Env, &logs))
			require.NoError(t, err)
			t.Cleanup(func() { closeStore() })

			require.NoError(t, runDemo(store, io.Discard))
			assert.Contains(t, logs.String(), "component=storage")
			assert.Contains(t, logs.String(), "method=AddStudent")
		})
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	setupLogger("prod", &buf).Debug("hidden")
	setupLogger("prod", &buf).Info("shown")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "{"), "prod logs are JSON")

	buf.Reset()
	setupLogger("dev", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "level=DEBUG msg=visible")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["demo"])
}
