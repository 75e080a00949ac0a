package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/cardbox/internal/flashcards"
	"github.com/at-ishikawa/cardbox/internal/testutil"
)

func TestNewDeckCommand(t *testing.T) {
	cmd := newDeckCommand()

	assert.Equal(t, "deck", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewDeckCreateCommand_RunE(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	cmd := newDeckCommand()
	cmd.SetArgs([]string{"create", "Biology", "--category", "Science", "--color", "#3B82F6"})
	require.NoError(t, cmd.Execute())

	state, err := flashcards.LoadState(filepath.Join(tmpDir, "data", "flashcards.yml"))
	require.NoError(t, err)
	require.Len(t, state.Decks, 1)
	assert.Equal(t, "Biology", state.Decks[0].Name)
	assert.Equal(t, "Science", state.Decks[0].Category)
	assert.Equal(t, "#3B82F6", state.Decks[0].Color)
}

func TestNewDeckUpdateCommand_RunE(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	statePath := filepath.Join(tmpDir, "data", "flashcards.yml")
	testutil.CreateStateFile(t, statePath)

	cmd := newDeckCommand()
	cmd.SetArgs([]string{"update", "Test Deck", "--name", "Renamed", "--category", "Updated"})
	require.NoError(t, cmd.Execute())

	state, err := flashcards.LoadState(statePath)
	require.NoError(t, err)
	require.Len(t, state.Decks, 1)
	assert.Equal(t, "Renamed", state.Decks[0].Name)
	assert.Equal(t, "Updated", state.Decks[0].Category)
	// untouched fields keep their values
	assert.Equal(t, "#3B82F6", state.Decks[0].Color)
}

func TestNewDeckDeleteCommand_RunE(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	statePath := filepath.Join(tmpDir, "data", "flashcards.yml")
	testutil.CreateStateFile(t, statePath, testutil.WithSessions(2))

	cmd := newDeckCommand()
	cmd.SetArgs([]string{"delete", "Test Deck"})
	require.NoError(t, cmd.Execute())

	state, err := flashcards.LoadState(statePath)
	require.NoError(t, err)
	assert.Empty(t, state.Decks)
	assert.Empty(t, state.Flashcards)
	// session history survives the deck
	assert.Len(t, state.StudySessions, 2)
}

func TestNewDeckCommand_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	setConfigFile(t, cfgPath)

	tests := []struct {
		name string
		args []string
	}{
		{name: "update", args: []string{"update", "nonexistent", "--name", "x"}},
		{name: "delete", args: []string{"delete", "nonexistent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newDeckCommand()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "not found")
		})
	}
}

func TestNewDeckCommand_InvalidConfig(t *testing.T) {
	cfgPath := setupBrokenConfigFile(t)
	setConfigFile(t, cfgPath)

	cmd := newDeckCommand()
	cmd.SetArgs([]string{"list"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}
