package dataaccess

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jacobbrewer1/lynx/pkg/entities"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (TicketStore, string) {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	path := filepath.Join(t.TempDir(), "tickets.json")
	return NewFileStore(path, l), path
}

func TestFileStore_Load_MissingFile(t *testing.T) {
	store, path := testStore(t)

	tickets, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, tickets)

	// The file should now exist and contain an empty list.
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(got))
}

func TestFileStore_Load_BadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "InvalidJSON",
			content: `{"tickets": [`,
		},
		{
			name:    "NotAList",
			content: `{"number": 1}`,
		},
		{
			name:    "PlainText",
			content: `hello`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := testStore(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			tickets, err := store.Load()
			require.NoError(t, err)
			require.Empty(t, tickets)
		})
	}
}

func TestFileStore_Load_Unreadable(t *testing.T) {
	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	// A directory at the storage path exists but cannot be read as a file.
	store := NewFileStore(t.TempDir(), l)

	tickets, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, tickets)
}

func TestFileStore_SaveAll_RoundTrip(t *testing.T) {
	store, path := testStore(t)

	tickets := []*entities.Ticket{
		{
			Number:       1,
			GuildID:      "guild-1",
			ChannelID:    "chan-1",
			CreatorID:    "user-1",
			Participants: []string{},
			Status:       entities.TicketStatusOpen,
		},
		{
			Number:       2,
			GuildID:      "guild-1",
			ChannelID:    "chan-2",
			CreatorID:    "user-2",
			Participants: []string{"user-3"},
			Status:       entities.TicketStatusClosed,
			ClaimedBy:    "user-4",
		},
	}

	require.NoError(t, store.SaveAll(tickets))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, tickets, got)

	// The file is written pretty-printed with 4-space indentation.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "[\n    {"), "expected 4-space indented output, got: %s", raw)

	// No temp files should be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStore_SaveAll_ReplacesContents(t *testing.T) {
	store, path := testStore(t)

	require.NoError(t, store.SaveAll([]*entities.Ticket{
		{Number: 1, GuildID: "guild-1", ChannelID: "chan-1", CreatorID: "user-1", Participants: []string{}, Status: entities.TicketStatusOpen},
		{Number: 2, GuildID: "guild-1", ChannelID: "chan-2", CreatorID: "user-2", Participants: []string{}, Status: entities.TicketStatusOpen},
	}))

	require.NoError(t, store.SaveAll([]*entities.Ticket{
		{Number: 2, GuildID: "guild-1", ChannelID: "chan-2", CreatorID: "user-2", Participants: []string{}, Status: entities.TicketStatusOpen},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	got := make([]*entities.Ticket, 0)
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	require.Equal(t, 2, got[0].Number)
}

func TestFileStore_SaveAll_Nil(t *testing.T) {
	store, path := testStore(t)

	require.NoError(t, store.SaveAll(nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}

func TestFileStore_Ping(t *testing.T) {
	store, path := testStore(t)

	// The file not existing yet is healthy as long as the directory exists.
	require.NoError(t, store.Ping())

	require.NoError(t, store.SaveAll(nil))
	require.NoError(t, store.Ping())

	missing := NewFileStore(filepath.Join(path, "nope", "tickets.json"), nil)
	require.Error(t, missing.Ping())
}
