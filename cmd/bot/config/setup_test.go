package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTicketingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_channel_id: "chan-listen"
ticketing:
  parent_id: "cat-open"
  closed_parent_id: "cat-closed"
  channel_topic: "Support ticket"
  staff_roles:
    - "role-1"
    - "role-2"
  storage: "/var/lib/lynx/tickets.json"
`), 0o644))

	tc, err := LoadTicketingConfig(path)
	require.NoError(t, err)

	require.Equal(t, "chan-listen", tc.ListenChannelID)
	require.Equal(t, "cat-open", tc.Ticketing.ParentID)
	require.Equal(t, "cat-closed", tc.Ticketing.ClosedParentID)
	require.Equal(t, "Support ticket", tc.Ticketing.ChannelTopic)
	require.Equal(t, []string{"role-1", "role-2"}, tc.Ticketing.StaffRoles)
	require.Equal(t, "/var/lib/lynx/tickets.json", tc.Ticketing.Storage)
}

func TestLoadTicketingConfig_Errors(t *testing.T) {
	_, err := LoadTicketingConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`{not yaml`), 0o644))
	_, err = LoadTicketingConfig(path)
	require.Error(t, err)
}
