package ticketing

import (
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
)

// openTicketOverwrites is the permission set for an open ticket channel. The
// creator and any staff roles that resolve can use the channel; everyone else
// cannot see it.
func (m *Manager) openTicketOverwrites(guildID string, creatorID string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:    guildID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: 0,
			Deny:  discordgo.PermissionAll,
		},
		// The creator of the ticket can see the ticket.
		{
			ID:    creatorID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		},
	}

	return append(overwrites, m.staffOverwrites(guildID)...)
}

// closedTicketOverwrites is the permission set for a closed ticket channel.
// The creator loses access; staff keep it.
func (m *Manager) closedTicketOverwrites(guildID string, creatorID string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:    guildID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: 0,
			Deny:  discordgo.PermissionAll,
		},
		// The creator can no longer use the ticket.
		{
			ID:    creatorID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: 0,
			Deny:  discordgo.PermissionAllText,
		},
	}

	return append(overwrites, m.staffOverwrites(guildID)...)
}

// staffOverwrites grants access for every configured staff role that resolves
// in the guild. Roles that no longer exist are skipped.
func (m *Manager) staffOverwrites(guildID string) []*discordgo.PermissionOverwrite {
	if len(m.cfg.StaffRoles) == 0 {
		return nil
	}

	roles, err := m.s.GuildRoles(guildID)
	if err != nil {
		m.l.Warn("Error getting guild roles, staff overwrites will be skipped",
			slog.String(logging.KeyError, err.Error()))
		return nil
	}

	known := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		known[r.ID] = struct{}{}
	}

	overwrites := make([]*discordgo.PermissionOverwrite, 0, len(m.cfg.StaffRoles))
	for _, roleID := range m.cfg.StaffRoles {
		if _, ok := known[roleID]; !ok {
			continue
		}
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		})
	}
	return overwrites
}
