package ticketing

import (
	"github.com/Jacobbrewer1/discordgo"
)

// Session is the subset of the discord session that the ticket manager uses.
// *discordgo.Session satisfies it; tests supply a fake.
type Session interface {
	// Guild gets a guild by ID.
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)

	// User gets a user by ID.
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)

	// GuildMember gets a member of a guild by ID.
	GuildMember(guildID string, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)

	// GuildRoles gets all roles in a guild.
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	// Channel gets a channel by ID.
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// GuildChannelCreateComplex creates a channel in a guild.
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// ChannelEditComplex edits a channel.
	ChannelEditComplex(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// ChannelDelete deletes a channel.
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// ChannelPermissionSet creates or updates a permission overwrite on a channel.
	ChannelPermissionSet(channelID string, targetID string, targetType discordgo.PermissionOverwriteType, allow int64, deny int64, options ...discordgo.RequestOption) error

	// ChannelPermissionDelete removes a permission overwrite from a channel.
	ChannelPermissionDelete(channelID string, targetID string, options ...discordgo.RequestOption) error
}

// The real session has to keep satisfying the interface.
var _ Session = (*discordgo.Session)(nil)
