package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/lynx/cmd/bot/config"
	"github.com/Jacobbrewer1/lynx/pkg/entities"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
	"github.com/Jacobbrewer1/lynx/pkg/messages"
	"github.com/Jacobbrewer1/lynx/pkg/ticketing"
	"golang.org/x/time/rate"
)

const (
	// OpenTicketButtonID is the ID for the open ticket button.
	OpenTicketButtonID = "open_ticket_button"

	// ClaimTicketButtonID is the ID for the claim ticket button.
	ClaimTicketButtonID = "claim_ticket_button"

	// CloseTicketButtonID is the ID for the close ticket button.
	CloseTicketButtonID = "close_ticket_button"

	// ReopenTicketButtonID is the ID for the reopen ticket button.
	ReopenTicketButtonID = "reopen_ticket_button"

	// DeleteTicketButtonID is the ID for the delete ticket button.
	DeleteTicketButtonID = "delete_ticket_button"
)

const (
	// ClaimEmoji is the emoji that will be used for the claim button. (Ticket)
	ClaimEmoji = "\U0001F3AB"

	// CloseEmoji is the emoji that will be used for the close button. (Padlock)
	CloseEmoji = "\U0001F510"

	// ReopenEmoji is the emoji that will be used for the reopen button. (Open padlock)
	ReopenEmoji = "\U0001F513"

	// DeleteEmoji is the emoji that will be used for the delete button. (Cross)
	DeleteEmoji = "❌"
)

const (
	// TicketCmdName is the command for controlling tickets.
	TicketCmdName = "ticket"

	// ClaimCmdName is the sub command for claiming a ticket.
	ClaimCmdName = "claim"

	// CloseCmdName is the sub command for closing a ticket.
	CloseCmdName = "close"

	// DeleteCmdName is the sub command for deleting a ticket.
	DeleteCmdName = "delete"

	// ReopenCmdName is the sub command for reopening a ticket.
	ReopenCmdName = "reopen"

	// RenameCmdName is the sub command for renaming a ticket.
	RenameCmdName = "rename"

	// renameNameOption is the name option of the rename sub command.
	renameNameOption = "name"
)

var (
	// ticketCmd is the command for controlling tickets.
	ticketCmd = &discordgo.ApplicationCommand{
		Name:        TicketCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "This is the command for controlling tickets.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        ClaimCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This claims the ticket for the channel that the command was executed in.",
			},
			{
				Name:        CloseCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This closes the ticket for the channel that the command was executed in.",
			},
			{
				Name:        DeleteCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This deletes the ticket for the channel that the command was executed in.",
			},
			{
				Name:        ReopenCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This reopens the ticket for the channel that the command was executed in.",
			},
			{
				Name:        RenameCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This renames the ticket for the channel that the command was executed in.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        renameNameOption,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "This is the new name for the ticket.",
						Required:    true,
					},
				},
			},
		},
	}

	// NewTicketMessage is the message that is sent when a new ticket is created.
	NewTicketMessage = &discordgo.MessageSend{
		Content: `Your ticket has been created.
Please provide any additional info you deem relevant to help us answer faster.`,
		Embed:           nil,
		TTS:             false,
		Files:           nil,
		AllowedMentions: nil,
		Flags:           0,
		// Add the four buttons to the message.
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Claim", ClaimEmoji),
						Style:    discordgo.PrimaryButton,
						Disabled: false,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: ClaimTicketButtonID,
					},
					discordgo.Button{
						Label:    fmt.Sprintf("%s Close", CloseEmoji),
						Style:    discordgo.SecondaryButton,
						Disabled: false,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: CloseTicketButtonID,
					},
					discordgo.Button{
						Label:    fmt.Sprintf("%s Reopen", ReopenEmoji),
						Style:    discordgo.SuccessButton,
						Disabled: true,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: ReopenTicketButtonID,
					},
					discordgo.Button{
						Label:    fmt.Sprintf("%s Delete", DeleteEmoji),
						Style:    discordgo.DangerButton,
						Disabled: false,
						Emoji:    discordgo.ComponentEmoji{},
						URL:      "",
						CustomID: DeleteTicketButtonID,
					},
				},
			},
		},
	}
)

var (
	// createLimitersMtx guards createLimiters.
	createLimitersMtx sync.Mutex

	// createLimiters holds the per-user open-ticket rate limiters.
	createLimiters = make(map[string]*rate.Limiter)
)

// createLimiter gets the open-ticket rate limiter for the user. Each user can
// open at most two tickets a minute.
func createLimiter(userID string) *rate.Limiter {
	createLimitersMtx.Lock()
	defer createLimitersMtx.Unlock()

	l, ok := createLimiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(30*time.Second), 2)
		createLimiters[userID] = l
	}
	return l
}

func sendOpenTicketMessage(a IApp, channelID string) (*discordgo.Message, error) {
	const messageText = `How can we help?
Welcome to our tickets channel. If you have any questions or inquiries, please click on the button below to contact the staff by opening a ticket!`

	// The ticket emoji is the emoji that will be used for the button. (Envelope with arrow)
	const ticketEmoji = "\U0001F4E9"

	// Create the button with the ticket emoji.
	button := discordgo.Button{
		Label:    fmt.Sprintf("%s Open Ticket", ticketEmoji),
		Style:    discordgo.PrimaryButton,
		Disabled: false,
		Emoji:    discordgo.ComponentEmoji{},
		URL:      "",
		CustomID: OpenTicketButtonID,
	}

	// Create the message.
	message := discordgo.MessageSend{
		Content:         messageText,
		Embed:           nil,
		TTS:             false,
		Files:           nil,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
		Flags:           0,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					button,
				},
			},
		},
	}

	// Send the message.
	msg, err := a.Session().ChannelMessageSendComplex(channelID, &message)
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}

	return msg, nil
}

// ticketCmdController routes the ticket slash command to its sub command.
func ticketCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	// Extract the sub command.
	subCmd := i.ApplicationCommandData().Options[0].Name

	switch subCmd {
	case ClaimCmdName:
		return claimTicketHandler, nil
	case CloseCmdName:
		return closeTicketHandler, nil
	case DeleteCmdName:
		return deleteTicketHandler, nil
	case ReopenCmdName:
		return reopenTicketHandler, nil
	case RenameCmdName:
		return renameTicketHandler, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

// createTicketHandler is the processor for the open ticket button.
func createTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	userID := i.Member.User.ID

	// Throttle users that hammer the open button.
	if !createLimiter(userID).Allow() {
		return respondEphemeral(a, i, messages.ErrUserTooManyRequests)
	}

	// One ticket per user per guild.
	exists, err := a.Tickets().CheckDoubleTickets(i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("error checking for an existing ticket: %w", err)
	} else if exists {
		return respondEphemeral(a, i, messages.ErrUserTicketExists)
	}

	ticket, err := a.Tickets().CreateTicket(context.Background(), i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("error creating ticket: %w", err)
	}

	go func() {
		if err := setupNewTicketChannel(a, ticket); err != nil {
			a.Log().Error("Error setting up new ticket channel", slog.String(logging.KeyError, err.Error()))
		}
	}()

	// Respond to the interaction saying that the ticket has been created.
	// This message is an embedded ephemeral message with all the information about the ticket.
	err = a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Ticket Created",
					Description: fmt.Sprintf("<@%s>, your ticket has been created.", userID),
					Color:       0x00ff00,
					Fields: []*discordgo.MessageEmbedField{
						{
							Name:   "Ticket Number",
							Value:  fmt.Sprintf("%d", ticket.Number()),
							Inline: true,
						},
						{
							Name:   "Ticket Channel",
							Value:  fmt.Sprintf("<#%s>", ticket.ChannelID()),
							Inline: true,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

// setupNewTicketChannel sends and pins the welcome message with the ticket
// control buttons to a freshly created ticket channel.
func setupNewTicketChannel(a IApp, ticket *ticketing.Ticket) error {
	// Send the initial message to the channel.
	msg, err := a.Session().ChannelMessageSendComplex(ticket.ChannelID(), NewTicketMessage)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}

	// Pin the message to the channel.
	if err := a.Session().ChannelMessagePin(ticket.ChannelID(), msg.ID); err != nil {
		return fmt.Errorf("error pinning message: %w", err)
	}

	return nil
}

func claimTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ticket, ok := a.Tickets().TicketByChannel(i.ChannelID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrUserNoTicketChannel)
	}

	// Get the member that executed the command.
	member, err := a.Session().GuildMember(i.GuildID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error getting member: %w", err)
	}

	// Ensure that the user has a staff role.
	if !hasAnyRole(member, config.Ticketing.Ticketing.StaffRoles) {
		return respondEphemeral(a, i, messages.ErrUserNotStaff)
	}

	if _, err := a.Tickets().ClaimTicket(context.Background(), ticket, i.Member.User.ID); err != nil {
		if errors.Is(err, ticketing.ErrAlreadyClaimed) {
			return respondEphemeral(a, i, fmt.Sprintf("This ticket is already claimed by <@%s>.", ticket.ClaimedBy()))
		}
		return fmt.Errorf("error claiming ticket: %w", err)
	}

	// Respond to the interaction saying that the ticket has been claimed.
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("<@%s>, you have claimed this ticket.", i.Member.User.ID),
		},
	})
}

func closeTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ticket, ok := a.Tickets().TicketByChannel(i.ChannelID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrUserNoTicketChannel)
	}

	// Ensure that the ticket is not already closed.
	if ticket.Status() == entities.TicketStatusClosed {
		return respondEphemeral(a, i, "This ticket is already closed.")
	}

	if _, err := a.Tickets().CloseTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error closing ticket: %w", err)
	}

	// Respond to the interaction saying that the ticket has been closed.
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("<@%s>, this ticket has been closed.", i.Member.User.ID),
		},
	})
}

func reopenTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ticket, ok := a.Tickets().TicketByChannel(i.ChannelID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrUserNoTicketChannel)
	}

	// Ensure that the ticket is actually closed.
	if ticket.Status() == entities.TicketStatusOpen {
		return respondEphemeral(a, i, "This ticket is not closed.")
	}

	if _, err := a.Tickets().ReopenTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error reopening ticket: %w", err)
	}

	// Respond to the interaction saying that the ticket has been reopened.
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("<@%s>, this ticket has been reopened.", i.Member.User.ID),
		},
	})
}

func deleteTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ticket, ok := a.Tickets().TicketByChannel(i.ChannelID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrUserNoTicketChannel)
	}

	// Get the member that executed the command.
	member, err := a.Session().GuildMember(i.GuildID, i.Member.User.ID)
	if err != nil {
		return fmt.Errorf("error getting member: %w", err)
	}

	// Ensure that the user has a staff role.
	if !hasAnyRole(member, config.Ticketing.Ticketing.StaffRoles) {
		return respondEphemeral(a, i, messages.ErrUserNotStaff)
	}

	// Respond before the channel disappears; the interaction cannot be
	// answered once its channel has been deleted.
	if err := respondEphemeral(a, i, "Deleting this ticket."); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}

	if _, err := a.Tickets().DeleteTicket(context.Background(), ticket); err != nil {
		return fmt.Errorf("error deleting ticket: %w", err)
	}
	return nil
}

func renameTicketHandler(a IApp, i *discordgo.InteractionCreate) error {
	ticket, ok := a.Tickets().TicketByChannel(i.ChannelID)
	if !ok {
		return respondEphemeral(a, i, messages.ErrUserNoTicketChannel)
	}

	// Extract the new name provided.
	newName := i.ApplicationCommandData().Options[0].Options[0].StringValue()

	if _, err := a.Tickets().RenameTicket(context.Background(), ticket, newName); err != nil {
		return fmt.Errorf("error renaming ticket: %w", err)
	}

	// Respond to the interaction saying that the ticket has been renamed.
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("<@%s>, this ticket has been renamed to %s-%d.", i.Member.User.ID, newName, ticket.Number()),
		},
	})
}
