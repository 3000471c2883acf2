package config

import "github.com/Jacobbrewer1/lynx/pkg/ticketing"

const (
	// AppName is the name of the application.
	AppName = "lynx"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvTicketingConfig is the environment variable for the ticketing configuration file path.
	EnvTicketingConfig = `TICKETING_CONFIG`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// TicketingConfigPath is the path to the ticketing configuration file.
	TicketingConfigPath string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// Ticketing is the parsed ticketing configuration.
	Ticketing *TicketingConfig
)

// TicketingConfig is the on-disk configuration for the ticketing system.
type TicketingConfig struct {
	// ListenChannelID is the ID of the channel that the open-ticket message is
	// posted in.
	ListenChannelID string `yaml:"listen_channel_id"`

	// Ticketing is the ticket manager configuration.
	Ticketing ticketing.Config `yaml:"ticketing"`
}
