package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/lynx/pkg/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func Parse(l *slog.Logger) {
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		l.Debug("Loaded environment from .env file")
	}

	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envTC := os.Getenv(EnvTicketingConfig); envTC != "" {
		l.Debug("Found ticketing config path in environment", slog.String("key", EnvTicketingConfig))
		TicketingConfigPath = envTC
	}

	if envMonitoringPort := os.Getenv(EnvMonitoringPort); envMonitoringPort != "" {
		l.Debug("Found monitoring port in environment", slog.String("key", EnvMonitoringPort))
		MonitoringPort = envMonitoringPort
	} else {
		// Default to 8080 if not provided.
		MonitoringPort = "8080"

		l.Info("No monitoring port provided in environment, defaulting to 8080", slog.String("key", EnvMonitoringPort))
	}

	if BotToken == "" ||
		ApplicationId == "" ||
		TicketingConfigPath == "" {

		l.Error("Not all required environment variables have been provided", slog.String(logging.KeyError, "Incomplete configuration"))
		os.Exit(1)
	}

	tc, err := LoadTicketingConfig(TicketingConfigPath)
	if err != nil {
		l.Error("Error loading ticketing configuration", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
	Ticketing = tc

	l.Debug("All required configuration has been provided")
}

// LoadTicketingConfig reads and parses the ticketing configuration file.
func LoadTicketingConfig(path string) (*TicketingConfig, error) {
	got, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading ticketing config: %w", err)
	}

	tc := new(TicketingConfig)
	if err := yaml.Unmarshal(got, tc); err != nil {
		return nil, fmt.Errorf("error parsing ticketing config: %w", err)
	}

	return tc, nil
}
