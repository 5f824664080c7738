package cfg

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Notification configuration
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (required)" required:"true"`
	TelegramChatID string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat ID notifications are sent to (required)" required:"true"`

	// Watch configuration
	ConfigFile    string `long:"config" env:"CONFIG_FILE" default:"./watch.yml" description:"Path to the watch configuration file"`
	StateBackend  string `long:"state-backend" env:"STATE_BACKEND" default:"file" choice:"file" choice:"sqlite" description:"Watermark storage backend"`
	StateFile     string `long:"state-file" env:"STATE_FILE" default:"./last_bulletin.txt" description:"Watermark file path (file backend)"`
	StateDBPath   string `long:"state-db" env:"STATE_DB" default:"./bgsds-watch.db" description:"SQLite database path (sqlite backend)"`
	SilentOnError bool   `long:"silent-on-error" env:"SILENT_ON_ERROR" description:"Suppress the diagnostic notification when the listing fetch fails"`

	// Run mode
	Watch         bool   `long:"watch" env:"WATCH" description:"Keep running and re-check periodically instead of exiting after one run"`
	WatchInterval int    `long:"watch-interval" env:"WATCH_INTERVAL" default:"1800" description:"Seconds between checks in watch mode"`
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP status server port (watch mode only)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"bgsds-watch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"America/Recife" description:"Timezone for timestamps (e.g., UTC, America/Recife)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return loadArgs(os.Args[1:])
}

func loadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		TelegramToken:  raw.TelegramToken,
		TelegramChatID: raw.TelegramChatID,
		ConfigFile:     raw.ConfigFile,
		StateBackend:   raw.StateBackend,
		StateFile:      raw.StateFile,
		StateDBPath:    raw.StateDBPath,
		NotifyOnError:  !raw.SilentOnError,
		Watch:          raw.Watch,
		WatchInterval:  raw.WatchInterval,
		Port:           raw.Port,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
