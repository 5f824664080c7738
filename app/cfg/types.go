package cfg

type Cfg struct {
	// Notification configuration
	TelegramToken  string
	TelegramChatID string

	// Watch configuration
	ConfigFile    string
	StateBackend  string
	StateFile     string
	StateDBPath   string
	NotifyOnError bool

	// Run mode
	Watch         bool
	WatchInterval int
	Port          string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
