package config

// WatchConfig describes a single watched bulletin listing.
type WatchConfig struct {
	URL      string        `yaml:"url"`
	Marker   string        `yaml:"marker"`
	Keywords []string      `yaml:"keywords"`
	Settings WatchSettings `yaml:"settings"`
}

type WatchSettings struct {
	ListingTimeout     int  `yaml:"listing_timeout"`      // seconds
	DocumentTimeout    int  `yaml:"document_timeout"`     // seconds
	NotifyTimeout      int  `yaml:"notify_timeout"`       // seconds
	DisableLinkPreview bool `yaml:"disable_link_preview"` // Telegram link preview toggle
}
