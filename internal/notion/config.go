package notion

import "time"

const (
	// DefaultBaseURL is the public Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"
	// DefaultVersion is the Notion-Version header value the property shapes
	// in this package were written against.
	DefaultVersion = "2022-06-28"
	DefaultTimeout = 10 * time.Second
)

// Config holds everything the client needs to reach Notion. BaseURL may point
// at a relay instead of the public API; Token may then be empty because the
// relay attaches the credential itself.
type Config struct {
	BaseURL string
	Token   string
	Version string
	Timeout time.Duration
}

// DefaultConfig returns a Config aimed at the public API with no token.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Version: DefaultVersion,
		Timeout: DefaultTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
