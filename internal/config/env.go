package config

import "os"

// envOverrides maps environment variables onto string settings. They are
// applied after the file, so deployments can move ports and keys without
// shipping a config.
var envOverrides = []struct {
	key   string
	field func(*Config) *string
}{
	{"SSH_HOST", func(c *Config) *string { return &c.SSH.Host }},
	{"SSH_PORT", func(c *Config) *string { return &c.SSH.Port }},
	{"SSH_HOST_KEY", func(c *Config) *string { return &c.SSH.HostKey }},
	{"SSH_DISPLAY_HOST", func(c *Config) *string { return &c.Web.DisplayHost }},
	{"WEB_HOST", func(c *Config) *string { return &c.Web.Host }},
	{"WEB_PORT", func(c *Config) *string { return &c.Web.Port }},
	{"INVADERS_LOG_LEVEL", func(c *Config) *string { return &c.Logging.Level }},
}

func (c *Config) applyEnv() {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.key); ok {
			*o.field(c) = v
		}
	}
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
