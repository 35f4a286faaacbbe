package internal

import (
	"roomcast/errors"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.NoError(config.Validate())
	req.Equal("127.0.0.1:8080", config.Address())
	req.Equal("Main", config.DefaultRoom)
	req.Equal(500*time.Millisecond, config.DeliveryTimeout)
	req.Equal("random", config.IDStrategy)
}

func TestConfig_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ID_STRATEGY", "sequential")
	t.Setenv("DELIVERY_TIMEOUT", "2s")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.NoError(config.Validate())
	req.Equal("127.0.0.1:9000", config.Address())
	req.Equal("sequential", config.IDStrategy)
	req.Equal(2*time.Second, config.DeliveryTimeout)
}

func TestConfig_Validate_Rejects(t *testing.T) {
	valid := func() Config {
		var config Config
		_, err := env.UnmarshalFromEnviron(&config)
		require.NoError(t, err)
		return config
	}

	cases := map[string]func(c *Config){
		"port out of range":  func(c *Config) { c.Port = 70000 },
		"unknown log level":  func(c *Config) { c.LogLevel = "TRACE" },
		"unknown strategy":   func(c *Config) { c.IDStrategy = "uuid" },
		"no buffer":          func(c *Config) { c.BufferSize = 0 },
		"no delivery budget": func(c *Config) { c.DeliveryTimeout = 0 },
		"short pong wait":    func(c *Config) { c.WsPongWait = 10 * time.Millisecond },
		"empty default room": func(c *Config) { c.DefaultRoom = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			config := valid()
			mutate(&config)
			require.ErrorIs(t, config.Validate(), errors.ErrInvalidConfig)
		})
	}
}
