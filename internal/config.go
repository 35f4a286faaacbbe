package internal

import (
	"fmt"
	"roomcast/errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	Host                 string        `env:"HOST,default=127.0.0.1" validate:"required"`
	Port                 int           `env:"PORT,default=8080" validate:"min=1,max=65535"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	BufferSize           int           `env:"BUFFER_SIZE,default=1024" validate:"min=1"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64" validate:"min=1"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=64" validate:"min=0"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=500ms" validate:"gt=0"`
	PublishTimeout       time.Duration `env:"PUBLISH_TIMEOUT,default=1s" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	StaticDir            string        `env:"STATIC_DIR,default=static" validate:"required"`
	DefaultRoom          string        `env:"DEFAULT_ROOM,default=Main" validate:"required"`
	WsWriteWait          time.Duration `env:"WS_WRITE_WAIT,default=10s" validate:"gt=0"`
	WsPongWait           time.Duration `env:"WS_PONG_WAIT,default=60s" validate:"gte=1s"`
	WsMaxMessage         int64         `env:"WS_MAX_MESSAGE,default=65536" validate:"min=1"`
	IDStrategy           string        `env:"ID_STRATEGY,default=random" validate:"oneof=random sequential"`
}

// Validate checks the ranges that env tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
