package backend

import (
	"fmt"
	"time"

	"github.com/Sultan0902/BackendProvider/httplog"
	"github.com/Sultan0902/BackendProvider/validator"
	"github.com/caarlos0/env/v11"
	gvalidator "github.com/go-playground/validator/v10"
)

const (
	EnvPrefix = "BACKEND_"

	DefaultTimeout                  = 30 * time.Second
	DefaultNoInternetMessage        = "No internet connection"
	DefaultConnectivityErrorMessage = "Unable to connect. Some error occured"
)

var configValidator = newConfigValidator() //nolint:gochecknoglobals

// Config describes a backend client. It is a plain value: the With methods
// return a modified copy and New copies it into the client, so changing a
// Config never affects clients built from it earlier.
//
// A zero timeout disables that phase's timeout. The base URL is passed to
// the HTTP library unchecked.
type Config struct {
	BaseURL string `env:"BASE_URL"`

	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT"    envDefault:"30s" validate:"gte=0"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT"   envDefault:"30s" validate:"gte=0"`

	NoInternetMessage        string `env:"NO_INTERNET_MESSAGE"        envDefault:"No internet connection"`
	ConnectivityErrorMessage string `env:"CONNECTIVITY_ERROR_MESSAGE" envDefault:"Unable to connect. Some error occured"`

	LogLevel httplog.Verbosity `env:"LOG_LEVEL" envDefault:"NONE" validate:"verbosity"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:                  "",
		ConnectTimeout:           DefaultTimeout,
		ReadTimeout:              DefaultTimeout,
		WriteTimeout:             DefaultTimeout,
		NoInternetMessage:        DefaultNoInternetMessage,
		ConnectivityErrorMessage: DefaultConnectivityErrorMessage,
		LogLevel:                 httplog.None,
	}
}

// LoadConfig reads the configuration from BACKEND_* environment variables.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{Prefix: EnvPrefix}) //nolint:exhaustruct
}

// LoadConfigFrom is LoadConfig over the given variables instead of the
// process environment.
func LoadConfigFrom(environment map[string]string) (Config, error) {
	return parseConfig(env.Options{Prefix: EnvPrefix, Environment: environment}) //nolint:exhaustruct
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := configValidator.Validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) WithBaseURL(baseURL string) Config {
	c.BaseURL = baseURL

	return c
}

func (c Config) WithConnectTimeout(timeout time.Duration) Config {
	c.ConnectTimeout = timeout

	return c
}

func (c Config) WithReadTimeout(timeout time.Duration) Config {
	c.ReadTimeout = timeout

	return c
}

func (c Config) WithWriteTimeout(timeout time.Duration) Config {
	c.WriteTimeout = timeout

	return c
}

// WithTimeoutSeconds sets all three phase timeouts in whole seconds.
func (c Config) WithTimeoutSeconds(connect, read, write int) Config {
	c.ConnectTimeout = time.Duration(connect) * time.Second
	c.ReadTimeout = time.Duration(read) * time.Second
	c.WriteTimeout = time.Duration(write) * time.Second

	return c
}

func (c Config) WithNoInternetMessage(message string) Config {
	c.NoInternetMessage = message

	return c
}

func (c Config) WithConnectivityErrorMessage(message string) Config {
	c.ConnectivityErrorMessage = message

	return c
}

func (c Config) WithLogLevel(level httplog.Verbosity) Config {
	c.LogLevel = level

	return c
}

// messages fills in the default error messages when unset.
func (c Config) messages() Config {
	if c.NoInternetMessage == "" {
		c.NoInternetMessage = DefaultNoInternetMessage
	}

	if c.ConnectivityErrorMessage == "" {
		c.ConnectivityErrorMessage = DefaultConnectivityErrorMessage
	}

	return c
}

func newConfigValidator() *validator.Validator {
	v := validator.DefaultConfigValidator()

	err := v.RegisterCustomValidation("verbosity", func(fl gvalidator.FieldLevel) bool {
		return httplog.Verbosity(fl.Field().Int()).Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("backend: register verbosity validation: %v", err))
	}

	return v
}
