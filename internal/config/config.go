package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/psantana5/corpuspush/internal/logging"
	"github.com/psantana5/corpuspush/internal/report"
)

// EnvPrefix is prepended to every environment variable, e.g. CORPUSPUSH_DELAY.
const EnvPrefix = "CORPUSPUSH"

// Where the push client writes its own output
const (
	ClientOutputStderr  = "stderr"
	ClientOutputStdout  = "stdout"
	ClientOutputDiscard = "discard"
)

// Config is the effective configuration of one batch run
type Config struct {
	Dir         string        `mapstructure:"dir" yaml:"dir" json:"dir"`
	Delay       time.Duration `mapstructure:"delay" yaml:"delay" json:"delay"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Output      string        `mapstructure:"output" yaml:"output" json:"output"`
	MetricsFile string        `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
	HostStats   bool          `mapstructure:"host_stats" yaml:"host_stats" json:"host_stats"`
	Client      ClientConfig  `mapstructure:"client" yaml:"client" json:"client"`
	Log         LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
}

// ClientConfig describes how the push client is invoked:
// <command> <args...> <put_flag> <file>
type ClientConfig struct {
	Command string   `mapstructure:"command" yaml:"command" json:"command"`
	Args    []string `mapstructure:"args" yaml:"args" json:"args"`
	PutFlag string   `mapstructure:"put_flag" yaml:"put_flag" json:"put_flag"`
	Output  string   `mapstructure:"output" yaml:"output" json:"output"`
}

// LogConfig configures the diagnostic logger
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Default returns the configuration that reproduces the original corpus
// loader: push every file of ./files/raw.en with `go run client/client.go -put`,
// pausing half a second after each one.
func Default() *Config {
	return &Config{
		Dir:       "./files/raw.en",
		Delay:     500 * time.Millisecond,
		Timeout:   0,
		Output:    report.FormatText,
		HostStats: true,
		Client: ClientConfig{
			Command: "go",
			Args:    []string{"run", "client/client.go"},
			PutFlag: "-put",
			Output:  ClientOutputStderr,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// NewViper returns a viper instance with defaults and environment binding
// set up. Callers may bind flags on it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("delay", d.Delay)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("output", d.Output)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("host_stats", d.HostStats)
	v.SetDefault("client.command", d.Client.Command)
	v.SetDefault("client.args", d.Client.Args)
	v.SetDefault("client.put_flag", d.Client.PutFlag)
	v.SetDefault("client.output", d.Client.Output)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configPath (or ./corpuspush.yaml if it exists) into v and
// returns the validated configuration.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("corpuspush")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir must not be empty")
	}
	if c.Client.Command == "" {
		return errors.New("client.command must not be empty")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative: %s", c.Delay)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}

	if !contains(report.Formats, c.Output) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output, strings.Join(report.Formats, ", "))
	}

	switch c.Client.Output {
	case ClientOutputStderr, ClientOutputStdout, ClientOutputDiscard:
	default:
		return fmt.Errorf("invalid client.output %q", c.Client.Output)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}

	return nil
}

// ClientArgs builds the arguments passed to the client for file.
func (c *Config) ClientArgs(file string) []string {
	args := make([]string, 0, len(c.Client.Args)+2)
	args = append(args, c.Client.Args...)
	if c.Client.PutFlag != "" {
		args = append(args, c.Client.PutFlag)
	}
	return append(args, file)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
