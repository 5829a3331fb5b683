package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultRegion is deliberate and explicit; there is no silent fallback
// to an ambient region.
const DefaultRegion = "us-west-2"

type Email struct {
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
	Subject   string `mapstructure:"subject"`
}

type Report struct {
	OutputPath string `mapstructure:"output_path"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Log controls where structured logs go. Stdout is always written;
// Path, when set, receives a copy.
type Log struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
	Email   Email  `mapstructure:"email"`
	Report  Report `mapstructure:"report"`
	Server  Server `mapstructure:"server"`
	Log     Log    `mapstructure:"log"`
}

// Load reads configuration from the optional file at path, overlaid by
// ATLAS_-prefixed environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("region", DefaultRegion)
	v.SetDefault("profile", "")
	v.SetDefault("email.from", "ec2-report@example.com")
	// Registered empty so the env overlay can bind them.
	v.SetDefault("email.recipient", "")
	v.SetDefault("email.subject", "AWS Underutilized EC2 Report")
	v.SetDefault("report.output_path", "ec2_underutilized_report.csv")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("log.path", "")

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
