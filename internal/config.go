package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type IcarusConfig struct {
	AppName string `mapstructure:"app_name"`

	Editor struct {
		Encoding    string `mapstructure:"encoding"`
		HistoryFile string `mapstructure:"history_file"`
		ShowLimit   int    `mapstructure:"show_limit"`
	} `mapstructure:"editor"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "icarusbin")
	v.SetDefault("editor.encoding", "utf-8")
	v.SetDefault("editor.history_file", "")
	v.SetDefault("editor.show_limit", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.seq_url", "")
}

// LoadConfig reads a YAML config file. An empty path returns the defaults.
func LoadConfig(path string) (*IcarusConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg IcarusConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Editor.ShowLimit <= 0 {
		return nil, fmt.Errorf("invalid editor.show_limit: %d", cfg.Editor.ShowLimit)
	}

	return &cfg, nil
}
