package store

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/cradle/pkg/timeutil"
)

type Config interface {
	BasePath() string
	GraceWindow() time.Duration
}

func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.cradle.db")
	viper.SetDefault("grace", timeutil.DefaultGrace)
	viper.SetConfigName(".cradle") // .yaml is implicit
	viper.SetEnvPrefix("CRADLE")
	viper.AutomaticEnv()

	if override := os.Getenv("CRADLE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	grace, _, err := timeutil.ParseWindow(viper.GetString("grace"))
	if err != nil {
		return nil, fmt.Errorf("store: parse grace window: %w", err)
	}

	return &fileConfig{Path: path, Grace: grace}, nil
}

type fileConfig struct {
	Path  string        `json:"path"`
	Grace time.Duration `json:"grace"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) GraceWindow() time.Duration {
	return f.Grace
}
