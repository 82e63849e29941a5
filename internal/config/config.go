package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Outputs      OutputsConfig      `mapstructure:"outputs"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Backups      BackupsConfig      `mapstructure:"backups"`
}

type OutputsConfig struct {
	// SingleFileDirectory receives the result of a --file run when no
	// --out-dir is given; BatchDirectory does the same for --dir runs.
	SingleFileDirectory string `mapstructure:"single_file_directory" validate:"required"`
	BatchDirectory      string `mapstructure:"batch_directory" validate:"required"`
}

type DictionariesConfig struct {
	// Suffixes is the batch mode file selection rule: a file in the target
	// directory is processed when its name ends with one of these.
	Suffixes []string `mapstructure:"suffixes" validate:"required,min=1,dive,required"`
}

type BackupsConfig struct {
	TimestampLayout string `mapstructure:"timestamp_layout" validate:"required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/auxdict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("outputs.single_file_directory", filepath.Join("auxified", "moqi"))
	v.SetDefault("outputs.batch_directory", "auxified")
	v.SetDefault("dictionaries.suffixes", []string{".dict.yaml", ".yaml", ".txt"})
	v.SetDefault("backups.timestamp_layout", "20060102T150405Z")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
