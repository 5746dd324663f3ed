package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// uploadConfig mirrors export.UploadConfig in the config file.
type uploadConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"useSSL"`
}

// config is the YAML configuration file schema. Flags override any
// value set here.
type config struct {
	Dataset      string `yaml:"dataset"`
	KeywordIndex string `yaml:"keywordIndex"`
	TextDir      string `yaml:"textDir"`
	Queries      string `yaml:"queries"`
	Output       string `yaml:"output"`

	Schemes    []string `yaml:"schemes"`
	Warmup     int      `yaml:"warmup"`
	Iterations int      `yaml:"iterations"`
	Seed       int64    `yaml:"seed"`

	QueryMix struct {
		Single int `yaml:"single"`
		And    int `yaml:"and"`
		Or     int `yaml:"or"`
	} `yaml:"queryMix"`

	Security bool `yaml:"security"`
	Compress bool `yaml:"compress"`

	Upload *uploadConfig `yaml:"upload"`
}

// defaultConfig returns the configuration used when neither file nor
// flags set a value.
func defaultConfig() config {
	cfg := config{
		Output:     "results",
		Warmup:     3,
		Iterations: 10,
		Seed:       42,
		Security:   true,
	}
	cfg.QueryMix.Single = 10
	cfg.QueryMix.And = 5
	cfg.QueryMix.Or = 5
	return cfg
}

// loadConfig reads a YAML config file over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects contradictory or incomplete configurations.
func (c *config) validate() error {
	sources := 0
	for _, s := range []string{c.Dataset, c.KeywordIndex, c.TextDir} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("one of --dataset, --index or --text-dir is required")
	}
	if sources > 1 {
		return fmt.Errorf("--dataset, --index and --text-dir are mutually exclusive")
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative")
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}
	return nil
}
