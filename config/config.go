package config

import (
	"github.com/caarlos0/env"

	"github.com/ReconfigureIO/asset-gateway/service/storage/s3"
)

type Config struct {
	ProgramName string     `env:"RECO_NAME" envDefault:"asset-gateway"`
	Port        string     `env:"PORT" envDefault:"8080"`
	Reco        RecoConfig `env:"RECO"`
}

type RecoConfig struct {
	Env            string   `env:"RECO_ENV" envDefault:"development"`
	LogLevel       string   `env:"RECO_LOG_LEVEL" envDefault:"info"`
	LogzioToken    string   `env:"LOGZIO_TOKEN"`
	AllowedOrigins []string `env:"RECO_ALLOWED_ORIGINS" envSeparator:","`
	Storage        s3.ServiceConfig
}

func ParseEnvConfig() (*Config, error) {
	conf := Config{}

	err := env.Parse(&conf)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Reco)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Reco.Storage)
	if err != nil {
		return nil, err
	}

	return &conf, nil
}
