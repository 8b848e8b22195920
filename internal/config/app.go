package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type App struct {
	Addr     string `env:"APP_ADDR" envDefault:":8080"`
	BasePath string `env:"APP_BASE_PATH"`
}

func NewApp() (*App, error) {
	app, err := env.ParseAs[App]()
	if err != nil {
		return nil, fmt.Errorf("unable to parse app config: %w", err)
	}
	return &app, nil
}
