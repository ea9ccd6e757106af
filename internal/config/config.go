package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// UI modes the binary can run in. One process drives exactly one front-end.
const (
	UIGUI      = "gui"
	UITerminal = "terminal"
	UIWeb      = "web"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:""`
	UI       string `yaml:"ui" env:"UI_MODE" env-default:"gui"`
	GUI      GUI    `yaml:"gui"`
	Web      Web    `yaml:"web"`
	Redis    Redis  `yaml:"redis"`
	Kafka    Kafka  `yaml:"kafka"`
}

type GUI struct {
	CellSize int `yaml:"cell-size" env:"GUI_CELL_SIZE" env-default:"80"`
}

type Web struct {
	Port string `yaml:"port" env:"WEB_PORT" env-default:"9090"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Kafka struct {
	Brokers string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:""`
	Topic   string `yaml:"topic" env:"KAFKA_TOPIC" env-default:"connect-four.events"`
}

// MustLoad - load all configurations in config.yml file. A missing file is
// fine: the game then runs on env-default values alone.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from env: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Enabled reports whether a redis host is configured. Without one the game
// keeps its snapshot in memory only.
func (that *Redis) Enabled() bool {
	return that.Host != ""
}

// Enabled reports whether a kafka broker is configured. Without one no
// analytics events leave the process.
func (that *Kafka) Enabled() bool {
	return that.Brokers != ""
}
