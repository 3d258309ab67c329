package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"schedule-service/pkg/config"
)

type SweeperConfig struct {
	IntervalHours int `yaml:"interval_hours"`
}

// Interval returns the sweep interval as a duration.
func (c SweeperConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

type Config struct {
	DB      config.DBConfig     `yaml:"db"`
	MQ      config.MQConfig     `yaml:"mq"`
	Redis   config.RedisConfig  `yaml:"redis"`
	JWT     config.JWTConfig    `yaml:"jwt"`
	Server  config.ServerConfig `yaml:"server"`
	Sweeper SweeperConfig       `yaml:"sweeper"`
}

func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var cfg Config
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	if hours := os.Getenv("SWEEP_INTERVAL_HOURS"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil {
			cfg.Sweeper.IntervalHours = h
		}
	}

	if cfg.Sweeper.IntervalHours == 0 {
		cfg.Sweeper.IntervalHours = 24
	}

	return &cfg
}
