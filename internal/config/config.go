package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	TWSE   TWSEConfig
}

type ServerConfig struct {
	Address string
}

type TWSEConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout 回傳上游呼叫的逾時時間
func (c TWSEConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./internal/config")

	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("twse.baseurl", "https://www.twse.com.tw")
	viper.SetDefault("twse.timeoutseconds", 10)

	// 沒有配置文件時直接使用預設值
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
