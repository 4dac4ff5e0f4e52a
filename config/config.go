package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URI  string `mapstructure:"uri"`
		Name string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
		// SecureCookies must be true in production so the auth cookies are
		// only ever sent over TLS.
		SecureCookies bool `mapstructure:"secure_cookies"`
	} `mapstructure:"server"`
	JWT struct {
		// Access and refresh tokens are signed with independent secrets;
		// a leaked access-token key cannot be used to forge refresh tokens.
		AccessSecret  string `mapstructure:"access_secret"`
		RefreshSecret string `mapstructure:"refresh_secret"`
	} `mapstructure:"jwt"`
	Storage struct {
		Region        string `mapstructure:"region"`
		Endpoint      string `mapstructure:"endpoint"`
		Bucket        string `mapstructure:"bucket"`
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"storage"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
