package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env        string
	DataDir    string
	ExportsDir string

	Admin AdminConfig
	Email EmailConfig
	Log   LogConfig
}

// AdminConfig seeds the default administrator row of a fresh users file.
type AdminConfig struct {
	Email    string
	Password string
}

// EmailConfig holds the institutional domains used for generated addresses.
type EmailConfig struct {
	StudentDomain string
	TeacherDomain string
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.DataDir = v.GetString("DATA_DIR")
	cfg.ExportsDir = v.GetString("EXPORTS_DIR")

	cfg.Admin = AdminConfig{
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.Email = EmailConfig{
		StudentDomain: v.GetString("STUDENT_EMAIL_DOMAIN"),
		TeacherDomain: v.GetString("TEACHER_EMAIL_DOMAIN"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
		File:   v.GetString("LOG_FILE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("ADMIN_EMAIL", "admin@ecole.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	v.SetDefault("STUDENT_EMAIL_DOMAIN", "edu.umi.ac.ma")
	v.SetDefault("TEACHER_EMAIL_DOMAIN", "umi.ac.ma")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "ecole.log")
}
