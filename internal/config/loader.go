// Package config loads connection settings for the command-line tools from a
// YAML file, .env files and GOTDS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	tds "github.com/slingdata-io/gotds"
)

const (
	configName = ".gotds"
	configType = "yaml"
	envPrefix  = "GOTDS"
)

// AppFs is the filesystem configuration and .env files are read from
var AppFs = afero.NewOsFs()

// File mirrors the keys accepted in the config file and environment
type File struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// envFiles are read in order; later files override earlier ones
var envFiles = []string{".env", ".env.local"}

var keys = []string{"host", "port", "username", "password", "database", "timeout_seconds"}

// Load builds a connection Config. Sources, lowest priority first: defaults,
// the config file, .env, .env.local, then GOTDS_* variables already set in
// the process environment.
//
// path names a config file explicitly; when empty, .gotds.yaml is looked up
// in the working directory and the home directory and is optional.
func Load(path string) (tds.Config, error) {
	fromFile := make(map[string]bool)
	for _, name := range envFiles {
		if err := loadEnvFile(name, fromFile); err != nil {
			return tds.Config{}, err
		}
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "gotds"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return tds.Config{}, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	v.SetDefault("port", tds.DefaultPort)
	v.SetDefault("timeout_seconds", int(tds.DefaultTimeout/time.Second))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return tds.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return tds.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return f.Config()
}

// Config validates f and converts it to a connection Config
func (f File) Config() (tds.Config, error) {
	if f.Host == "" {
		return tds.Config{}, errors.New("config: host is required")
	}
	if f.Port <= 0 || f.Port > 65535 {
		return tds.Config{}, fmt.Errorf("config: invalid port %d", f.Port)
	}
	return tds.NewConfig(f.Host, f.Username, f.Password, f.Database,
		tds.WithPort(f.Port),
		tds.WithTimeout(time.Duration(f.TimeoutSeconds)*time.Second),
	), nil
}

// loadEnvFile copies the variables of a dotenv file into the process
// environment. Variables set before Load are kept; those in fromFile came from
// an earlier dotenv file and are replaced. A missing file is not an error.
func loadEnvFile(name string, fromFile map[string]bool) error {
	file, err := AppFs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	vars, err := godotenv.Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	for k, val := range vars {
		if _, exists := os.LookupEnv(k); exists && !fromFile[k] {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
		fromFile[k] = true
	}
	return nil
}
