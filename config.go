package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

type Config struct {
	Port         int            `json:"port"`
	Env          string         `json:"env"`
	Pepper       string         `json:"pepper"`
	HMACKey      string         `json:"hmac_key"`
	CSRFKey      string         `json:"csrf_key"`
	PostsPerPage int            `json:"posts_per_page"`
	CacheTTLSecs int            `json:"cache_ttl_seconds"`
	Database     PostgresConfig `json:"database"`
	Github       GithubConfig   `json:"github"`
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type GithubConfig struct {
	ID          string `json:"id"`
	Secret      string `json:"secret"`
	RedirectURL string `json:"redirect_url"`
}

func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port:         1111,
		Env:          "dev",
		Pepper:       "secret-random-string",
		HMACKey:      "secret-hmac-key",
		CSRFKey:      "32-byte-long-auth-key-for-csrf!!",
		PostsPerPage: 10,
		CacheTTLSecs: 20,
		Database:     DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Name:     "inkwell",
	}
}

// LoadConfig reads .config.json if present, otherwise falls back to the
// default dev setup. In production the file is required, running on dev
// defaults there would mean well-known secrets.
func LoadConfig(prodRequired bool) Config {
	f, err := os.Open(".config.json")
	if err != nil {
		if prodRequired {
			panic("A .config.json file is required in production.")
		}
		slog.Info("no .config.json found, using the default dev config")
		return DefaultConfig()
	}
	defer f.Close()
	var c Config
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		panic(err)
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = DefaultConfig().PostsPerPage
	}
	if c.CacheTTLSecs <= 0 {
		c.CacheTTLSecs = DefaultConfig().CacheTTLSecs
	}
	slog.Info("loaded .config.json")
	return c
}
