package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrMissingSpreadsheetID = errors.New("config: SHEET_ID is required")
	ErrMissingCredentials   = errors.New("config: either GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY are required")
)

type SheetsConfig struct {
	SpreadsheetID   string
	Range           string
	CredentialsPath string
	ClientEmail     string
	PrivateKey      string
}

// HasCredentials reports whether at least one credential form is configured.
// Resolution order at client construction is: full credential file first,
// then the split email/key pair.
func (c SheetsConfig) HasCredentials() bool {
	return c.CredentialsPath != "" || (c.ClientEmail != "" && c.PrivateKey != "")
}

type PostgresConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type Config struct {
	App struct {
		Port      string
		PublicDir string
	}
	Sheets  SheetsConfig
	Counter struct {
		FilePath string
	}
	Postgres PostgresConfig
}

func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "3000")
	cfg.App.PublicDir = getenv("PUBLIC_DIR", "public")

	cfg.Sheets.SpreadsheetID = os.Getenv("SHEET_ID")
	if cfg.Sheets.SpreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	cfg.Sheets.Range = getenv("SHEET_RANGE", "Hoja1!A:D")
	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	cfg.Sheets.ClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
	// Keys pasted into env files usually carry literal \n escapes.
	cfg.Sheets.PrivateKey = strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n")
	if !cfg.Sheets.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	cfg.Counter.FilePath = getenv("COUNTER_FILE", "remito_seq.json")

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	cfg.Postgres.Port = getenv("DB_PORT", "5432")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	cfg.Postgres.SSLMode = getenv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getenv("DB_MIGRATIONS_PATH", "migrations")

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
