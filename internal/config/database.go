package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func lookupEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", key)
	}
	return v, nil
}

// POSTGRES_PASSWORD_FILE is read when POSTGRES_PASSWORD is absent, which
// is how docker secrets are mounted.
func loadPassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}
	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func NewDatabase() (*Database, error) {
	var (
		db  = &Database{SSLMode: "disable"}
		err error
	)
	for _, v := range []struct {
		key string
		dst *string
	}{
		{"POSTGRES_USER", &db.Username},
		{"POSTGRES_HOST", &db.Host},
		{"POSTGRES_DB", &db.DBName},
	} {
		if *v.dst, err = lookupEnv(v.key); err != nil {
			return nil, err
		}
	}
	if db.Password, err = loadPassword(); err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}

	port := uint64(5432)
	if s, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		if port, err = strconv.ParseUint(s, 10, 16); err != nil {
			return nil, fmt.Errorf("unable to convert port to int: %w", err)
		}
	}
	db.Port = uint16(port)

	if sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE"); ok {
		db.SSLMode = sslMode
	}

	return db, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

// DbURL prefers DATABASE_URL over the individual POSTGRES_* variables.
func DbURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}
	if s, ok := os.LookupEnv("POSTGRES_MAX_CONNS"); ok {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("unable to convert POSTGRES_MAX_CONNS to int: %w", err)
		}
		config.MaxConns = int32(n)
	}
	return config, nil
}
