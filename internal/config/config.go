package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bank_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "LedgerApp"
const defaultChannelKey = "LedgerKey001"
const defaultHTTPAddr = ":8080"
const defaultSQLitePath = "bank-ledger.db"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseDSN    string
	MigrationsDir  string
	StoreDriver    string
	SQLitePath     string
	HTTPAddr       string
	ChannelID      string
	ChannelKey     string
	ChannelKeyHash string
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = StoreDriverPostgres
	}
	if driver != StoreDriverPostgres && driver != StoreDriverSQLite {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}

	sqlitePath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if sqlitePath == "" {
		sqlitePath = defaultSQLitePath
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	// When set, the middleware verifies the presented key against this
	// bcrypt hash instead of comparing plaintext.
	channelKeyHash := strings.TrimSpace(os.Getenv("CHANNEL_KEY_HASH"))

	return Config{
		DatabaseDSN:    normalizeConnectionString(conn),
		MigrationsDir:  migrationsDir,
		StoreDriver:    driver,
		SQLitePath:     sqlitePath,
		HTTPAddr:       httpAddr,
		ChannelID:      channelID,
		ChannelKey:     channelKey,
		ChannelKeyHash: channelKeyHash,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
