package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

// New connects the read and write pools. It returns nil when the store driver is not postgres,
// which makes every repository fall back to in-memory storage.
func New(cfg *config.Config) *Connection {
	if !cfg.UsePostgres() {
		log.Info().Str("driver", cfg.Store.Driver).Msg("Postgres disabled, using in-memory store")

		return nil
	}

	conn := &Connection{
		Read:  CreatePostgresReadConn(cfg),
		Write: CreatePostgresWriteConn(cfg),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("Failed to connect to postgres")
	}

	return conn
}

func (c *Connection) Close() error {
	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("failed to close read connection: %w", err)
	}

	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("failed to close write connection: %w", err)
	}

	return nil
}

func writeEndpoint(cfg *config.Config) endpoint {
	write := cfg.DB.Postgres.Write

	return endpoint{write.Host, write.Port, write.Username, write.Password, getDBName(cfg, write.Name), write.SSLMode}
}

func readEndpoint(cfg *config.Config) endpoint {
	read := cfg.DB.Postgres.Read

	return endpoint{read.Host, read.Port, read.Username, read.Password, getDBName(cfg, read.Name), read.SSLMode}
}

func getDBName(cfg *config.Config, baseName string) string {
	return cfg.DB.Postgres.Prefix + baseName
}

func (e endpoint) dsn() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     e.Name,
		RawQuery: url.Values{"sslmode": []string{e.SSLMode}}.Encode(),
	}

	return dsn.String()
}

// WriteDSN returns the connection string of the primary database.
func WriteDSN(cfg *config.Config) string {
	return writeEndpoint(cfg).dsn()
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(cfg *config.Config) *sqlx.DB {
	return CreatePostgresConnection("write", writeEndpoint(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(cfg *config.Config) *sqlx.DB {
	return CreatePostgresConnection("read", readEndpoint(cfg), cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime)
}

// CreatePostgresConnection creates a database connection, retrying up to maxRetry times.
func CreatePostgresConnection(name string, target endpoint, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", target.dsn())
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", target.Host).
				Str("port", target.Port).
				Str("dbName", target.Name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", target.Host).
			Str("port", target.Port).
			Str("dbName", target.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
