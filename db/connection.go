package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// DBService wraps the shared connection pool used by all repositories.
type DBService struct {
	DB *sql.DB
}

// NewDBService loads environment variables and opens a Postgres
// connection pool via the pgx stdlib driver.
func NewDBService() (*DBService, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	connStr := os.Getenv("DB_CONNECTION_STRING")
	if connStr == "" {
		return nil, fmt.Errorf("missing DB_CONNECTION_STRING in environment variables")
	}

	return NewDBServiceWithConnString(connStr)
}

// NewDBServiceWithConnString opens a pool for an explicit connection
// string. Integration tests use this with a throwaway database.
func NewDBServiceWithConnString(connStr string) (*DBService, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %v", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to the database: %v", err)
	}

	return &DBService{DB: db}, nil
}

// ApplySchema executes the DDL in the given file against the pool.
// The statements are idempotent (CREATE TABLE IF NOT EXISTS).
func (s *DBService) ApplySchema(path string) error {
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read schema file: %v", err)
	}
	if _, err := s.DB.Exec(string(schema)); err != nil {
		return fmt.Errorf("could not apply schema: %v", err)
	}
	return nil
}

// Health pings the database and reports the connection status.
func (s *DBService) Health() map[string]string {
	stats := make(map[string]string)

	if err := s.DB.Ping(); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close closes the database connection pool.
func (s *DBService) Close() error {
	log.Println("Closing database connection")
	return s.DB.Close()
}
