package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors surfaced by the manager layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("an account with that email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// isUniqueViolation reports whether err is a unique-constraint failure
// from either supported driver. Email and slug writes use check-then-
// insert with this as the race fallback; true serializability is not
// required here.
func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// openDB opens the relational store. Production uses the mysql driver
// with the DSN built from config; tests open in-memory sqlite3
// databases with the same `?`-placeholder queries.
func openDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

var schemaMySQL = []string{`
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY AUTO_INCREMENT,
	first_name VARCHAR(80) NOT NULL,
	last_name VARCHAR(80) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'user',
	is_active TINYINT(1) NOT NULL DEFAULT 1
)`, `
CREATE TABLE IF NOT EXISTS blog_posts (
	id BIGINT PRIMARY KEY AUTO_INCREMENT,
	author_id BIGINT NOT NULL,
	title VARCHAR(255) NOT NULL,
	slug VARCHAR(255) NOT NULL UNIQUE,
	body MEDIUMTEXT NOT NULL,
	excerpt VARCHAR(500) NOT NULL DEFAULT '',
	is_published TINYINT(1) NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (author_id) REFERENCES users(id)
)`, `
CREATE TABLE IF NOT EXISTS appointments (
	id BIGINT PRIMARY KEY AUTO_INCREMENT,
	user_id BIGINT NOT NULL,
	services VARCHAR(255) NOT NULL,
	notes TEXT NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
)`}

var schemaSQLite = []string{`
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	is_active INTEGER NOT NULL DEFAULT 1
)`, `
CREATE TABLE IF NOT EXISTS blog_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	body TEXT NOT NULL,
	excerpt TEXT NOT NULL DEFAULT '',
	is_published INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (author_id) REFERENCES users(id)
)`, `
CREATE TABLE IF NOT EXISTS appointments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	services TEXT NOT NULL,
	notes TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
)`}

func (app *App) initDatabase() error {
	schema := schemaMySQL
	if app.DB.DriverName() == "sqlite3" {
		schema = schemaSQLite
	}
	for _, stmt := range schema {
		if _, err := app.DB.Exec(stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}
