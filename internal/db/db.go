// Package db manages the SQLite handle used by the local persistence layer.
package db

import (
	"database/sql"

	"github.com/rs/zerolog"
)

type DB interface {
	Init() error

	Get() *sql.DB
	Close() error

	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

var dbLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	dbLogger = l
}
