// Package sqliteutil opens the sqlite-compatible databases the services
// store their state in, either a local file or a remote libsql instance.
package sqliteutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func wrapOpen(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// Open connects to the database described by config. When Url is empty
// it opens File as a local sqlite database in WAL mode, otherwise it
// connects to the remote libsql instance at Url.
func Open(config Config) (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, wrapOpen(fmt.Errorf("neither a file nor a url was specified"))
		}
		if config.File != ":memory:" {
			os.MkdirAll(filepath.Dir(config.File), 0777)
		}

		db, err := sql.Open("sqlite", config.File)
		if err != nil {
			return nil, wrapOpen(err)
		}

		// see this stackoverflow post for information on why the following
		// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
		db.SetMaxOpenConns(1)
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			return nil, wrapOpen(err)
		}
		return db, nil
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	db, err := sql.Open("libsql", config.Url+"?"+values.Encode())
	if err != nil {
		return nil, wrapOpen(err)
	}
	return db, nil
}

// OpenWithSchema opens the database and applies the given schema. The
// schema must be written so that re-applying it is a no-op.
func OpenWithSchema(config Config, schema string) (*sql.DB, error) {
	db, err := Open(config)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
