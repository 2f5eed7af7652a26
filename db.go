package evgfx

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// CacheDB records the checksum of every image already converted so that
// unchanged inputs can be skipped on a rescan.
type CacheDB struct {
	db *sql.DB
}

// NewCacheDB opens, creating if necessary, the cache database at file.
func NewCacheDB(file string) (*CacheDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &CacheDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *CacheDB) Close() error {
	return db.db.Close()
}

// CRC returns the stored checksum for path, or the empty string if the path
// has not been seen before.
func (db *CacheDB) CRC(path string) (string, error) {
	var crc string
	switch err := db.db.QueryRow("SELECT crc FROM source WHERE path = ?", path).Scan(&crc); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return crc, nil
	default:
		return "", err
	}
}

// SetCRC stores the checksum for path, replacing any previous value.
func (db *CacheDB) SetCRC(path, crc string) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO source (path, crc) VALUES (?, ?)", path, crc); err != nil {
		return err
	}
	return nil
}
