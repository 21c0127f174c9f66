package gfx

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ImageDB is the sqlite-backed catalogue of scanned images.
type ImageDB struct {
	db *sql.DB
}

func NewImageDB(file string) (*ImageDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, crc TEXT NOT NULL, thumb BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &ImageDB{
		db: db,
	}, nil
}

func (db *ImageDB) Close() error {
	return db.db.Close()
}

// AddImage records a scanned image, keyed by path so that rescanning a
// modified file updates its row in place.
func (db *ImageDB) AddImage(path string, width, height int, crc string, thumb []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO image (path, width, height, crc, thumb) VALUES (?, ?, ?, ?, ?)", path, width, height, crc, thumb); err != nil {
		return err
	}
	return nil
}

// FindThumbnailByCRC returns the encoded thumbnail of the catalogued image
// with the given CRC, or nil when no such image has been scanned.
func (db *ImageDB) FindThumbnailByCRC(crc string) ([]byte, error) {
	var thumb []byte
	switch err := db.db.QueryRow("SELECT thumb FROM image WHERE crc = ?", crc).Scan(&thumb); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return thumb, nil
	default:
		return nil, err
	}
}

// Count returns the number of catalogued images.
func (db *ImageDB) Count() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM image").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
