// Package database provides persistence for resolved metadata using BoltDB.
//
// Only slow-changing metadata (Kitsu id to title mappings) is stored here.
// Stream links are never persisted: every stream request re-resolves from
// scratch.
package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "data.db"
)

var kitsuBucket = []byte("kitsu_titles")

// KitsuTitle is a cached Kitsu catalog entry.
type KitsuTitle struct {
	KitsuID   string    `json:"kitsu_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Database defines the interface for metadata persistence.
type Database interface {
	// GetKitsuTitle returns the cached title for a Kitsu id, or nil when absent.
	GetKitsuTitle(kitsuID string) (*KitsuTitle, error)
	// StoreKitsuTitle stores a resolved Kitsu title.
	StoreKitsuTitle(entry *KitsuTitle) error
	// Close closes the database.
	Close() error
}

// BoltDB implements Database on top of bbolt.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) the bolt database at dbPath. An empty
// path means the default file in the current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kitsuBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

// GetKitsuTitle returns nil without error when the id has not been cached.
func (b *BoltDB) GetKitsuTitle(kitsuID string) (*KitsuTitle, error) {
	var entry *KitsuTitle
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(kitsuBucket).Get([]byte(kitsuID))
		if data == nil {
			return nil
		}
		var k KitsuTitle
		if err := json.Unmarshal(data, &k); err != nil {
			return fmt.Errorf("failed to decode kitsu entry: %w", err)
		}
		entry = &k
		return nil
	})
	return entry, err
}

func (b *BoltDB) StoreKitsuTitle(entry *KitsuTitle) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode kitsu entry: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kitsuBucket).Put([]byte(entry.KitsuID), data)
	})
}
