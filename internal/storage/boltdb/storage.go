// Package boltdb реализует StateStore поверх BoltDB.
// Здесь живет собственное состояние движка синхронизации: checkpoints,
// кеш учетных данных (зашифрованный), журнал конфликтов и история циклов.
package boltdb

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/crypto"
	"github.com/iudanet/crmsync/internal/storage"
)

var (
	// BoltDB bucket names
	bucketMeta        = []byte("meta")
	bucketCheckpoints = []byte("checkpoints")
	bucketCredentials = []byte("credentials")
	bucketConflicts   = []byte("conflicts")
	bucketHistory     = []byte("history")
)

const keyDerivationSalt = "kdf_salt"

// historyLimit ограничивает количество хранимых результатов на семейство
const historyLimit = 50

// Storage represents BoltDB-backed sync state storage
type Storage struct {
	db            *bbolt.DB
	encryptionKey []byte
	closed        atomic.Bool
}

// New creates a new BoltDB state storage instance.
// dbPath is the path to the database file; secret is the state_secret
// used to derive the credential encryption key.
func New(ctx context.Context, dbPath, secret string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	// Деривируем ключ шифрования кеша учетных данных.
	// Соль создается один раз и хранится в meta bucket.
	salt, err := storage.loadOrCreateSalt()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load key derivation salt: %w", err)
	}

	key, err := crypto.DeriveKey(secret, salt)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}
	storage.encryptionKey = key

	return storage, nil
}

// Close closes the database connection.
// Последующие обращения возвращают storage.ErrStorageClosed.
func (s *Storage) Close() error {
	if s.db == nil || s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// view и update оборачивают транзакции bbolt проверкой закрытия хранилища
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	buckets := [][]byte{bucketMeta, bucketCheckpoints, bucketCredentials, bucketConflicts, bucketHistory}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// loadOrCreateSalt возвращает существующую соль деривации или создает новую
func (s *Storage) loadOrCreateSalt() ([]byte, error) {
	var salt []byte

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		existing := bucket.Get([]byte(keyDerivationSalt))
		if existing != nil {
			salt = append([]byte(nil), existing...)
			return nil
		}

		generated, err := crypto.GenerateSalt()
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(keyDerivationSalt), generated); err != nil {
			return fmt.Errorf("failed to save salt: %w", err)
		}
		salt = generated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return salt, nil
}
