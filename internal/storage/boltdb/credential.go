package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/crmsync/internal/crypto"
	"github.com/iudanet/crmsync/internal/storage"
)

const keyCredential = "credential"

// SaveCredential stores the credential encrypted at rest.
// Сериализованная структура целиком шифруется AES-256-GCM ключом,
// производным от state_secret.
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	encrypted, err := crypto.Encrypt(plaintext, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Put([]byte(keyCredential), encrypted); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

// GetCredential returns the cached credential.
// Returns storage.ErrCredentialNotFound if none is stored.
func (s *Storage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	var encrypted []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		data := bucket.Get([]byte(keyCredential))
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		encrypted = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Decrypt(encrypted, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credential: %w", err)
	}

	cred := &storage.Credential{}
	if err := json.Unmarshal(plaintext, cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return cred, nil
}

// DeleteCredential removes the cached credential
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Delete([]byte(keyCredential)); err != nil {
			return fmt.Errorf("failed to delete credential: %w", err)
		}
		return nil
	})
}
