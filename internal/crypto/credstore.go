// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

// Package crypto implements the client's secure credential store.
//
// Secrets are sealed with AES-256-GCM under a key derived via Argon2id
// from a per-device random secret. The device secret and salt live next
// to the sealed credentials; the scheme protects tokens from casual
// file-system readers, matching what a desktop keychain offers without a
// platform dependency.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"github.com/ayudin/go-course-keeper/internal/logger"
)

const (
	deviceSecretFile = "device.key"
	deviceSaltFile   = "device.salt"

	// Argon2id parameters per OWASP (2024): 1 iteration, 64 MiB,
	// 4 threads, 256-bit key.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

type fileCredentialStore struct {
	dir    string
	key    []byte
	logger *logger.Logger
}

// NewFileCredentialStore builds a [CredentialStore] rooted at dir,
// creating the device secret and salt on first use.
func NewFileCredentialStore(dir string, log *logger.Logger) (CredentialStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	secret, err := loadOrCreateRandom(filepath.Join(dir, deviceSecretFile), 32)
	if err != nil {
		return nil, err
	}
	salt, err := loadOrCreateRandom(filepath.Join(dir, deviceSaltFile), 16)
	if err != nil {
		return nil, err
	}

	key := argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return &fileCredentialStore{dir: dir, key: key, logger: log}, nil
}

func (s *fileCredentialStore) Save(key string, data []byte) bool {
	sealed, err := s.seal(data)
	if err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to seal credential")
		return false
	}

	if err = os.WriteFile(s.path(key), sealed, 0o600); err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to persist credential")
		return false
	}
	return true
}

func (s *fileCredentialStore) Load(key string) ([]byte, bool) {
	sealed, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	data, err := s.open(sealed)
	if err != nil {
		s.logger.Warn().Str("key", key).Err(err).Msg("stored credential cannot be opened")
		return nil, false
	}
	return data, true
}

func (s *fileCredentialStore) Delete(key string) bool {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		s.logger.Err(err).Str("key", key).Msg("failed to delete credential")
		return false
	}
	return true
}

func (s *fileCredentialStore) path(key string) string {
	return filepath.Join(s.dir, key+".cred")
}

func (s *fileCredentialStore) seal(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func (s *fileCredentialStore) open(sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, io.ErrUnexpectedEOF
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertext, nil)
}

func loadOrCreateRandom(path string, size int) ([]byte, error) {
	if data, err := os.ReadFile(path); err == nil && len(data) == size {
		return data, nil
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, err
	}
	return data, nil
}
