package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const sealedPrefix = "sb1:"

var ErrCredentialSecretMissing = errors.New("credential secret not configured")

func credentialKey(secret string) *[32]byte {
	key := sha256.Sum256([]byte(secret))
	return &key
}

// SealCredential encrypts a personal API credential for storage.
func SealCredential(secret, plaintext string) (string, error) {
	if secret == "" {
		return "", ErrCredentialSecretMissing
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, credentialKey(secret))
	return sealedPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// OpenCredential reverses SealCredential. Values without the sealed prefix
// were written by older clients and are returned as-is.
func OpenCredential(secret, stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	if secret == "" {
		return "", ErrCredentialSecretMissing
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", err
	}
	if len(raw) < 24 {
		return "", errors.New("sealed credential too short")
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, credentialKey(secret))
	if !ok {
		return "", errors.New("sealed credential could not be opened")
	}
	return string(plain), nil
}
