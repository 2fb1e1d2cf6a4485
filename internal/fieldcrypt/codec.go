package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

// ======================================================
// FIELD-LEVEL ENCRYPTION
// ======================================================
//
// Values written today carry an explicit version tag. Two older
// shapes still exist in the database and must keep reading:
//
//   enc:v1:<base64(nonce|ciphertext)>  current, AES-256-GCM
//   U2FsdGVk...                        CryptoJS AES (OpenSSL "Salted__")
//   anything else                      plaintext written before encryption
//
// Decrypt never fails: a corrupt or foreign value comes back
// unchanged so a read path cannot be taken down by one bad row.

const (
	// EnvelopePrefix marks a value as v1 ciphertext.
	EnvelopePrefix = "enc:v1:"

	// legacyPrefix is base64 of "Salted__", the OpenSSL header
	// CryptoJS emits. Old rows were written in that format.
	legacyPrefix = "U2FsdGVk"

	keyIterations = 4096
	keySalt       = "petpocket-field-key"
)

var ErrNoSecret = errors.New("fieldcrypt: secret is not configured")

type Codec struct {
	secret []byte
	aead   cipher.AEAD
}

// New derives the process-wide key from the configured secret.
// An empty secret is a misconfiguration and refuses to start.
func New(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	key := pbkdf2.Key([]byte(secret), []byte(keySalt), keyIterations, 32, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{
		secret: []byte(secret),
		aead:   aead,
	}, nil
}

// Encrypt seals a PII value into a tagged envelope. The nonce is
// random per call, so encrypting the same value twice yields
// different envelopes.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return EnvelopePrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope, falling back to the value itself for
// anything it cannot open. Empty in, empty out.
func (c *Codec) Decrypt(value string) string {
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, EnvelopePrefix) {
		if plain, ok := c.openV1(value); ok {
			return plain
		}
		return value
	}

	if strings.HasPrefix(value, legacyPrefix) {
		if plain, ok := c.openLegacy(value); ok {
			return plain
		}
		return value
	}

	// Plaintext written before encryption was introduced.
	return value
}

func (c *Codec) openV1(value string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EnvelopePrefix))
	if err != nil {
		return "", false
	}
	if len(raw) < c.aead.NonceSize() {
		return "", false
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plain), true
}

// openLegacy decodes the OpenSSL format CryptoJS writes:
// "Salted__" + 8-byte salt + AES-256-CBC ciphertext, key and IV
// derived from the secret with EVP_BytesToKey over MD5.
func (c *Codec) openLegacy(value string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", false
	}
	if len(raw) < 16 || string(raw[:8]) != "Salted__" {
		return "", false
	}

	salt := raw[8:16]
	body := raw[16:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return "", false
	}

	key, iv := evpBytesToKey(c.secret, salt, 32, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", false
	}

	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, ok := pkcs7Unpad(plain)
	if !ok || !utf8.Valid(plain) {
		return "", false
	}
	return string(plain), true
}

func evpBytesToKey(secret, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(secret)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

func pkcs7Unpad(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, false
		}
	}
	return data[:len(data)-pad], true
}
