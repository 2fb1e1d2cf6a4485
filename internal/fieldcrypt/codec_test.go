package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New("test-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	for _, plain := range []string{"Firulais", "María López", "a", "0999999999"} {
		env, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plain, err)
		}
		if !strings.HasPrefix(env, EnvelopePrefix) {
			t.Fatalf("envelope %q lacks marker %q", env, EnvelopePrefix)
		}
		if got := c.Decrypt(env); got != plain {
			t.Fatalf("Decrypt(Encrypt(%q)) = %q", plain, got)
		}
	}
}

func TestEncryptIsSalted(t *testing.T) {
	c := newTestCodec(t)

	a, _ := c.Encrypt("Firulais")
	b, _ := c.Encrypt("Firulais")
	if a == b {
		t.Fatal("two envelopes for the same value must differ")
	}
}

func TestDecryptPassthrough(t *testing.T) {
	c := newTestCodec(t)

	cases := []string{
		"",         // empty in, empty out
		"Firulais", // legacy plaintext, never encrypted
		"U2Fsd-but-not-actually-an-envelope",
	}
	for _, in := range cases {
		if got := c.Decrypt(in); got != in {
			t.Fatalf("Decrypt(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestDecryptCorruptEnvelopeFallsBack(t *testing.T) {
	c := newTestCodec(t)

	corrupt := []string{
		EnvelopePrefix + "!!!not-base64!!!",
		EnvelopePrefix + base64.StdEncoding.EncodeToString([]byte("short")),
		EnvelopePrefix + base64.StdEncoding.EncodeToString(make([]byte, 40)),
	}
	for _, in := range corrupt {
		if got := c.Decrypt(in); got != in {
			t.Fatalf("corrupt envelope must come back unchanged, got %q", got)
		}
	}
}

func TestDecryptForeignKeyFallsBack(t *testing.T) {
	c := newTestCodec(t)
	other, _ := New("another-secret")

	env, _ := other.Encrypt("Firulais")
	if got := c.Decrypt(env); got != env {
		t.Fatalf("envelope under a foreign key must come back unchanged, got %q", got)
	}
}

// legacySeal builds the OpenSSL "Salted__" envelope CryptoJS wrote
// before the version tag existed.
func legacySeal(t *testing.T, secret, plaintext string) string {
	t.Helper()

	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		t.Fatal(err)
	}

	key, iv := evpBytesToKey([]byte(secret), salt, 32, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}

	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append([]byte(plaintext), make([]byte, pad)...)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(pad)
	}

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	raw := append([]byte("Salted__"), salt...)
	raw = append(raw, out...)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecryptLegacyEnvelope(t *testing.T) {
	c := newTestCodec(t)

	env := legacySeal(t, "test-secret", "Firulais")
	if !strings.HasPrefix(env, "U2FsdGVk") {
		t.Fatalf("legacy envelope %q lacks the OpenSSL prefix", env)
	}
	if got := c.Decrypt(env); got != "Firulais" {
		t.Fatalf("legacy Decrypt = %q, want Firulais", got)
	}
}

func TestDecryptLegacyWrongSecretFallsBack(t *testing.T) {
	c := newTestCodec(t)

	env := legacySeal(t, "another-secret", "Firulais")
	if got := c.Decrypt(env); got != env {
		t.Fatalf("legacy envelope under a foreign key must come back unchanged, got %q", got)
	}
}
