package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/fiscalfit/server/internal/errs"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if len(h) == 0 {
		t.Fatal("empty hash")
	}
	if !VerifyPassword("secret1", h) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("secret2", h) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesDiffer(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(h1) == string(h2) {
		t.Fatal("expected per-hash salts to produce distinct hashes")
	}
}

func TestPasswordTooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("x", 80))
	if !errors.Is(err, errs.ErrPasswordTooLong) {
		t.Fatalf("want ErrPasswordTooLong, got %v", err)
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("secret1", []byte("not-a-bcrypt-hash")) {
		t.Fatal("garbage hash verified")
	}
}
