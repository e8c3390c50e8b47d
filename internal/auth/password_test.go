package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashPassword_GeneratesSalt(t *testing.T) {
	t.Parallel()

	hash, salt, err := HashPassword("hunter22", "")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if len(salt) != saltBytes*2 {
		t.Errorf("salt length: got %d want %d", len(salt), saltBytes*2)
	}
	if _, err := hex.DecodeString(salt); err != nil {
		t.Errorf("salt is not hex: %v", err)
	}
	if len(hash) != sha256.Size*2 {
		t.Errorf("hash length: got %d want %d", len(hash), sha256.Size*2)
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	hash1, salt1, err := HashPassword("hunter22", "")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	hash2, salt2, err := HashPassword("hunter22", "")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if salt1 == salt2 {
		t.Fatalf("expected distinct salts, got %q twice", salt1)
	}
	if hash1 == hash2 {
		t.Fatalf("expected distinct hashes for distinct salts")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	t.Parallel()

	hash1, _, err := HashPassword("hunter22", "aabbccdd")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	hash2, _, err := HashPassword("hunter22", "aabbccdd")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if hash1 != hash2 {
		t.Fatalf("hash mismatch for same password and salt: %q vs %q", hash1, hash2)
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, salt, err := HashPassword("hunter22", "")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("hunter22", hash, salt) {
		t.Errorf("expected correct password to verify")
	}
	if VerifyPassword("hunter23", hash, salt) {
		t.Errorf("expected wrong password to fail")
	}
	if VerifyPassword("hunter22", hash, "deadbeef") {
		t.Errorf("expected wrong salt to fail")
	}
}
