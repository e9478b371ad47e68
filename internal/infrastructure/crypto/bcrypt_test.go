package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("senha_valida")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "senha_valida" {
		t.Fatalf("hash must not equal the plaintext secret")
	}

	if !h.Verify("senha_valida", hash) {
		t.Fatalf("verify rejected the original secret")
	}
	if h.Verify("senha_errada", hash) {
		t.Fatalf("verify accepted a wrong secret")
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
