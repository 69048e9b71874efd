package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biblioteca/library-system/internal/core/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func TestNewTokenCodec_ShortSecret(t *testing.T) {
	if _, err := NewTokenCodec("too-short"); err == nil {
		t.Fatalf("expected error for short secret")
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issued-at %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenCodec_ZeroTTLExpiresImmediately(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// exp == iat, so by the time Verify runs the token is already dead.
	time.Sleep(10 * time.Millisecond)
	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Verify(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewTokenCodec("ffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	token, err := other.Issue("alice", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenCodec_Garbage(t *testing.T) {
	codec := newTestCodec(t)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}
