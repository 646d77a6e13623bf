package security_test

import (
	"strings"
	"testing"

	"taskhub/internal/apperr"
	"taskhub/internal/security"
)

func TestHashAndCheckRoundTrip(t *testing.T) {
	encoded, err := security.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("expected PHC argon2id encoding, got %q", encoded)
	}

	ok, err := security.CheckPassword("Password1!", encoded)
	if err != nil {
		t.Fatalf("CheckPassword failed: %v", err)
	}
	if !ok {
		t.Fatalf("correct password did not verify")
	}
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	encoded, err := security.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	ok, err := security.CheckPassword("Password2!", encoded)
	if err != nil {
		t.Fatalf("CheckPassword returned error for a plain mismatch: %v", err)
	}
	if ok {
		t.Fatalf("wrong password verified")
	}
}

func TestHashUsesFreshSaltPerCall(t *testing.T) {
	first, err := security.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("first HashPassword failed: %v", err)
	}

	second, err := security.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("second HashPassword failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password are identical; salt is not random")
	}

	// Both still verify against the original password.
	for _, encoded := range []string{first, second} {
		ok, err := security.CheckPassword("Password1!", encoded)
		if err != nil || !ok {
			t.Fatalf("hash %q did not verify: ok=%v err=%v", encoded, ok, err)
		}
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a phc string", "plainly-not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0"},
		{"truncated segments", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := security.CheckPassword("Password1!", tt.encoded)
			if err == nil {
				t.Fatalf("expected error for malformed credential")
			}
			if apperr.KindOf(err) != apperr.KindInternal {
				t.Fatalf("malformed credential should be internal, got %v", apperr.KindOf(err))
			}
		})
	}
}
