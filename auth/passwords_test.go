// fightclub/auth/passwords_test.go
package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("pw1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if digest == "pw1234" || strings.Contains(digest, "pw1234") {
		t.Error("Digest must not contain the plaintext password")
	}
	if !strings.HasPrefix(digest, "$2a$12$") {
		t.Errorf("Expected a bcrypt digest with cost 12, got prefix %q", digest[:7])
	}

	// Two hashes of the same password must differ (random salt).
	digest2, err := HashPassword("pw1234")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if digest == digest2 {
		t.Error("Expected salted digests to differ between calls")
	}
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	testCases := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{"Correct password", "correct-horse", digest, true},
		{"Wrong password", "battery-staple", digest, false},
		{"Empty password", "", digest, false},
		{"Malformed digest", "correct-horse", "not-a-bcrypt-digest", false},
		{"Empty digest", "correct-horse", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckPassword(tc.plaintext, tc.digest); got != tc.want {
				t.Errorf("CheckPassword(%q, ...) = %v, want %v", tc.plaintext, got, tc.want)
			}
		})
	}
}
