package handlers

import (
	"strings"
	"testing"
)

func TestGenerateTempPassword(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 16; i++ {
		pw, err := generateTempPassword()
		if err != nil {
			t.Fatalf("generateTempPassword error: %v", err)
		}
		if len(pw) != 8 {
			t.Fatalf("length = %d, want 8", len(pw))
		}
		for _, c := range pw {
			if !strings.ContainsRune(tempPasswordChars, c) {
				t.Fatalf("character %q in %q is outside the alphabet", c, pw)
			}
		}
		seen[pw] = struct{}{}
	}

	if len(seen) < 2 {
		t.Fatalf("expected varied passwords, got only %d distinct", len(seen))
	}
}
