package auth

import "testing"

func TestHashVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "correct horse battery") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("", "anything") {
		t.Error("empty hash accepted a password")
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	a := GenerateRandomPassword()
	b := GenerateRandomPassword()
	if len(a) < 8 {
		t.Errorf("generated password too short: %q", a)
	}
	if a == b {
		t.Error("two generated passwords were identical")
	}
}

func TestBurnComparisonDoesNotPanic(t *testing.T) {
	BurnComparison("whatever was typed")
}
