package util

import (
	"testing"
	"time"
)

const testSecret = "test-secret-for-unit-tests-only!"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("admin", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() failed: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT() failed: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want %q", claims.Username, "admin")
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("admin", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, "a-different-secret-entirely!!!!!"); err == nil {
		t.Error("ParseJWT() should reject a token signed with another secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT("admin", testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("ParseJWT() should reject an expired token")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token", testSecret); err == nil {
		t.Error("ParseJWT() should reject a malformed token")
	}
}
