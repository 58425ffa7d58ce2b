package security

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(string(hash), "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("pw")
	if err != nil {
		t.Fatal(err)
	}
	if string(first) == string(second) {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := VerifyPassword("pw", []byte("not-a-hash")); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := VerifyPassword("pw", []byte("$bcrypt$v=19$t=1,m=1,p=1$a$b")); err == nil {
		t.Fatal("expected error for wrong algorithm tag")
	}
}
