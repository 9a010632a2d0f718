package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestFromPassword(t *testing.T) {
	v, err := FromPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Verify("s3cret") {
		t.Error("correct password rejected")
	}
	if v.Verify("wrong") {
		t.Error("wrong password accepted")
	}
	if v.Verify("") {
		t.Error("empty password accepted")
	}
}

func TestNewBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	v := NewBcrypt(string(hash))
	if !v.Verify("admin") {
		t.Error("correct password rejected")
	}
	if v.Verify("Admin") {
		t.Error("wrong case accepted")
	}
}

func TestUnsetRejectsEverything(t *testing.T) {
	for _, v := range []Verifier{NewBcrypt(""), &Bcrypt{}, mustFrom(t, "")} {
		if v.Verify("") || v.Verify("anything") {
			t.Error("unset verifier accepted a secret")
		}
	}
}

func mustFrom(t *testing.T, pw string) *Bcrypt {
	t.Helper()
	v, err := FromPassword(pw)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
