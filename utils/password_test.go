package utils

import "testing"

func TestHashPassword(t *testing.T) {
	// Known SHA-256 vector; hashes must stay stable across releases because
	// stored credentials are compared literally.
	got := HashPassword("pw12345")
	want := "4121a448e269b7b5c99269e9c81b1dcb1876c24ff3cfb74081273951a0e04973"
	if got != want {
		t.Errorf("HashPassword(pw12345) = %s, want %s", got, want)
	}

	if HashPassword("a") == HashPassword("b") {
		t.Error("distinct passwords must not collide")
	}
	if len(HashPassword("")) != 64 {
		t.Error("digest must be 64 hex chars")
	}
}
