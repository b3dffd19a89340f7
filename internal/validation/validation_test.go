package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"awa@foodhive.test", "a.b@c.fr"}
	invalid := []string{"", "awa", "awa@", "@foodhive.test", "a b@c.fr", "a@b"}

	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Fatalf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Fatalf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+33612345678", "0612345678", "06 12 34 56 78"}
	invalid := []string{"", "12345", "0012345678", "+3361234567"}

	for _, phone := range valid {
		if !IsValidPhone(phone) {
			t.Fatalf("IsValidPhone(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhone(phone) {
			t.Fatalf("IsValidPhone(%q) = true, want false", phone)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("12345") {
		t.Fatalf("short password must be rejected")
	}
	if !IsValidPassword("123456") {
		t.Fatalf("six characters must be accepted")
	}
}
