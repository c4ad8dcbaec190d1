package util

import "testing"

func TestIsAdminEmail(t *testing.T) {
	config := Config{AdminEmails: []string{"Admin@Example.com", " ops@example.com "}}

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "exact match", email: "admin@example.com", want: true},
		{name: "mixed-case config entry", email: "admin@example.com", want: true},
		{name: "mixed-case input", email: "ADMIN@example.com", want: true},
		{name: "padded config entry", email: "ops@example.com", want: true},
		{name: "not listed", email: "someone@example.com", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.IsAdminEmail(tc.email); got != tc.want {
				t.Fatalf("IsAdminEmail(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}
