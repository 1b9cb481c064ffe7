package utils

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0244123456", "+233244123456"},
		{"024 412 3456", "+233244123456"},
		{"+233244123456", "+233244123456"},
		{"233244123456", "+233244123456"},
		{"2330244123456", "+233244123456"},
	}
	for _, tc := range cases {
		if got := FormatPhone(tc.in); got != tc.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"ama@example.com", "kofi.mensah+permits@mmda.gov.gh"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	invalid := []string{"", "not-an-email", "missing@tld", "@example.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestNormalizeContact(t *testing.T) {
	if got := NormalizeContact("  Ama@Example.COM ", "email"); got != "ama@example.com" {
		t.Errorf("email normalization returned %q", got)
	}
	if got := NormalizeContact("0244123456", "sms"); got != "+233244123456" {
		t.Errorf("sms normalization returned %q", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeInput returned %q", got)
	}
}
