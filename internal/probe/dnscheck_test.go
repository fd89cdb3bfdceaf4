package probe

import "testing"

func TestCheckDNS_InvalidName(t *testing.T) {
	for _, in := range []string{"", "https://still-a-url"} {
		s := CheckDNS(in)
		if s.Class != "INVALID_NAME" {
			t.Fatalf("CheckDNS(%q).Class = %q, want INVALID_NAME", in, s.Class)
		}
	}
}

func TestExtractHost(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://example.com/path", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"db.internal:5432", "db.internal"},
		{"plainhost", "plainhost"},
	}
	for _, c := range cases {
		if got := ExtractHost(c.in); got != c.want {
			t.Fatalf("ExtractHost(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
