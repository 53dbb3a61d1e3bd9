package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"url passthrough", "postgres://u:p@localhost:5432/app", "postgres://u:p@localhost:5432/app"},
		{"quoted url", `"postgresql://u:p@db/app"`, "postgresql://u:p@db/app"},
		{"kv adds sslmode", "host=localhost user=app dbname=app", "host=localhost user=app dbname=app sslmode=disable"},
		{"kv keeps sslmode", "host=localhost sslmode=require", "host=localhost sslmode=require"},
		{"kv collapses whitespace", "  host=localhost   user=app ", "host=localhost user=app sslmode=disable"},
		{"empty", "", ""},
		{"opaque unchanged", "file:app.db", "file:app.db"},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Errorf("%s: NormalizeDSN(%q) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}
