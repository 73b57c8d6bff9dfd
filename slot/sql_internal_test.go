package slot

import "testing"

func TestRebind(t *testing.T) {
	query := `INSERT INTO saves (name, payload) VALUES (?, ?)`

	if got := sqliteDialect.rebind(query); got != query {
		t.Fatalf("sqlite rebind changed query: %s", got)
	}
	want := `INSERT INTO saves (name, payload) VALUES ($1, $2)`
	if got := postgresDialect.rebind(query); got != want {
		t.Fatalf("postgres rebind = %s, want %s", got, want)
	}
}
