package postgres

import "testing"

func TestDialectRebind(t *testing.T) {
	t.Parallel()

	got := Dialect{}.Rebind("UPDATE author SET age = ?, name = ? WHERE id = ?;")
	want := "UPDATE author SET age = $1, name = $2 WHERE id = $3;"
	if got != want {
		t.Fatalf("Rebind() = %q, want %q", got, want)
	}
}

func TestReturningID(t *testing.T) {
	t.Parallel()

	got := ReturningID("INSERT INTO author (age, name) VALUES ($1, $2);")
	want := "INSERT INTO author (age, name) VALUES ($1, $2) RETURNING id;"
	if got != want {
		t.Fatalf("ReturningID() = %q, want %q", got, want)
	}
}
