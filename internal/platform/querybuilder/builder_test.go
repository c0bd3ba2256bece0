package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("saturday", "document").
		From("week_states").
		Where(Eq("saturday", "2026-09-05"), IsNull("deleted_at")).
		OrderBy("saturday").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT saturday, document FROM week_states WHERE saturday = $1 AND deleted_at IS NULL ORDER BY saturday LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "2026-09-05" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("saturday").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("week_states").
		Columns("saturday", "document").
		Values("2026-09-05", []byte(`{}`)).
		Suffix("ON CONFLICT (saturday) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO week_states (saturday, document) VALUES ($1, $2) ON CONFLICT (saturday) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "2026-09-05" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRow(t *testing.T) {
	_, _, err := InsertInto("week_states").
		Columns("saturday", "document").
		Values("2026-09-05").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Saturday  string    `db:"saturday"`
		Document  []byte    `db:"document"`
		UpdatedAt time.Time `db:"updated_at"`
		Ignored   string    `db:"-"`
		Untagged  string
	}

	query, args, err := InsertModel("week_states", row{
		Saturday: "2026-09-05",
		Document: []byte(`{}`),
	}, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO week_states (saturday, document, updated_at) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "2026-09-05" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("week_states", "not a struct", ""); err == nil {
		t.Fatal("expected error for non-struct row")
	}
	if _, _, err := InsertModel("week_states", struct{ X int }{}, ""); err == nil {
		t.Fatal("expected error for row without db tags")
	}
}
