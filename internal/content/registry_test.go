package content

import "testing"

func TestKnownTable(t *testing.T) {
	for _, table := range Tables() {
		if !KnownTable(table) {
			t.Fatalf("expected %q to be registered", table)
		}
	}
	for _, name := range []string{"users", "settings", "db_migrations", ""} {
		if KnownTable(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestAllowListsExcludeManagedColumns(t *testing.T) {
	for _, table := range Tables() {
		spec := tableRegistry[table]
		for _, column := range []string{"id", "created_at", "updated_at"} {
			if _, ok := spec.allowed[column]; ok {
				t.Fatalf("table %q must not expose %q for writes", table, column)
			}
		}
	}

	if _, ok := tableRegistry[TablePublications].allowed["downloads"]; ok {
		t.Fatal("downloads counter must not be writable")
	}
	if _, ok := tableRegistry[TableWebinars].allowed["registered_count"]; ok {
		t.Fatal("webinar registration counter must not be writable")
	}
}
