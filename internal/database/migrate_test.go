package database

import (
	"testing"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	expectedTables := []string{"food_formulas", "schedule_templates", "diet_records"}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table '%s' not found: %v", table, err)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("first migration: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migration should not fail: %v", err)
	}

	files, err := migrationFiles()
	if err != nil {
		t.Fatalf("listing migration files: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if count != len(files) {
		t.Errorf("expected %d applied migrations after double run, got %d", len(files), count)
	}
}

func TestMigrate_EnforcesUniqueTemplatePerDate(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO schedule_templates
		(id, timing, custom_food_name, quantity_ml, created_at, updated_at)
		VALUES ('tpl-1', '08:00', 'Oatmeal', 200, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("inserting template: %v", err)
	}

	insert := `INSERT INTO diet_records
		(id, scheduled_date, timing, food_name, quantity_ml, source_template_id, created_at, updated_at)
		VALUES (?, '2025-06-01', '08:00', 'Oatmeal', 200, 'tpl-1', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	if _, err := db.Exec(insert, "rec-1"); err != nil {
		t.Fatalf("inserting first record: %v", err)
	}
	if _, err := db.Exec(insert, "rec-2"); err == nil {
		t.Error("expected unique violation for second record from same template and date")
	}
}
