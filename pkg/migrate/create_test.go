package migrate

import (
	"os"
	"strings"
	"testing"
)

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Vendor Payouts!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_vendor_payouts.sql") {
		t.Fatalf("unexpected filename: %s", path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stub: %v", err)
	}
	if !strings.Contains(string(body), "+goose Up") || !strings.Contains(string(body), "+goose Down") {
		t.Fatalf("stub missing goose markers:\n%s", body)
	}

	t.Run("unusable name rejected", func(t *testing.T) {
		if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
			t.Fatal("expected error for a name with no usable characters")
		}
	})

	t.Run("dir required", func(t *testing.T) {
		if _, err := CreateSQLMigration("", "ok"); err == nil {
			t.Fatal("expected error for empty dir")
		}
	})
}
