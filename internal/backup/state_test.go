package backup

import "testing"

// TestStateDBRoundTrip verifies snapshot dedup state survives reopening.
func TestStateDBRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}

	current, err := s.IsCurrent("backup", 100, "abc")
	if err != nil {
		t.Fatalf("IsCurrent: %v", err)
	}
	if current {
		t.Error("fresh state db reported snapshot as current")
	}

	if err := s.MarkWritten("backup", 100, "abc"); err != nil {
		t.Fatalf("MarkWritten: %v", err)
	}
	if current, _ = s.IsCurrent("backup", 100, "abc"); !current {
		t.Error("snapshot not current after MarkWritten")
	}
	if current, _ = s.IsCurrent("backup", 100, "def"); current {
		t.Error("changed hash still reported current")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen: the record must persist.
	s2, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if current, _ = s2.IsCurrent("backup", 100, "abc"); !current {
		t.Error("snapshot state lost across reopen")
	}
}

// TestHashBytes pins the hash encoding.
func TestHashBytes(t *testing.T) {
	got := HashBytes([]byte("hello"))
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("HashBytes = %q, want %q", got, want)
	}
}
