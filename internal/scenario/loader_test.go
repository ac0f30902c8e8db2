package scenario

import (
	"errors"
	"testing"
)

func TestLoaderLoadAll(t *testing.T) {
	defs, err := NewLoader("testdata").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("LoadAll() returned %d scenarios, expected 2 (broken file skipped)", len(defs))
	}
	if defs[0].ID != "field" || defs[1].ID != "lane" {
		t.Errorf("IDs = %s, %s; expected field, lane", defs[0].ID, defs[1].ID)
	}
	if defs[0].FilePath == "" {
		t.Error("FilePath not set")
	}
}

func TestLoaderLoadByID(t *testing.T) {
	l := NewLoader("testdata")

	def, err := l.LoadByID("lane")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if def.Seed != 3 {
		t.Errorf("Seed = %d, expected 3", def.Seed)
	}

	_, err = l.LoadByID("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadByID(nope) error = %v, expected ErrNotFound", err)
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	if _, err := NewLoader("testdata/missing").LoadAll(); err == nil {
		t.Error("LoadAll() on a missing directory should fail")
	}
}
