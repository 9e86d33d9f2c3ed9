package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ivanbrykalov/lecar/lecar"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	c := lecar.New[string, string](lecar.Options{
		CapacityMain: 2, CapacityGhostLFU: 2, CapacityGhostLRU: 2, Seed: 11,
	})
	c.Insert("a", "1")
	c.Insert("b", "2")
	c.Insert("c", "3")

	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		t.Fatalf("write: %v", err)
	}

	restored, err := Read(&buf, lecar.Options{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	wantMain, wantLFU, wantLRU := c.Sizes()
	gotMain, gotLFU, gotLRU := restored.Sizes()
	if gotMain != wantMain || gotLFU != wantLFU || gotLRU != wantLRU {
		t.Fatalf("sizes mismatch: got (%d,%d,%d) want (%d,%d,%d)", gotMain, gotLFU, gotLRU, wantMain, wantLFU, wantLRU)
	}
	if restored.PLFU() != c.PLFU() {
		t.Fatalf("p_LFU mismatch: got %v want %v", restored.PLFU(), c.PLFU())
	}
}

func TestReadRejectsCorruptedPayload(t *testing.T) {
	t.Parallel()

	c := lecar.New[string, string](lecar.Options{CapacityMain: 2, CapacityGhostLFU: 1, CapacityGhostLRU: 1, Seed: 1})
	c.Insert("a", "1")

	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		t.Fatalf("write: %v", err)
	}

	corrupted := strings.Replace(buf.String(), `"a"`, `"z"`, 1)
	_, err := Read(strings.NewReader(corrupted), lecar.Options{})
	if err == nil {
		t.Fatal("want a checksum-mismatch error for a tampered payload")
	}
}
