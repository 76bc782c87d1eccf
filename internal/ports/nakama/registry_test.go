package nakama

import (
	"math/rand"
	"testing"
)

func TestReserveYieldsUniqueFixedWidthCodes(t *testing.T) {
	reg := NewRoomRegistry(4, rand.New(rand.NewSource(1)))

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code := reg.Reserve()
		if len(code) != 4 {
			t.Fatalf("code %q is not 4 digits", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
		if seen[code] {
			t.Fatalf("code %q issued twice", code)
		}
		seen[code] = true
	}
}

func TestLookupIgnoresReservedUnboundCodes(t *testing.T) {
	reg := NewRoomRegistry(4, rand.New(rand.NewSource(1)))

	code := reg.Reserve()
	if _, ok := reg.Lookup(code); ok {
		t.Fatal("reserved code resolved before a match was bound")
	}

	reg.Bind(code, "match-1")
	matchID, ok := reg.Lookup(code)
	if !ok || matchID != "match-1" {
		t.Fatalf("lookup = (%q, %v), want (match-1, true)", matchID, ok)
	}

	if _, ok := reg.Lookup("9999"); ok {
		t.Fatal("unknown code resolved")
	}
}

func TestReleaseFreesCodeForReuse(t *testing.T) {
	reg := NewRoomRegistry(4, rand.New(rand.NewSource(1)))

	code := reg.Reserve()
	reg.Bind(code, "match-1")
	reg.Release(code)
	reg.Release(code) // idempotent

	if _, ok := reg.Lookup(code); ok {
		t.Fatal("released code still resolves")
	}
	if len(reg.Codes()) != 0 {
		t.Fatalf("codes = %v, want empty", reg.Codes())
	}
}
