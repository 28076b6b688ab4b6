package device

import "testing"

func TestIDShapeAndStability(t *testing.T) {
	id, err := ID()
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 16 {
		t.Fatalf("expected a 16-char hex id, got %q", id)
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("non-hex character %q in %q", c, id)
		}
	}

	again, err := ID()
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("id must be stable across calls: %q vs %q", id, again)
	}
}
