package ir

import "testing"

func TestTypeTextRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, tt := range Types() {
		name := tt.String()
		if seen[name] {
			t.Errorf("duplicate type name %q", name)
		}
		seen[name] = true

		d, err := tt.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if back != tt {
			t.Errorf("%s round-tripped to %s", name, back)
		}
	}
	var bad Type
	if err := bad.UnmarshalText([]byte("Nope")); err == nil {
		t.Error("unrecognized type name accepted")
	}
}
