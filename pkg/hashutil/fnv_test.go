package hashutil

import "testing"

func TestEntityKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint32
	}{
		{"lowercase", "foo", 0x408F5E13},
		{"uppercase", "Foo", 0x408F5E13},
		{"all caps", "FOO", 0x408F5E13},
		{"space becomes underscore", "foo bar", 0x3AE35AA1},
		{"space and caps", "Foo Bar", 0x3AE35AA1},
		{"already snake case", "foo_bar", 0x3AE35AA1},
		{"exclamation sanitized", "foo!bar", 0x3AE35AA1},
		{"at sign sanitized", "foo@bar", 0x3AE35AA1},
		{"hyphen preserved", "foo-bar", 0x438B12E3},
		{"digits preserved", "foo123", 0xF3B0067D},
		{"empty string", "", 0x811C9DC5},
		{"single char", "a", 0x050C5D7E},
		{"mixed case and spaces", "My Sensor Name", 0x2760962A},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntityKey(tt.input)
			if got != tt.expected {
				t.Errorf("EntityKey(%q) = %#x, want %#x", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEntityKeyCollisionsMatchSpecScenario(t *testing.T) {
	variants := []string{"foo bar", "Foo Bar", "foo_bar", "foo!bar", "foo@bar"}
	want := EntityKey(variants[0])
	for _, v := range variants[1:] {
		if got := EntityKey(v); got != want {
			t.Errorf("EntityKey(%q) = %#x, want %#x (same key as %q)", v, got, want, variants[0])
		}
	}
}
