package digest

import "testing"

func TestSum_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{
			name: "empty",
			in:   []byte{},
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b85",
		},
		{
			name: "abc",
			in:   []byte("abc"),
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.in); got != tt.want {
				t.Errorf("Sum(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if len(tt.want) != HexSize {
				t.Fatalf("test vector has wrong length: %d, want %d", len(tt.want), HexSize)
			}
		})
	}
}

func TestNewHasher_MatchesSum(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	h := NewHasher()
	_, _ = h.Write(data[:10])
	_, _ = h.Write(data[10:])

	if got, want := HexSum(h), Sum(data); got != want {
		t.Errorf("HexSum(incremental) = %s, want %s", got, want)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid lowercase hex", Sum([]byte("x")), true},
		{"empty", "", false},
		{"too short", "abcd", false},
		{"uppercase rejected", "ABCD" + Sum([]byte("x"))[4:], false},
		{"non-hex chars", "g" + Sum([]byte("x"))[1:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.in); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := Sum([]byte("hello"))

	if got, err := Parse(valid); err != nil || got != valid {
		t.Errorf("Parse(%q) = (%q, %v), want (%q, nil)", valid, got, err, valid)
	}

	if _, err := Parse("not-a-digest"); err == nil {
		t.Error("Parse(invalid) = nil error, want ErrInvalid")
	}
}
