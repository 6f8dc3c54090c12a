package afl

import (
	"errors"
	"testing"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		token     string
		want      Score
		wantTotal int
		wantError bool
	}{
		{"9.10", Score{9, 10}, 64, false},
		{"17.13", Score{17, 13}, 115, false},
		{"0.0", Score{0, 0}, 0, false},
		{"(12.8)", Score{12, 8}, 80, false},
		{" 3.4 ", Score{3, 4}, 22, false},
		{"3.4)", Score{3, 4}, 22, false},
		{"", Score{}, 0, true},
		{"9", Score{}, 0, true},
		{"9.10.2", Score{}, 0, true},
		{"a.b", Score{}, 0, true},
		{"9.", Score{}, 0, true},
		{".10", Score{}, 0, true},
		{"-1.2", Score{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseScore(tt.token)

			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseScore(%q) expected error, got %v", tt.token, got)
				}
				if !errors.Is(err, ErrMalformedField) {
					t.Errorf("ParseScore(%q) error = %v, want ErrMalformedField", tt.token, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseScore(%q) unexpected error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
			if got.Total() != tt.wantTotal {
				t.Errorf("ParseScore(%q).Total() = %d, want %d", tt.token, got.Total(), tt.wantTotal)
			}
		})
	}
}

func TestScore_StringRoundTrip(t *testing.T) {
	for goals := 0; goals <= 30; goals += 3 {
		for behinds := 0; behinds <= 25; behinds += 5 {
			s := Score{Goals: goals, Behinds: behinds}

			parsed, err := ParseScore(s.String())
			if err != nil {
				t.Fatalf("ParseScore(%q) unexpected error: %v", s.String(), err)
			}
			if parsed != s {
				t.Errorf("ParseScore(%q) = %+v, want %+v", s.String(), parsed, s)
			}
			if parsed.Total() != 6*goals+behinds {
				t.Errorf("Total() = %d, want %d", parsed.Total(), 6*goals+behinds)
			}

			wrapped, err := ParseScore("(" + s.String() + ")")
			if err != nil {
				t.Fatalf("ParseScore with parentheses unexpected error: %v", err)
			}
			if wrapped != parsed {
				t.Errorf("parenthesised score = %+v, want %+v", wrapped, parsed)
			}
		}
	}
}

func TestFieldError(t *testing.T) {
	cause := errors.New("bad digits")
	err := NewFieldError("attendance", "12,x", cause)

	if !errors.Is(err, ErrMalformedField) {
		t.Error("FieldError should match ErrMalformedField")
	}
	if !errors.Is(err, cause) {
		t.Error("FieldError should match its cause")
	}
	if errors.Is(err, ErrMalformedMatch) {
		t.Error("FieldError should not match ErrMalformedMatch")
	}

	want := `parsing attendance "12,x": bad digits`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
