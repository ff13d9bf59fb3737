package shape

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	var s Shape
	err := json.Unmarshal([]byte(`{"type":"triangle","x":1}`), &s)
	if err == nil {
		t.Fatal("expected an error for unknown shape type")
	}
}

func TestMarshalEmitsOnlyVariantFields(t *testing.T) {
	s := Shape{Type: TypeCircle, CenterX: 1, CenterY: 2, Radius: 3}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, forbidden := range []string{"width", "points", "startX"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("circle encoding leaked field %q: %s", forbidden, got)
		}
	}
	if !strings.Contains(got, `"centerX":1`) {
		t.Errorf("circle encoding missing centerX: %s", got)
	}
}

func TestUnmarshalLegacyRecordWithoutID(t *testing.T) {
	var s Shape
	raw := `{"type":"rect","x":10,"y":20,"width":30,"height":40}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	if s.ID != "" {
		t.Errorf("ID = %q, want empty for legacy record", s.ID)
	}
	if s.X != 10 || s.Height != 40 {
		t.Errorf("decoded rect = %+v", s)
	}
}

func TestMatches(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := a
	b.ID = "other"
	legacy := Shape{Type: TypeRect, X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		s, o Shape
		want bool
	}{
		{"same id wins", a, a, true},
		{"different ids never match", a, b, false},
		{"id-less falls back to value", a, legacy, true},
		{"id-less value mismatch", a, Shape{Type: TypeRect, Width: 1}, false},
		{"different types", a, NewCircle(0, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Matches(tt.o); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyDistinguishesIDs(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(0, 0, 5, 5)
	if a.Key() == b.Key() {
		t.Error("two freshly created shapes must have distinct keys")
	}
	if a.Key() != a.Key() {
		t.Error("Key must be deterministic")
	}
}
