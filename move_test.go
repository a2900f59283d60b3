package cchess

import "testing"

func TestMoveString(t *testing.T) {
	m := Move{FromSquare: Square{FileH, Rank2}, ToSquare: Square{FileE, Rank2}}
	if got := m.String(); got != "h2e2" {
		t.Errorf("Move.String() = %q, want %q", got, "h2e2")
	}
	if got := m.UCI(); got != "h2e2" {
		t.Errorf("Move.UCI() = %q, want %q", got, "h2e2")
	}
	if got := m.XBoard(); got != "h2e2" {
		t.Errorf("Move.XBoard() = %q, want %q", got, "h2e2")
	}
}

func TestParseUCIMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"h2e2", Move{Square{FileH, Rank2}, Square{FileE, Rank2}}, false},
		{"h9g7", Move{Square{FileH, Rank9}, Square{FileG, Rank7}}, false},
		{"0000", NullMove, false},
		{"(none)", NullMove, false},
		{"h2e", Move{}, true},
		{"z2e2", Move{}, true},
		{"h2z2", Move{}, true},
	}
	for _, tt := range tests {
		got, err := ParseUCIMove(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUCIMove(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseUCIMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseUCIMoveIdempotent(t *testing.T) {
	m, err := ParseUCIMove("h2e2")
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseUCIMove(m.String())
	if err != nil {
		t.Fatal(err)
	}
	if m != again {
		t.Errorf("round trip through String() changed move: %v != %v", m, again)
	}
}

func TestNullMove(t *testing.T) {
	if !NullMove.IsNull() {
		t.Errorf("NullMove.IsNull() = false, want true")
	}
	m := Move{FromSquare: Square{FileA, Rank0}, ToSquare: Square{FileA, Rank1}}
	if m.IsNull() {
		t.Errorf("ordinary move reported IsNull() = true")
	}
}
