package cchess

import "testing"

func TestPositionUnmarshalMarshalRoundTrip(t *testing.T) {
	pos := &Position{}
	if err := pos.UnmarshalText([]byte(DefaultFEN)); err != nil {
		t.Fatalf("UnmarshalText(%q) error: %v", DefaultFEN, err)
	}
	if pos.SideToMove != Red {
		t.Errorf("SideToMove = %v, want Red", pos.SideToMove)
	}
	if pos.Piece(Square{FileE, Rank0}) != RedKing {
		t.Errorf("Piece(e0) = %v, want RedKing", pos.Piece(Square{FileE, Rank0}))
	}
	if pos.Piece(Square{FileE, Rank9}) != BlackKing {
		t.Errorf("Piece(e9) = %v, want BlackKing", pos.Piece(Square{FileE, Rank9}))
	}
	if pos.Piece(Square{FileB, Rank2}) != RedCannon {
		t.Errorf("Piece(b2) = %v, want RedCannon", pos.Piece(Square{FileB, Rank2}))
	}

	out, err := pos.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(out) != DefaultFEN {
		t.Errorf("MarshalText() = %q, want %q", out, DefaultFEN)
	}
}

func TestPositionUnmarshalInvalid(t *testing.T) {
	tests := []string{
		"",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - -",
		"not a fen at all ? ! ?",
	}
	for _, in := range tests {
		pos := &Position{}
		if err := pos.UnmarshalText([]byte(in)); err == nil {
			t.Errorf("UnmarshalText(%q) expected error, got nil", in)
		}
	}
}

func TestPositionEqualIgnoresMoveCounters(t *testing.T) {
	a := &Position{}
	b := &Position{}
	if err := a.UnmarshalText([]byte(DefaultFEN)); err != nil {
		t.Fatal(err)
	}
	if err := b.UnmarshalText([]byte(DefaultFEN)); err != nil {
		t.Fatal(err)
	}
	b.FullMove = 42
	b.HalfMove = 7
	if !a.Equal(b) {
		t.Errorf("Equal() = false, want true (move counters should be ignored)")
	}
}

func TestPositionSetClearPiece(t *testing.T) {
	pos := &Position{}
	sq := Square{FileE, Rank4}
	pos.SetPiece(RedPawn, sq)
	if got := pos.Piece(sq); got != RedPawn {
		t.Fatalf("Piece(%v) = %v, want RedPawn", sq, got)
	}
	pos.ClearPiece(sq)
	if got := pos.Piece(sq); got != NoPiece {
		t.Fatalf("Piece(%v) after clear = %v, want NoPiece", sq, got)
	}
}

func TestPositionMoveFlipsSideAndCounters(t *testing.T) {
	pos := &Position{}
	if err := pos.UnmarshalText([]byte(DefaultFEN)); err != nil {
		t.Fatal(err)
	}
	m := Move{FromSquare: Square{FileC, Rank3}, ToSquare: Square{FileC, Rank4}}
	pos.Move(m)
	if pos.SideToMove != Black {
		t.Errorf("SideToMove after Red move = %v, want Black", pos.SideToMove)
	}
	if pos.FullMove != 1 {
		t.Errorf("FullMove after Red move = %d, want 1 (increments after Black)", pos.FullMove)
	}
	if pos.Piece(m.ToSquare) != RedPawn {
		t.Errorf("Piece(%v) after move = %v, want RedPawn", m.ToSquare, pos.Piece(m.ToSquare))
	}
	if pos.Piece(m.FromSquare) != NoPiece {
		t.Errorf("Piece(%v) after move = %v, want NoPiece", m.FromSquare, pos.Piece(m.FromSquare))
	}
}

func TestPositionMoveCapture(t *testing.T) {
	pos := &Position{}
	if err := pos.UnmarshalText([]byte(DefaultFEN)); err != nil {
		t.Fatal(err)
	}
	pos.HalfMove = 10
	from := Square{FileB, Rank2}
	to := Square{FileB, Rank9} // not legal, but Move() never checks legality
	pos.SetPiece(BlackRook, to)
	pos.Move(Move{FromSquare: from, ToSquare: to})
	if pos.HalfMove != 0 {
		t.Errorf("HalfMove after capture = %d, want 0", pos.HalfMove)
	}
}
