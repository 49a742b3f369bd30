package board

import "testing"

func TestCastlingRightsKingMoveClearsBothSides(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m := NewMove(E1, E2, King, false)
	if !pos.Make(m, AllMoves) {
		t.Fatal("Ke1-e2 should be legal")
	}

	if pos.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Errorf("expected both white castling rights cleared, got %s", pos.CastlingRights)
	}
	if pos.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) == 0 {
		t.Errorf("expected black castling rights untouched, got %s", pos.CastlingRights)
	}
}

func TestCastlingRightsRookMoveClearsOneSide(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m := NewMove(H1, H2, Rook, false)
	if !pos.Make(m, AllMoves) {
		t.Fatal("Rh1-h2 should be legal")
	}

	if pos.CastlingRights&WhiteKingSideCastle != 0 {
		t.Errorf("expected white kingside right cleared, got %s", pos.CastlingRights)
	}
	if pos.CastlingRights&WhiteQueenSideCastle == 0 {
		t.Errorf("expected white queenside right untouched, got %s", pos.CastlingRights)
	}
}

func TestCastlingRightsRookCaptureClearsOneSide(t *testing.T) {
	// Black rook on h8 captures the white rook on h1.
	pos, err := ParseFEN("4k2r/8/8/8/8/8/8/R3K2R b KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m := NewMove(H8, H1, Rook, true)
	if !pos.Make(m, AllMoves) {
		t.Fatal("Rh8xh1 should be legal")
	}

	if pos.CastlingRights&WhiteKingSideCastle != 0 {
		t.Errorf("expected white kingside right cleared by capture on h1, got %s", pos.CastlingRights)
	}
	if pos.CastlingRights&WhiteQueenSideCastle == 0 {
		t.Errorf("expected white queenside right untouched, got %s", pos.CastlingRights)
	}
}

func TestCastlingRightsOtherMovesPreserveRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/2N5/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m := NewMove(C4, D6, Knight, false)
	if !pos.Make(m, AllMoves) {
		t.Fatal("Nc4-d6 should be legal")
	}

	if pos.CastlingRights != AllCastling {
		t.Errorf("expected a knight move to preserve all castling rights, got %s", pos.CastlingRights)
	}
}
