package board

import "testing"

func TestIsCheckmateBackRank(t *testing.T) {
	// White Ra8 mates the black king on h8, boxed in by its own pawns.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}
	if got := pos.GenerateLegalMoves().Len(); got != 0 {
		t.Errorf("expected no legal moves, got %d", got)
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate")
	}
}

func TestIsCheckmateFalseWhenKingCanCapture(t *testing.T) {
	// The "attacking" rook on g8 is adjacent and undefended, so Kh8xg8 escapes.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	if pos.IsCheckmate() {
		t.Error("expected king's capture of the checking rook to rule out checkmate")
	}
}

func TestIsStalemate(t *testing.T) {
	// Classic king-and-queen stalemate: black to move, not in check, no legal moves.
	pos, err := ParseFEN("7k/8/6Q1/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()

	if pos.InCheck() {
		t.Fatal("stalemate position must not be in check")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate must not also report as checkmate")
	}
}
