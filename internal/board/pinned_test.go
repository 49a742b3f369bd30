package board

import "testing"

func TestPinnedRookPins(t *testing.T) {
	// White king on e1, white rook on e4 pinned by black rook on e8 along the e-file.
	pos, err := ParseFEN("4r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pinned := pos.Pinned()
	if pinned&SquareBB(E4) == 0 {
		t.Errorf("expected rook on e4 to be pinned, got pinned=%064b", uint64(pinned))
	}
}

func TestPinnedBishopPins(t *testing.T) {
	// White king on a1, white knight on c3 pinned by black bishop on e5 along the a1-h8 diagonal.
	pos, err := ParseFEN("8/8/8/4b3/8/2N5/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pinned := pos.Pinned()
	if pinned&SquareBB(C3) == 0 {
		t.Errorf("expected knight on c3 to be pinned, got pinned=%064b", uint64(pinned))
	}
}

func TestPinnedNoPinsInOpenPosition(t *testing.T) {
	pos := NewPosition()
	if pos.Pinned() != 0 {
		t.Errorf("expected no pinned pieces in starting position, got %064b", uint64(pos.Pinned()))
	}
}
