package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/8/8/4k3/8/4K3/4P3/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w Qk - 0 1",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		serialized := pos.ToFEN()
		reparsed, err := ParseFEN(serialized)
		if err != nil {
			t.Fatalf("ParseFEN(%q) [round-trip of %q]: %v", serialized, fen, err)
		}

		if *pos != *reparsed {
			t.Errorf("round-trip mismatch for %q:\n  first:  %s\n  second: %s", fen, pos.ToFEN(), reparsed.ToFEN())
		}
	}
}
