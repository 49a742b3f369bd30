package uci

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coreengine/chesscore/internal/engine"
)

// syncBuffer guards a bytes.Buffer so the test goroutine can poll output
// the search worker goroutine is concurrently writing to.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestUCI() (*UCI, *syncBuffer, *syncBuffer) {
	eng := engine.NewEngine(4)
	u := New(eng)
	out, errOut := &syncBuffer{}, &syncBuffer{}
	u.out = out
	u.errOut = errOut
	return u, out, errOut
}

func TestHandleUCIIdentify(t *testing.T) {
	u, out, _ := newTestUCI()
	u.handleUCIIdentify()

	got := out.String()
	if !strings.Contains(got, "id name") || !strings.Contains(got, "uciok") {
		t.Errorf("unexpected uci identify output: %q", got)
	}
}

func TestHandlePositionStartpos(t *testing.T) {
	u, _, errOut := newTestUCI()
	u.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"})

	if errOut.String() != "" {
		t.Fatalf("unexpected error output: %s", errOut.String())
	}
	if u.position.SideToMove.String() != "White" {
		t.Errorf("expected white to move after e2e4 e7e5, got %s", u.position.SideToMove.String())
	}
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	u, _, errOut := newTestUCI()
	u.handlePosition([]string{"startpos", "moves", "e2e4", "e2e4"})

	if errOut.String() == "" {
		t.Fatal("expected an error line for an illegal move")
	}
}

func TestHandlePositionFEN(t *testing.T) {
	u, _, errOut := newTestUCI()
	u.handlePosition([]string{"fen", "8/8/8/4k3/8/4K3/4P3/8", "w", "-", "-", "0", "1"})
	if errOut.String() != "" {
		t.Fatalf("unexpected error output: %s", errOut.String())
	}
}

func TestGoDepthProducesBestMove(t *testing.T) {
	u, out, _ := newTestUCI()
	u.handleGo([]string{"depth", "3"})

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "bestmove") {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for bestmove")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStopEndsAnInfiniteSearch(t *testing.T) {
	u, out, _ := newTestUCI()
	u.handleGo([]string{"infinite"})

	time.Sleep(20 * time.Millisecond)
	u.handleStop()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "bestmove") {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for bestmove after stop")
		}
		time.Sleep(time.Millisecond)
	}
}
