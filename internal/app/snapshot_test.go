package app_test

import (
	"errors"
	"reflect"
	"testing"

	"trivia-duel/internal/domain"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	service, alice, bob := newStartedMatch(t, append(boolDeck(3), multipleQuestion("M1")), 3)

	q := assign(t, service, alice)
	if _, err := service.HandlePlayerAnswer(alice, q.ID, correctAnswer(q)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	q = assign(t, service, bob)
	if _, _, err := service.SkipQuestion(bob); err != nil {
		t.Fatalf("skip: %v", err)
	}

	snap := service.Snapshot()
	held := service.Match().Assigned(bob)
	next, err := service.HeldQuestion(bob)
	if err != nil {
		t.Fatalf("held: %v", err)
	}
	if _, err := service.HandlePlayerAnswer(bob, held, wrongAnswer(next)); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if err := service.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := service.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Fatalf("restored state differs:\n got %+v\nwant %+v", got, snap)
	}

	m := service.Match()
	if m.CurrentRound() != 1 || m.QuestionsResolved() != 2 || m.Assigned(bob) != held || m.PassedQuestion() != "" {
		t.Fatalf("unexpected restored progress")
	}
	p, _ := m.Player(bob)
	if p.Skips != 1 || p.Points != 0 {
		t.Fatalf("unexpected restored player %+v", p)
	}
	if m.PoolContains(q.ID) {
		t.Fatalf("skipped question must stay resolved")
	}

	snap.Players[0].Points = 99
	snap.Pool[0].Text = "changed"
	if a, _ := m.Player(alice); a.Points != 1 {
		t.Fatalf("restored match must not alias the snapshot, got %d points", a.Points)
	}
	if held, _ := service.HeldQuestion(bob); held.Text == "changed" {
		t.Fatalf("restored pool must not alias the snapshot")
	}

	// The restored match keeps playing from where the snapshot was taken.
	if _, err := service.HandlePlayerAnswer(bob, held, correctAnswer(next)); err != nil {
		t.Fatalf("answer after restore: %v", err)
	}
	if a, _ := service.Match().Player(bob); a.Points != 1 {
		t.Fatalf("expected Bob to score after restore, got %d", a.Points)
	}
}

func TestRestoreRejectsInconsistentSnapshot(t *testing.T) {
	service, alice, _ := newStartedMatch(t, boolDeck(3), 3)
	q := assign(t, service, alice)

	snap := service.Snapshot()
	snap.Assigned[alice] = "unknown"
	if err := service.Restore(snap); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	snap = service.Snapshot()
	snap.CurrentPlayer = "ghost"
	if err := service.Restore(snap); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound for an unknown current player, got %v", err)
	}

	snap = service.Snapshot()
	snap.Categories = append(snap.Categories, domain.Category{ID: snap.Categories[0].ID, Name: "Other"})
	if err := service.Restore(snap); !errors.Is(err, domain.ErrCategoryConflict) {
		t.Fatalf("expected ErrCategoryConflict, got %v", err)
	}

	if service.Match().Assigned(alice) != q.ID || service.Match().PoolSize() != 3 {
		t.Fatalf("a failed restore must leave the match untouched")
	}
}

func TestUndoRevertsLastMove(t *testing.T) {
	service, alice, bob := newStartedMatch(t, boolDeck(3), 3)
	q := assign(t, service, alice)

	service.Checkpoint()
	if _, err := service.HandlePlayerAnswer(alice, q.ID, wrongAnswer(q)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if service.Match().Assigned(bob) != q.ID {
		t.Fatalf("expected the question to pass to Bob")
	}
	if len(service.History()) != 1 {
		t.Fatalf("expected one checkpoint, got %d", len(service.History()))
	}

	if err := service.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	m := service.Match()
	if m.Assigned(alice) != q.ID || m.Assigned(bob) != "" || m.PassedQuestion() != "" || m.CurrentPlayer() != alice {
		t.Fatalf("expected Alice to hold the question again")
	}
	if _, err := service.HandlePlayerAnswer(alice, q.ID, correctAnswer(q)); err != nil {
		t.Fatalf("answer after undo: %v", err)
	}
	if got := points(t, service, alice); got != 1 {
		t.Fatalf("expected Alice to score after undo, got %d", got)
	}

	if err := service.Undo(); !errors.Is(err, domain.ErrSnapshotNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}
