package app

import (
	"math/rand"
	"testing"

	"trivia-duel/internal/domain"
)

func TestQuestionPoolDrawAndRemove(t *testing.T) {
	history := &domain.Category{ID: 1, Name: "History"}
	art := &domain.Category{ID: 2, Name: "Art"}
	pool := NewQuestionPool()
	pool.Add(&domain.Question{ID: "a", Category: history})
	pool.Add(&domain.Question{ID: "b", Category: art})
	pool.Add(&domain.Question{ID: "c", Category: history})
	pool.Add(&domain.Question{ID: "a", Category: art})

	if pool.Len() != 3 || pool.Remaining() != 3 {
		t.Fatalf("expected 3 questions, got len=%d remaining=%d", pool.Len(), pool.Remaining())
	}

	q, ok := pool.DrawNext()
	if !ok || q.ID != "a" {
		t.Fatalf("expected insertion order, got %v", q)
	}
	if !pool.Contains("a") || pool.Remaining() != 2 {
		t.Fatalf("a drawn question stays in the pool until removed")
	}

	if err := pool.Remove("c"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := pool.Undrawn(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only b undrawn, got %v", got)
	}
	if got := pool.ByCategory(history.ID); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only a in History, got %v", got)
	}
	if err := pool.Remove("c"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}

	if q, ok = pool.DrawNext(); !ok || q.ID != "b" {
		t.Fatalf("expected b, got %v", q)
	}
	if _, ok = pool.DrawNext(); ok {
		t.Fatalf("expected an empty queue")
	}
	if pool.Len() != 2 {
		t.Fatalf("expected drawn questions to remain, got %d", pool.Len())
	}
}

func TestPermutationCoversAllOrders(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	seen := make(map[[3]int]int)
	for i := 0; i < 600; i++ {
		labels := permutation(3, rnd)
		seen[[3]int{labels[0], labels[1], labels[2]}]++
	}
	if len(seen) != 6 {
		t.Fatalf("expected all 6 orders, got %v", seen)
	}
	for order, count := range seen {
		if count < 50 {
			t.Fatalf("order %v drawn only %d times out of 600", order, count)
		}
	}
}
