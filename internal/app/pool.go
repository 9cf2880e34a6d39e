package app

import (
	"trivia-duel/internal/domain"
)

// QuestionPool holds the unresolved questions of a match in insertion order.
// Drawing takes a question off the undrawn queue; it stays in the pool until
// Remove is called when the question is resolved.
type QuestionPool struct {
	questions  map[string]*domain.Question
	order      []string
	undrawn    []string
	byCategory map[int][]string
}

func NewQuestionPool() *QuestionPool {
	return &QuestionPool{
		questions:  make(map[string]*domain.Question),
		byCategory: make(map[int][]string),
	}
}

// Add appends a question to the pool and the undrawn queue. Re-adding an id is ignored.
func (p *QuestionPool) Add(q *domain.Question) {
	if _, ok := p.questions[q.ID]; ok {
		return
	}
	p.questions[q.ID] = q
	p.order = append(p.order, q.ID)
	p.undrawn = append(p.undrawn, q.ID)
	if q.Category != nil {
		p.byCategory[q.Category.ID] = append(p.byCategory[q.Category.ID], q.ID)
	}
}

// DrawNext pops the oldest undrawn question. It reports false when none remain.
func (p *QuestionPool) DrawNext() (*domain.Question, bool) {
	for len(p.undrawn) > 0 {
		id := p.undrawn[0]
		p.undrawn = p.undrawn[1:]
		if q, ok := p.questions[id]; ok {
			return q, true
		}
	}
	return nil, false
}

func (p *QuestionPool) Get(id string) (*domain.Question, bool) {
	q, ok := p.questions[id]
	return q, ok
}

func (p *QuestionPool) Contains(id string) bool {
	_, ok := p.questions[id]
	return ok
}

// Remove drops a resolved question from the pool.
func (p *QuestionPool) Remove(id string) error {
	q, ok := p.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	delete(p.questions, id)
	p.order = without(p.order, id)
	p.undrawn = without(p.undrawn, id)
	if q.Category != nil {
		ids := without(p.byCategory[q.Category.ID], id)
		if len(ids) == 0 {
			delete(p.byCategory, q.Category.ID)
		} else {
			p.byCategory[q.Category.ID] = ids
		}
	}
	return nil
}

// Len is the number of unresolved questions, drawn or not.
func (p *QuestionPool) Len() int {
	return len(p.questions)
}

// Remaining is the number of questions that can still be drawn.
func (p *QuestionPool) Remaining() int {
	return len(p.undrawn)
}

// Questions returns the unresolved questions in insertion order.
func (p *QuestionPool) Questions() []*domain.Question {
	out := make([]*domain.Question, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.questions[id])
	}
	return out
}

// ByCategory returns the unresolved questions of one category in insertion order.
func (p *QuestionPool) ByCategory(categoryID int) []*domain.Question {
	ids := p.byCategory[categoryID]
	out := make([]*domain.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.questions[id])
	}
	return out
}

// Undrawn returns the ids still waiting to be drawn, in draw order.
func (p *QuestionPool) Undrawn() []string {
	return append([]string(nil), p.undrawn...)
}

func without(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
