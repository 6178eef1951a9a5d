package memory

import (
	"context"
	"fmt"
	"sync"

	"resumeapi/internal/model"
	"resumeapi/internal/repository"
)

// CandidateMemory keeps candidates in process memory. Contents are lost on restart.
type CandidateMemory struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	byID   map[int64]*model.Candidate
}

// NewCandidateMemory returns an empty store whose first allocated id is 1.
func NewCandidateMemory() *CandidateMemory {
	return &CandidateMemory{byID: make(map[int64]*model.Candidate)}
}

var _ repository.CandidateRepository = (*CandidateMemory)(nil)

func (s *CandidateMemory) NextID(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID, nil
}

func (s *CandidateMemory) Insert(_ context.Context, c *model.Candidate) error {
	if c == nil {
		return fmt.Errorf("insert: nil candidate")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; ok {
		return fmt.Errorf("insert: candidate %d already exists", c.ID)
	}
	stored := clone(*c)
	s.byID[c.ID] = &stored
	s.order = append(s.order, c.ID)
	return nil
}

func (s *CandidateMemory) FindByID(_ context.Context, id int64) (*model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(*c)
	return &out, nil
}

func (s *CandidateMemory) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *CandidateMemory) All(_ context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]model.Candidate, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, clone(*s.byID[id]))
	}
	return items, nil
}

func (s *CandidateMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// clone copies the skills slice so callers cannot mutate stored records.
func clone(c model.Candidate) model.Candidate {
	if c.Skills != nil {
		c.Skills = append(make([]string, 0, len(c.Skills)), c.Skills...)
	}
	return c
}
