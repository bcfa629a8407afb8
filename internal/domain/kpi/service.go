package kpi

import "sync"

// Recorder is notified after every recalculation pass.
type Recorder interface {
	RecordRecalculation(trigger string)
}

// Service serializes access to a Board so that each mutation and the pass
// that follows it are observed as one step.
type Service struct {
	mu       sync.Mutex
	board    *Board
	recorder Recorder
}

func NewService(board *Board, recorder Recorder) *Service {
	if board == nil {
		board = NewBoard()
	}
	return &Service{board: board, recorder: recorder}
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.State()
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Summary()
}

func (s *Service) Employees() []EmployeeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Employees()
}

func (s *Service) Metrics() []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Metrics()
}

func (s *Service) Load(employees []EmployeeRecord, metrics []MetricRecord, employeeCount int) (State, error) {
	return s.mutate(TriggerLoad, func(b *Board) bool {
		b.Load(employees, metrics, employeeCount)
		return true
	})
}

func (s *Service) AddEmployee() (State, error) {
	return s.mutate(TriggerEmployeeAdd, func(b *Board) bool {
		b.AddEmployee()
		return true
	})
}

func (s *Service) DeleteEmployee(id string) (State, error) {
	return s.mutate(TriggerEmployeeDelete, func(b *Board) bool {
		return b.DeleteEmployee(id)
	})
}

func (s *Service) UpdateEmployee(id string, field Field, value float64) (State, error) {
	return s.mutate(TriggerEmployeeUpdate, func(b *Board) bool {
		_, ok := b.UpdateEmployee(id, field, value)
		return ok
	})
}

func (s *Service) AddMetric() (State, error) {
	return s.mutate(TriggerMetricAdd, func(b *Board) bool {
		b.AddMetric()
		return true
	})
}

func (s *Service) DeleteMetric(id string) (State, error) {
	return s.mutate(TriggerMetricDelete, func(b *Board) bool {
		return b.DeleteMetric(id)
	})
}

func (s *Service) UpdateMetric(id string, field Field, value float64) (State, error) {
	return s.mutate(TriggerMetricUpdate, func(b *Board) bool {
		_, ok := b.UpdateMetric(id, field, value)
		return ok
	})
}

func (s *Service) SetEmployeeCount(n int) (State, error) {
	return s.mutate(TriggerEmployeeCountSet, func(b *Board) bool {
		b.SetEmployeeCount(n)
		return true
	})
}

// mutate applies fn to a copy of the board under the lock. The copy replaces
// the board only when every value it holds is finite; otherwise the board is
// left untouched and ErrNonFinite is returned with the current state. The
// recorder hears about a pass only when fn changed something.
func (s *Service) mutate(trigger string, fn func(*Board) bool) (State, error) {
	s.mu.Lock()
	trial := s.board.clone()
	changed := fn(trial)
	if changed && !trial.finite() {
		state := s.board.State()
		s.mu.Unlock()
		return state, ErrNonFinite
	}
	if changed {
		*s.board = *trial
	}
	state := s.board.State()
	s.mu.Unlock()

	if changed && s.recorder != nil {
		s.recorder.RecordRecalculation(trigger)
	}
	return state, nil
}
