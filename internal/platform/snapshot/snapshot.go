// Package snapshot reads board snapshots from YAML or JSON documents.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"kpi/internal/domain/kpi"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

type Record struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	Plan float64 `yaml:"plan"`
	Fact float64 `yaml:"fact"`
}

type Snapshot struct {
	// EmployeeCount defaults to the number of employees when omitted.
	EmployeeCount *int     `yaml:"employeeCount"`
	Employees     []Record `yaml:"employees"`
	Metrics       []Record `yaml:"metrics"`
}

func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	return Decode(f)
}

func (s Snapshot) validate() error {
	check := func(kind string, i int, rec Record) error {
		for _, v := range []float64{rec.Plan, rec.Fact} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s %d has a non-finite value", ErrInvalidSnapshot, kind, i+1)
			}
		}
		return nil
	}
	for i, rec := range s.Employees {
		if err := check("employee", i, rec); err != nil {
			return err
		}
	}
	for i, rec := range s.Metrics {
		if err := check("metric", i, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s Snapshot) Count() int {
	if s.EmployeeCount != nil {
		return *s.EmployeeCount
	}
	return len(s.Employees)
}

func (s Snapshot) Records() ([]kpi.EmployeeRecord, []kpi.MetricRecord) {
	employees := make([]kpi.EmployeeRecord, 0, len(s.Employees))
	for _, rec := range s.Employees {
		employees = append(employees, kpi.EmployeeRecord{ID: rec.ID, Name: rec.Name, Plan: rec.Plan, Fact: rec.Fact})
	}
	metrics := make([]kpi.MetricRecord, 0, len(s.Metrics))
	for _, rec := range s.Metrics {
		metrics = append(metrics, kpi.MetricRecord{ID: rec.ID, Name: rec.Name, Plan: rec.Plan, Fact: rec.Fact})
	}
	return employees, metrics
}

// Apply loads the snapshot into svc and returns the recalculated state.
func (s Snapshot) Apply(svc *kpi.Service) (kpi.State, error) {
	employees, metrics := s.Records()
	state, err := svc.Load(employees, metrics, s.Count())
	if err != nil {
		return kpi.State{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return state, nil
}

// Demo is the sample team shown on first start.
func Demo() Snapshot {
	return Snapshot{
		Employees: []Record{
			{Name: "Ivanov A.", Plan: 80000, Fact: 30000},
			{Name: "Petrov B.", Plan: 100000, Fact: 85000},
			{Name: "Sidorova V.", Plan: 75000, Fact: 52000},
		},
		Metrics: []Record{
			{Name: "Work quality", Plan: 100, Fact: 78},
			{Name: "Deadlines", Plan: 100, Fact: 92},
			{Name: "Customer service", Plan: 100, Fact: 65},
		},
	}
}
