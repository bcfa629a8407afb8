package kpi

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Board owns one employee set, one metric set and the employee count
// divisor. It is not safe for concurrent use; Service adds locking.
type Board struct {
	employees     []EmployeeRecord
	metrics       []MetricRecord
	employeeCount int
	newID         func() string
}

type BoardOption func(*Board)

func WithIDGenerator(fn func() string) BoardOption {
	return func(b *Board) {
		if fn != nil {
			b.newID = fn
		}
	}
}

func NewBoard(opts ...BoardOption) *Board {
	b := &Board{newID: uuid.NewString}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Employees() []EmployeeRecord {
	return append(make([]EmployeeRecord, 0, len(b.employees)), b.employees...)
}

func (b *Board) Metrics() []MetricRecord {
	return append(make([]MetricRecord, 0, len(b.metrics)), b.metrics...)
}

func (b *Board) AggregateBonus() float64 {
	return AggregateBonus(b.metrics)
}

func (b *Board) EmployeeCount() int {
	return b.employeeCount
}

func (b *Board) State() State {
	return State{
		Employees:      b.Employees(),
		Metrics:        b.Metrics(),
		AggregateBonus: b.AggregateBonus(),
		EmployeeCount:  b.employeeCount,
	}
}

func (b *Board) Summary() Summary {
	return Summarize(b.employees, b.metrics, b.employeeCount)
}

// Load replaces the whole snapshot. Ids are assigned where missing and every
// derived field is recomputed from plan and fact.
func (b *Board) Load(employees []EmployeeRecord, metrics []MetricRecord, employeeCount int) {
	b.metrics = make([]MetricRecord, len(metrics))
	for i, metric := range metrics {
		if metric.ID == "" {
			metric.ID = b.newID()
		}
		b.metrics[i] = RecomputeMetric(metric)
	}
	b.employees = make([]EmployeeRecord, len(employees))
	for i, employee := range employees {
		if employee.ID == "" {
			employee.ID = b.newID()
		}
		b.employees[i] = employee
	}
	b.employeeCount = employeeCount
	b.recalculate()
}

func (b *Board) AddEmployee() EmployeeRecord {
	employee := EmployeeRecord{
		ID:   b.newID(),
		Name: b.nextName(DefaultEmployeeNamePrefix, len(b.employees), b.employeeNameTaken),
	}
	b.employees = append(b.employees, employee)
	b.employeeCount++
	b.recalculate()
	return b.employees[len(b.employees)-1]
}

func (b *Board) DeleteEmployee(id string) bool {
	idx := b.employeeIndex(id)
	if idx < 0 {
		return false
	}
	b.employees = append(b.employees[:idx:idx], b.employees[idx+1:]...)
	b.employeeCount--
	b.recalculate()
	return true
}

// UpdateEmployee sets one raw input and recomputes only that employee; the
// result matches what a full pass would produce.
func (b *Board) UpdateEmployee(id string, field Field, value float64) (EmployeeRecord, bool) {
	idx := b.employeeIndex(id)
	if idx < 0 {
		return EmployeeRecord{}, false
	}
	employee := b.employees[idx]
	switch field {
	case FieldPlan:
		employee.Plan = value
	case FieldFact:
		employee.Fact = value
	default:
		return EmployeeRecord{}, false
	}
	b.employees[idx] = RecomputeEmployee(employee, b.AggregateBonus(), b.employeeCount)
	return b.employees[idx], true
}

func (b *Board) AddMetric() MetricRecord {
	metric := RecomputeMetric(MetricRecord{
		ID:   b.newID(),
		Name: b.nextName(DefaultMetricNamePrefix, len(b.metrics), b.metricNameTaken),
		Plan: DefaultMetricPlan,
	})
	b.metrics = append(b.metrics, metric)
	b.recalculate()
	return metric
}

func (b *Board) DeleteMetric(id string) bool {
	idx := b.metricIndex(id)
	if idx < 0 {
		return false
	}
	b.metrics = append(b.metrics[:idx:idx], b.metrics[idx+1:]...)
	b.recalculate()
	return true
}

func (b *Board) UpdateMetric(id string, field Field, value float64) (MetricRecord, bool) {
	idx := b.metricIndex(id)
	if idx < 0 {
		return MetricRecord{}, false
	}
	metric := b.metrics[idx]
	switch field {
	case FieldPlan:
		metric.Plan = value
	case FieldFact:
		metric.Fact = value
	default:
		return MetricRecord{}, false
	}
	b.metrics[idx] = RecomputeMetric(metric)
	b.recalculate()
	return b.metrics[idx], true
}

// SetEmployeeCount sets the divisor directly. It may drift from the number of
// listed employees and no lower bound is enforced.
func (b *Board) SetEmployeeCount(n int) {
	b.employeeCount = n
	b.recalculate()
}

func (b *Board) clone() *Board {
	c := *b
	c.employees = b.Employees()
	c.metrics = b.Metrics()
	return &c
}

// finite reports whether no input or derived value is NaN or infinite.
func (b *Board) finite() bool {
	ok := func(values ...float64) bool {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	for _, m := range b.metrics {
		if !ok(m.Plan, m.Fact, m.Percentage) {
			return false
		}
	}
	for _, e := range b.employees {
		if !ok(e.Plan, e.Fact, e.Percentage) {
			return false
		}
	}
	return ok(b.AggregateBonus())
}

func (b *Board) recalculate() {
	b.employees = Recompute(b.employees, b.metrics, b.employeeCount)
}

func (b *Board) employeeIndex(id string) int {
	for i := range b.employees {
		if b.employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) metricIndex(id string) int {
	for i := range b.metrics {
		if b.metrics[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) employeeNameTaken(name string) bool {
	for _, employee := range b.employees {
		if employee.Name == name {
			return true
		}
	}
	return false
}

func (b *Board) metricNameTaken(name string) bool {
	for _, metric := range b.metrics {
		if metric.Name == name {
			return true
		}
	}
	return false
}

func (b *Board) nextName(prefix string, size int, taken func(string) bool) string {
	n := size + 1
	for {
		name := fmt.Sprintf("%s %d", prefix, n)
		if !taken(name) {
			return name
		}
		n++
	}
}
