package kpi

type EmployeeRecord struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Plan       float64 `json:"plan" yaml:"plan"`
	Fact       float64 `json:"fact" yaml:"fact"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Grade      int     `json:"grade" yaml:"grade"`
}

type MetricRecord struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Plan       float64 `json:"plan" yaml:"plan"`
	Fact       float64 `json:"fact" yaml:"fact"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// State is a consistent, already recalculated view of a board.
type State struct {
	Employees      []EmployeeRecord `json:"employees"`
	Metrics        []MetricRecord   `json:"metrics"`
	AggregateBonus float64          `json:"aggregateBonus"`
	EmployeeCount  int              `json:"employeeCount"`
}

type Summary struct {
	Employees         int             `json:"employees"`
	EmployeeCount     int             `json:"employeeCount"`
	AverageGrade      float64         `json:"averageGrade"`
	TotalPlan         float64         `json:"totalPlan"`
	TotalFact         float64         `json:"totalFact"`
	OverallPercentage float64         `json:"overallPercentage"`
	AggregateBonus    float64         `json:"aggregateBonus"`
	BonusShare        float64         `json:"bonusShare"`
	GradeDistribution [GradeCount]int `json:"gradeDistribution"`
}

// Field selects which raw input of a record an update targets.
type Field int

const (
	FieldPlan Field = iota + 1
	FieldFact
)

func (f Field) String() string {
	switch f {
	case FieldPlan:
		return "plan"
	case FieldFact:
		return "fact"
	default:
		return "unknown"
	}
}
