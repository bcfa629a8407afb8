package kpi

import (
	"math"
	"sort"
	"strings"
)

// Percentage returns fact as a percent of plan. A zero plan yields 0.
func Percentage(fact, plan float64) float64 {
	if plan == 0 {
		return 0
	}
	return 100 * fact / plan
}

func Grade(percentage float64) int {
	if math.IsNaN(percentage) {
		return 0
	}
	for grade, ceiling := range gradeCeilings {
		if percentage <= ceiling {
			return grade
		}
	}
	return GradeCount - 1
}

// AggregateBonus is the unweighted mean of the metric percentages.
func AggregateBonus(metrics []MetricRecord) float64 {
	if len(metrics) == 0 {
		return 0
	}
	sum := 0.0
	for _, metric := range metrics {
		sum += metric.Percentage
	}
	return sum / float64(len(metrics))
}

// BonusShare splits the aggregate bonus across employeeCount employees.
// A non-positive count applies no bonus at all.
func BonusShare(bonus float64, employeeCount int) float64 {
	if employeeCount <= 0 {
		return 0
	}
	return bonus / float64(employeeCount)
}

func RecomputeMetric(metric MetricRecord) MetricRecord {
	metric.Percentage = Percentage(metric.Fact, metric.Plan)
	return metric
}

// RecomputeEmployee derives Percentage and Grade from Plan and Fact only, so
// repeated calls never accumulate bonus.
func RecomputeEmployee(employee EmployeeRecord, bonus float64, employeeCount int) EmployeeRecord {
	final := Percentage(employee.Fact, employee.Plan) + BonusShare(bonus, employeeCount)
	employee.Percentage = final
	employee.Grade = Grade(final)
	return employee
}

// Recompute runs a full pass and returns a new slice; the input is not modified.
func Recompute(employees []EmployeeRecord, metrics []MetricRecord, employeeCount int) []EmployeeRecord {
	bonus := AggregateBonus(metrics)
	out := make([]EmployeeRecord, len(employees))
	for i, employee := range employees {
		out[i] = RecomputeEmployee(employee, bonus, employeeCount)
	}
	return out
}

func Summarize(employees []EmployeeRecord, metrics []MetricRecord, employeeCount int) Summary {
	bonus := AggregateBonus(metrics)
	summary := Summary{
		Employees:      len(employees),
		EmployeeCount:  employeeCount,
		AggregateBonus: bonus,
		BonusShare:     BonusShare(bonus, employeeCount),
	}
	gradeSum := 0
	for _, employee := range employees {
		summary.TotalPlan += employee.Plan
		summary.TotalFact += employee.Fact
		gradeSum += employee.Grade
		if employee.Grade >= 0 && employee.Grade < GradeCount {
			summary.GradeDistribution[employee.Grade]++
		}
	}
	if len(employees) > 0 {
		summary.AverageGrade = float64(gradeSum) / float64(len(employees))
	}
	summary.OverallPercentage = Percentage(summary.TotalFact, summary.TotalPlan)
	return summary
}

// Ranked returns a copy ordered by Percentage, highest first.
func Ranked(employees []EmployeeRecord) []EmployeeRecord {
	out := append([]EmployeeRecord(nil), employees...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

func ParseField(raw string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "plan":
		return FieldPlan, nil
	case "fact":
		return FieldFact, nil
	default:
		return 0, ErrUnknownField
	}
}
