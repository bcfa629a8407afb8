package kpi

// GradeCount is the number of grades, 0 through 5.
const GradeCount = 6

// gradeCeilings holds the inclusive upper bound of grades 0..4. Anything
// above the last ceiling is grade 5. The band widths are uneven on purpose.
var gradeCeilings = [GradeCount - 1]float64{10, 35, 50, 65, 79}

const (
	DefaultEmployeeNamePrefix = "Employee"
	DefaultMetricNamePrefix   = "Metric"
	DefaultMetricPlan         = 100

	TriggerEmployeeAdd      = "employee.add"
	TriggerEmployeeDelete   = "employee.delete"
	TriggerEmployeeUpdate   = "employee.update"
	TriggerMetricAdd        = "metric.add"
	TriggerMetricDelete     = "metric.delete"
	TriggerMetricUpdate     = "metric.update"
	TriggerEmployeeCountSet = "employee_count.set"
	TriggerLoad             = "load"
)
