package reports

import "time"

type EmployeeRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Plan       float64 `json:"plan"`
	Fact       float64 `json:"fact"`
	Percentage float64 `json:"percentage"`
	Grade      int     `json:"grade"`
}

type MetricRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Plan       float64 `json:"plan"`
	Fact       float64 `json:"fact"`
	Percentage float64 `json:"percentage"`
}

// Request is what the report generator receives.
type Request struct {
	Employees []EmployeeRow `json:"employees"`
	Metrics   []MetricRow   `json:"metrics"`
}

type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Run struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Employees   int        `json:"employees"`
	Metrics     int        `json:"metrics"`
	Filename    string     `json:"filename"`
	Error       string     `json:"error"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}
