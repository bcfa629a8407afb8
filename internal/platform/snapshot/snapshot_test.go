package snapshot

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kpi/internal/domain/kpi"
)

func TestDecodeYAML(t *testing.T) {
	doc := `
employeeCount: 5
employees:
  - name: Ivanov A.
    plan: 80000
    fact: 30000
metrics:
  - id: quality
    name: Quality
    plan: 100
    fact: 78
`
	snap, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Count() != 5 {
		t.Fatalf("expected explicit count 5, got %d", snap.Count())
	}
	employees, metrics := snap.Records()
	if len(employees) != 1 || employees[0].Plan != 80000 {
		t.Fatalf("unexpected employees: %+v", employees)
	}
	if metrics[0].ID != "quality" {
		t.Fatalf("expected metric id kept, got %+v", metrics[0])
	}
}

func TestDecodeJSONDefaultsCount(t *testing.T) {
	doc := `{"employees":[{"name":"A","plan":10,"fact":5},{"name":"B","plan":10,"fact":10}],"metrics":[]}`
	snap, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Count() != 2 {
		t.Fatalf("expected count to follow employees, got %d", snap.Count())
	}
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	snap, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected empty document to decode, got %v", err)
	}
	if snap.Count() != 0 {
		t.Fatalf("expected zero count, got %d", snap.Count())
	}

	if _, err := Decode(strings.NewReader("employees: [oops")); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if _, err := Decode(strings.NewReader("employees:\n  - plan: .nan\n")); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected non-finite value rejected, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	if err := os.WriteFile(path, []byte("employees:\n  - name: A\n    plan: 100\n    fact: 50\n"), 0o600); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	snap, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Employees) != 1 {
		t.Fatalf("expected one employee, got %d", len(snap.Employees))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDemoApply(t *testing.T) {
	svc := kpi.NewService(kpi.NewBoard(), nil)
	state, err := Demo().Apply(svc)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(state.Employees) != 3 || len(state.Metrics) != 3 || state.EmployeeCount != 3 {
		t.Fatalf("unexpected demo state: %+v", state)
	}
	if math.Abs(state.AggregateBonus-235.0/3) > 1e-9 {
		t.Fatalf("expected bonus 78.33, got %v", state.AggregateBonus)
	}
	grades := []int{3, 5, 5}
	for i, employee := range state.Employees {
		if employee.ID == "" {
			t.Fatalf("expected generated id for %s", employee.Name)
		}
		if employee.Grade != grades[i] {
			t.Fatalf("%s: expected grade %d, got %d", employee.Name, grades[i], employee.Grade)
		}
	}
}

func TestApplyRejectsOverflowingSnapshot(t *testing.T) {
	svc := kpi.NewService(kpi.NewBoard(), nil)
	snap := Snapshot{Metrics: []Record{{Name: "Broken", Plan: 1e-10, Fact: 1e300}}}
	if _, err := snap.Apply(svc); !errors.Is(err, ErrInvalidSnapshot) || !errors.Is(err, kpi.ErrNonFinite) {
		t.Fatalf("expected invalid snapshot error, got %v", err)
	}
	if len(svc.Metrics()) != 0 {
		t.Fatal("expected board left empty")
	}
}
