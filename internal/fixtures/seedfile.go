package fixtures

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

type SeedEmployee struct {
	EmployeeID string `yaml:"employee_id"`
	FullName   string `yaml:"full_name"`
	Email      string `yaml:"email"`
	Department string `yaml:"department"`
}

// SeedFile is the YAML layout read by the seed command.
type SeedFile struct {
	Days         int            `yaml:"days"`
	PresentRatio float64        `yaml:"present_ratio"`
	Employees    []SeedEmployee `yaml:"employees"`
}

// DefaultSeed is the demo roster with fourteen days at 85% presence.
func DefaultSeed() SeedFile {
	demo := DemoEmployees()
	employees := make([]SeedEmployee, len(demo))
	for i, e := range demo {
		employees[i] = SeedEmployee(e)
	}
	return SeedFile{Days: 14, PresentRatio: 0.85, Employees: employees}
}

// LoadSeedFile reads path. Omitted settings fall back to DefaultSeed,
// an empty employee list included.
func LoadSeedFile(path string) (SeedFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var file SeedFile
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return SeedFile{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	def := DefaultSeed()
	if file.Days <= 0 {
		file.Days = def.Days
	}
	if file.PresentRatio <= 0 || file.PresentRatio > 1 {
		file.PresentRatio = def.PresentRatio
	}
	if len(file.Employees) == 0 {
		file.Employees = def.Employees
	}
	return file, nil
}

func (f SeedFile) Requests() []employee.CreateEmployeeRequest {
	out := make([]employee.CreateEmployeeRequest, len(f.Employees))
	for i, e := range f.Employees {
		out[i] = employee.CreateEmployeeRequest(e)
	}
	return out
}
