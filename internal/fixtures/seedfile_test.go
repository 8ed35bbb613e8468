package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeedFile_ReadsEmployees(t *testing.T) {
	// Setup
	path := writeSeed(t, `
days: 7
present_ratio: 0.5
employees:
  - employee_id: EMP900
    full_name: Dev Malhotra
    email: dev.malhotra@company.in
    department: Design
`)

	// Act
	file, err := LoadSeedFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, file.Days)
	assert.Equal(t, 0.5, file.PresentRatio)
	reqs := file.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "EMP900", reqs[0].EmployeeID)
	assert.Equal(t, "Design", reqs[0].Department)
	assert.NoError(t, reqs[0].Validate())
}

func TestLoadSeedFile_Defaults(t *testing.T) {
	path := writeSeed(t, "present_ratio: 2\n")

	file, err := LoadSeedFile(path)

	require.NoError(t, err)
	assert.Equal(t, 14, file.Days)
	assert.Equal(t, 0.85, file.PresentRatio)
	assert.Len(t, file.Employees, len(DemoEmployees()))
}

func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read seed file")

	_, err = LoadSeedFile(writeSeed(t, "employees: [oops"))
	assert.ErrorContains(t, err, "failed to parse seed file")
}
