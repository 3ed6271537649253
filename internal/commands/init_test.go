package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "qbreport-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "qbreport")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/qbreport")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runQBReport(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runQBReport(t, "", nil, "init", dir)
	require.NoError(t, err)

	for _, d := range []string{"reports", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_RulesFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runQBReport(t, "", nil, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "cashflow.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, `beginning_cash: "0"`)
	assert.Contains(t, contents, "operating:")
	assert.Contains(t, contents, "- Accounts Receivable")
	assert.Contains(t, contents, "investing:")
	assert.Contains(t, contents, "- Fixed Asset")
	assert.Contains(t, contents, "financing:")
	assert.Contains(t, contents, "- Equity")
}

func TestInit_KeepsEditedRules(t *testing.T) {
	dir := t.TempDir()
	edited := "beginning_cash: \"12000\"\noperating:\n  - Bank\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cashflow.yaml"), []byte(edited), 0o644))

	_, err := runQBReport(t, "", nil, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "cashflow.yaml"))
	require.NoError(t, err)
	assert.Equal(t, edited, string(data), "re-init should not clobber an edited rules file")
}

func TestInit_EnvExample(t *testing.T) {
	dir := t.TempDir()
	_, err := runQBReport(t, "", nil, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	contents := string(data)

	for _, v := range []string{"QB_CLIENT_ID=", "QB_CLIENT_SECRET=", "QB_REFRESH_TOKEN=", "QB_REALM_ID=", "QB_ACCESS_TOKEN=", "QB_ENV=sandbox"} {
		assert.Contains(t, contents, v, ".env.example should list %s", v)
	}
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runQBReport(t, "", nil, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	contents := string(data)

	for _, pattern := range []string{"reports/", "logs/", ".env"} {
		assert.Contains(t, contents, pattern, ".gitignore should contain %s", pattern)
	}
}
