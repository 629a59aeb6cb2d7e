package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/loopsleuth/sleuthbench/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSource = `def quadratic_scan(items):
    return [x for x in items if x in items]


def linear_scan(items):
    return list(items)
`

const fakeAnalyzer = `#!/bin/sh
cat > "$8" <<'EOF'
### 1 - ` + "`quadratic_scan`" + `
#### Issue: Quadratic complexity (confidence: high)
**Suggested Optimization**
` + "```python" + `
return set(items)
` + "```" + `
EOF
`

// setupHarness builds a self-contained harness root: one fixture, a
// fake analyzer script that emits a canned report, a model file, and a
// .sleuthbench.yaml wiring them together.
func setupHarness(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	checksDir := filepath.Join(root, "tests", "checks")
	require.NoError(t, os.MkdirAll(checksDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(checksDir, "quadratic.py"), []byte(fixtureSource), 0644))

	binDir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "loopsleuth_bin"), []byte(fakeAnalyzer), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "model.gguf"), []byte("weights"), 0644))

	config := "binary: bin/loopsleuth_bin\nmodel: model.gguf\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".sleuthbench.yaml"), []byte(config), 0644))

	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommand_UpdateGoldenThenVerify(t *testing.T) {
	root := setupHarness(t)

	out, err := execute(t, "run", "--path", root, "--update-golden")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Updated golden file.")
	assert.FileExists(t, filepath.Join(root, "tests", "golden", "quadratic.json"))
	assert.FileExists(t, filepath.Join(root, "tests", "golden", "quadratic", "quadratic_scan.py"))

	out, err = execute(t, "run", "--path", root)
	require.NoError(t, err, out)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "All 1 checks passed.")
}

func TestRunCommand_MissingGoldenFails(t *testing.T) {
	root := setupHarness(t)

	out, err := execute(t, "run", "--path", root)
	require.Error(t, err)
	assert.Contains(t, out, "--update-golden")
}

func TestRunCommand_JSONOutput(t *testing.T) {
	root := setupHarness(t)
	_, err := execute(t, "run", "--path", root, "--update-golden")
	require.NoError(t, err)

	cmd := cli.NewRootCmdForTest()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"run", "--path", root, "--json"})
	require.NoError(t, cmd.Execute())

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary), "stdout should be valid JSON: %s", stdout.String())
	assert.EqualValues(t, 0, summary["failures"])
}

func TestRunCommand_ChecksFilter(t *testing.T) {
	root := setupHarness(t)

	out, err := execute(t, "run", "--path", root, "--checks", "no-such-check")
	require.NoError(t, err, out)
	assert.Contains(t, out, "All 0 checks passed.")
}

func TestRunCommand_MissingBinaryIsReportedPerCheck(t *testing.T) {
	root := setupHarness(t)
	require.NoError(t, os.Remove(filepath.Join(root, "bin", "loopsleuth_bin")))

	out, err := execute(t, "run", "--path", root)
	require.Error(t, err)
	assert.Contains(t, out, "binary not found")
}

func TestListCommand(t *testing.T) {
	root := setupHarness(t)

	out, err := execute(t, "list", "--path", root)
	require.NoError(t, err)
	assert.Contains(t, out, "quadratic")
	assert.Contains(t, out, "no golden")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sleuthbench")
}
