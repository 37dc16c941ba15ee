package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/vocaexam/internal/platform/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "참고 사항,표제어,파생어,쓰기\n" +
	"day1,apple,,\n" +
	",banana,,\n" +
	"day2,cherry,\"(cherries)\",\n" +
	"day3,elder,,\n" +
	",fig,,figs\n"

// run executes the command tree in a temp working directory and returns
// stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// inTempDir switches to a fresh directory holding the test CSV.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("VOCA_CONFIG", "")

	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return path
}

func TestGenerate_Markdown(t *testing.T) {
	csvPath := inTempDir(t)

	stdout, _, err := run(t, "--csv", csvPath, "--log-level", "error",
		"generate", "--day", "3", "--keep-order", "--format", "markdown", "--message", "화이팅")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# Day3,2\n"), stdout)
	assert.Contains(t, stdout, "| 번호 | 단어 | 뜻 쓰기 |")
	for _, word := range []string{"elder", "fig", "figs", "cherry", "cherries"} {
		assert.Contains(t, stdout, " "+word+" ")
	}
	assert.NotContains(t, stdout, "apple")
	assert.True(t, strings.HasSuffix(stdout, "화이팅\n"))
}

// allowCoreFont lets PDF commands run without a TrueType font on the test host.
func allowCoreFont(t *testing.T) {
	t.Helper()
	t.Setenv("VOCA_PDF_ALLOW_CORE_FONT", "true")
}

func TestGenerate_PDFRequiresFont(t *testing.T) {
	csvPath := inTempDir(t)
	t.Setenv("VOCA_PDF_ALLOW_CORE_FONT", "")

	_, _, err := run(t, "--csv", csvPath, "--log-level", "error", "generate", "--day", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrNoFont)

	_, statErr := os.Stat("day2_시험지.pdf")
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_PDF(t *testing.T) {
	csvPath := inTempDir(t)
	allowCoreFont(t)
	out := filepath.Join(t.TempDir(), "exam.pdf")

	stdout, _, err := run(t, "--csv", csvPath, "--log-level", "error", "generate", "--day", "2", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)
	assert.Contains(t, stdout, "4 words")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestGenerate_DefaultFilename(t *testing.T) {
	csvPath := inTempDir(t)
	allowCoreFont(t)

	_, _, err := run(t, "--csv", csvPath, "--log-level", "error", "generate", "--day", "1")
	require.NoError(t, err)

	_, err = os.Stat("day1_시험지.pdf")
	assert.NoError(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	csvPath := inTempDir(t)
	allowCoreFont(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing day", []string{"generate"}},
		{"day zero", []string{"generate", "--day", "0"}},
		{"bad mode", []string{"generate", "--day", "2", "--mode", "diagonal"}},
		{"bad format", []string{"generate", "--day", "2", "--format", "docx"}},
		{"bad words per day", []string{"generate", "--day", "2", "--mode", "position", "--words-per-day", "12"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"--csv", csvPath, "--log-level", "error"}, tc.args...)
			_, _, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_MissingDatasetWarns(t *testing.T) {
	inTempDir(t)

	_, stderr, err := run(t, "--csv", "missing.csv", "--log-level", "error",
		"generate", "--day", "3", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: dataset unavailable")
	assert.Contains(t, stderr, "warning: no words found")
}

func TestDays(t *testing.T) {
	csvPath := inTempDir(t)

	stdout, _, err := run(t, "--csv", csvPath, "--log-level", "error", "days")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", stdout)
}

func TestImportAndExport(t *testing.T) {
	csvPath := inTempDir(t)
	t.Setenv("VOCA_DATASET_SQL_DRIVER", "sqlite")
	t.Setenv("VOCA_DATASET_SQL_URL", filepath.Join(t.TempDir(), "voca.db"))

	stdout, _, err := run(t, "--log-level", "error", "import", csvPath)
	require.NoError(t, err)
	assert.Equal(t, "imported 5 rows from csv\n", stdout)

	t.Setenv("VOCA_DATASET_SOURCE", "sql")

	stdout, _, err = run(t, "--log-level", "error", "days")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3\n", stdout)

	stdout, _, err = run(t, "--log-level", "error", "export")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "참고 사항,표제어,파생어,쓰기", lines[0])
	assert.Equal(t, "day2,cherry,(cherries),", lines[3])
}

func TestImport_RequiresSQLSettings(t *testing.T) {
	csvPath := inTempDir(t)

	_, _, err := run(t, "--log-level", "error", "import", csvPath)
	assert.Error(t, err)
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "", joinInts(nil))
	assert.Equal(t, "4 12", joinInts([]int{4, 12}))
}
