package main

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func testConfig() config {
	return config{Prompt: "bf> "}
}

// session runs the REPL over the given stdin text and returns what it wrote
// to stdout and stderr.
func session(t *testing.T, cfg config, stdin string) (string, string) {
	t.Helper()
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var stdout, stderr bytes.Buffer
	r := newRepl(cfg, &stdout, &stderr)
	in := bufio.NewReader(strings.NewReader(stdin))
	r.lines = &plainLines{r: in, w: &stdout, prompt: cfg.Prompt}
	r.input = func() io.Reader { return in }
	r.eofNewline = true
	require.Nil(t, r.loop())
	return stdout.String(), stderr.String()
}

func TestReplEndOfInput(t *testing.T) {
	stdout, stderr := session(t, testConfig(), "")
	require.Equal(t, "bf> \nBye.\n", stdout)
	require.Empty(t, stderr)
}

func TestReplRunsEachLine(t *testing.T) {
	line := strings.Repeat("+", 72) + "." + strings.Repeat("+", 33) + ".\n"
	stdout, stderr := session(t, testConfig(), line)
	require.Equal(t, "bf> Hi\nbf> \nBye.\n", stdout)
	require.Empty(t, stderr)
}

func TestReplFreshTapePerLine(t *testing.T) {
	stdout, _ := session(t, testConfig(), strings.Repeat("+", 49)+".\n.\n")
	require.Equal(t, "bf> 1\nbf> \x00\nbf> \nBye.\n", stdout)
}

func TestReplTrimsLine(t *testing.T) {
	stdout, stderr := session(t, testConfig(), "  "+strings.Repeat("+", 50)+".\t\r\n")
	require.Equal(t, "bf> 2\nbf> \nBye.\n", stdout)
	require.Empty(t, stderr)
}

func TestReplSharesInput(t *testing.T) {
	stdout, _ := session(t, testConfig(), ",.\nA\n")
	// The program consumes 'A'; the newline left behind is an empty program.
	require.Equal(t, "bf> A\nbf> bf> \nBye.\n", stdout)
}

func TestReplReportsErrorsAndContinues(t *testing.T) {
	stdout, stderr := session(t, testConfig(), "+q\n<\n]\n")
	require.Equal(t, "bf> bf> bf> bf> \nBye.\n", stdout)
	require.Contains(t, stderr, "runtime error[E2001]: unexpected character 'q'\n | +q\n |  ^\n")
	require.Contains(t, stderr, "runtime error[E2002]: pointer underflow\n")
	require.Contains(t, stderr, "compile error[E1001]: unbalanced brackets: unmatched ']'")
}

func TestReplStepLimit(t *testing.T) {
	cfg := testConfig()
	cfg.StepLimit = 50
	_, stderr := session(t, cfg, "+[]\n")
	require.Contains(t, stderr, "[E2003]: execution halted after 50 steps")
}

func TestReplQuit(t *testing.T) {
	stdout, _ := session(t, testConfig(), ":quit\n+.\n")
	require.Equal(t, "bf> Bye.\n", stdout)
}

func TestReplHelp(t *testing.T) {
	stdout, _ := session(t, testConfig(), ":help\n")
	require.Contains(t, stdout, ":dis <program>")
	require.Contains(t, stdout, ":check <program>")
}

func TestReplDis(t *testing.T) {
	stdout, _ := session(t, testConfig(), ":dis +[-]\n")
	require.Contains(t, stdout, "| OFFSET | OP  |    NAME    | TARGET |")
	require.Contains(t, stdout, "|      1 | '[' | LOOP_OPEN  |      4 |")
}

func TestReplDisCompileError(t *testing.T) {
	_, stderr := session(t, testConfig(), ":dis [\n")
	require.Contains(t, stderr, "E1001")
}

func TestReplCheck(t *testing.T) {
	stdout, stderr := session(t, testConfig(), ":check +[-]\n:check ]x[\n")
	require.Contains(t, stdout, "ok\n")
	require.Contains(t, stderr, "compile error[1/3]")
	require.Contains(t, stderr, "runtime error[2/3]")
	require.Contains(t, stderr, "found 3 errors")
}

func TestReplStats(t *testing.T) {
	stdout, _ := session(t, testConfig(), ":stats +[[-]>]\n")
	require.Contains(t, stdout, `"bracket_pairs": 2`)
	require.Contains(t, stdout, `"max_depth": 2`)
	require.Contains(t, stdout, `"instruction_count": 7`)
}

func TestReplUnknownCommand(t *testing.T) {
	_, stderr := session(t, testConfig(), ":bogus\n")
	require.Contains(t, stderr, "unknown command :bogus")
}
