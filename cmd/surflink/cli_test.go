package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/surflink/cmd/surflink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"extract", "history", "show", "delete"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "Flags:")
	assert.NoFileExists(t, m.DBPath, "help should not create the database")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_ExtractDoesNotOpenDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Stdin = strings.NewReader(`<a href="/a">a</a>`)

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"extract"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "/a\n", stdout.String())
	assert.NoFileExists(t, m.DBPath)
}

func TestMain_Run_InputFormatOverride(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Stdin = strings.NewReader("See [the docs](/docs/intro).\n")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"extract", "--input", "markdown"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "/docs/intro\n", stdout.String())
}

func TestMain_Run_ReportLifecycle(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "surflink.db")
	run := func(stdin string, args ...string) (string, error) {
		m := main.NewMain()
		m.DBPath = dbPath
		m.Stdin = strings.NewReader(stdin)
		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, &bytes.Buffer{})
		return stdout.String(), err
	}

	_, err := run(`<a href="/a">a</a><img src="b.png">`, "extract", "--save")
	require.NoError(t, err)

	history, err := run("", "history")
	require.NoError(t, err)
	id := regexp.MustCompile(`^\S+`).FindString(history)
	require.NotEmpty(t, id)
	assert.Contains(t, history, "  -\n")

	shown, err := run("", "show", id)
	require.NoError(t, err)
	assert.Contains(t, shown, "Links:   2")
	assert.Contains(t, shown, "b.png")

	_, err = run("", "delete", id, "--force")
	require.NoError(t, err)

	history, err = run("", "history")
	require.NoError(t, err)
	assert.Contains(t, history, "No reports found")
}
