package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaqflair/timegrid/internal/repository"
	"github.com/shaqflair/timegrid/internal/service"
	"github.com/shaqflair/timegrid/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	docs := service.NewDocumentService(repository.NewSQLiteDocumentRepo(db))
	return &App{
		Documents: docs,
		Imports:   service.NewImportService(docs),
		Timeline:  service.NewTimelineService(),
	}
}

// execute runs the root command with the given args and captures stdout.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestArtifactInitAndList(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "artifact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No artifacts stored.")

	out, err = execute(t, app, "artifact", "init", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Artifact demo ready: 3 phases, 5 items (revision 1)")

	out, err = execute(t, app, "artifact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "demo")
}

func TestArtifactRemoveNeedsForce(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "artifact", "init", "demo")
	require.NoError(t, err)

	_, err = execute(t, app, "artifact", "rm", "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, app, "artifact", "rm", "demo", "--force")
	require.NoError(t, err)

	out, err := execute(t, app, "artifact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No artifacts stored.")
}

func TestPhaseAndItemCommands(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "phase", "add", "--artifact", "demo", "--name", "Handover")
	require.NoError(t, err)
	assert.Contains(t, out, `Added phase "Handover"`)

	phaseID := phaseIDByName(t, app, "demo", "Handover")

	out, err = execute(t, app, "item", "add",
		"--artifact", "demo", "--phase", phaseID,
		"--name", "Closeout", "--start", "2024-03-04", "--end", "2024-03-08")
	require.NoError(t, err)
	assert.Contains(t, out, `Added task "Closeout"`)

	itemID := itemIDByName(t, app, "demo", "Closeout")

	out, err = execute(t, app, "item", "set", itemID,
		"--artifact", "demo", "--status", "at_risk", "--type", "deliverable")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated item")

	out, err = execute(t, app, "item", "shift", itemID, "--artifact", "demo", "--weeks", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "start 2024-02-26")

	_, err = execute(t, app, "item", "dup", itemID, "--artifact", "demo")
	require.NoError(t, err)

	_, err = execute(t, app, "item", "rm", itemID, "--artifact", "demo")
	require.NoError(t, err)

	_, err = execute(t, app, "item", "rm", "missing", "--artifact", "demo")
	require.Error(t, err)
}

func TestItemDepsCommand(t *testing.T) {
	app := newTestApp(t)

	_, err := execute(t, app, "artifact", "init", "demo")
	require.NoError(t, err)
	itemID := itemIDByName(t, app, "demo", "Implementation")

	out, err := execute(t, app, "item", "deps", itemID, "--artifact", "demo", "--query", "review")
	require.NoError(t, err)
	assert.Contains(t, out, "Review package")
	assert.NotContains(t, out, "Kickoff")
}

func TestItemAddRejectsBadEnums(t *testing.T) {
	app := newTestApp(t)
	_, err := execute(t, app, "phase", "add", "--artifact", "demo", "--name", "P")
	require.NoError(t, err)
	phaseID := phaseIDByName(t, app, "demo", "P")

	_, err = execute(t, app, "item", "add",
		"--artifact", "demo", "--phase", phaseID,
		"--name", "X", "--start", "2024-01-01", "--type", "epic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item type")
}

func TestImportCommand(t *testing.T) {
	app := newTestApp(t)

	path := filepath.Join(t.TempDir(), "wbs.json")
	payload := `[{"level":0,"name":"Foundations"},{"level":1,"name":"Survey","due_date":"2024-01-12"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	out, err := execute(t, app, "import", path,
		"--artifact", "demo", "--start", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 items into 1 phases")
	assert.Contains(t, out, "phases +1, items +1")
}

func TestValidateCommand(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "validate", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found.")
}

func TestShowCommand(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "show", "demo", "--from-week", "0", "--to-week", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Planning")
	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "W0")

	_, err = execute(t, app, "show", "demo", "--from-week", "3", "--to-week", "1")
	require.Error(t, err)
}

func TestShowCommandJSON(t *testing.T) {
	app := newTestApp(t)

	out, err := execute(t, app, "show", "demo", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"artifact_id": "demo"`)
	assert.Contains(t, out, `"phases"`)
}

func phaseIDByName(t *testing.T, app *App, artifact, name string) string {
	t.Helper()
	loaded, err := app.Documents.Load(context.Background(), artifact)
	require.NoError(t, err)
	for _, p := range loaded.Doc.Phases {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("phase %q not found", name)
	return ""
}

func itemIDByName(t *testing.T, app *App, artifact, name string) string {
	t.Helper()
	loaded, err := app.Documents.Load(context.Background(), artifact)
	require.NoError(t, err)
	for _, it := range loaded.Doc.Items {
		if strings.HasPrefix(it.Name, name) {
			return it.ID
		}
	}
	t.Fatalf("item %q not found", name)
	return ""
}
