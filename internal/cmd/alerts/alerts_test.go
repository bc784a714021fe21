package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := NewError("Erro ao remover").WithError(errors.New("boom"))
	assert.Equal(t, "✗ Erro ao remover: boom", a.String())
	assert.Equal(t, "✓ saved", NewSuccess("saved").String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

func TestFormatWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatTable)

	require.NoError(t, w.WriteAlert(NewSuccess("Imported 2 items").WithDetails("Zelda", "Contra")))
	assert.Equal(t, "✓ Imported 2 items\n   Zelda\n   Contra\n", buf.String())
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatJSON)

	require.NoError(t, w.WriteAlert(NewWarning("skipped").WithError(errors.New("bad year"))))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "warning", got["level"])
	assert.Equal(t, "skipped", got["message"])
	assert.Equal(t, "bad year", got["error"])
	assert.NotContains(t, got, "timestamp")
}

func TestFormatWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatYAML)

	require.NoError(t, w.WriteAlert(NewInfo("loaded")))
	assert.Contains(t, buf.String(), "level: info")
	assert.Contains(t, buf.String(), "message: loaded")
}

func TestItemAlerts(t *testing.T) {
	saved := ItemSaved("Item salvo com sucesso", "k1")
	assert.Equal(t, LevelSuccess, saved.Level)
	assert.Equal(t, "Item salvo com sucesso", saved.Message)
	assert.Equal(t, []string{"id: k1"}, saved.Details)

	removed := ItemRemoved("k2")
	assert.Equal(t, "✓ Removed item", removed.String())
	assert.Equal(t, []string{"id: k2"}, removed.Details)
}

func TestRecordsSkipped(t *testing.T) {
	a := RecordsSkipped([]InvalidRecord{
		{Index: 1, Title: "Broken", Err: errors.New("bad year")},
		{Index: 4, Title: "", Err: errors.New("missing title")},
	})

	assert.Equal(t, LevelWarning, a.Level)
	assert.Equal(t, "Skipping 2 invalid records", a.Message)
	assert.Equal(t, []string{
		`record 1 ("Broken"): bad year`,
		`record 4 (""): missing title`,
	}, a.Details)
}

func TestImported(t *testing.T) {
	titles := []string{"Zelda", "Contra"}

	dry := Imported(titles, true)
	assert.Equal(t, LevelInfo, dry.Level)
	assert.Equal(t, "Would import 2 items", dry.Message)
	assert.Equal(t, titles, dry.Details)

	done := Imported(titles, false)
	assert.Equal(t, LevelSuccess, done.Level)
	assert.Equal(t, "Imported 2 items", done.Message)
}
