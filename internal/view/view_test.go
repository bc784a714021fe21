package view

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
)

func loadedState(list ...items.Item) controller.State {
	return controller.State{
		Items:      list,
		View:       list,
		Vocabulary: filter.Facets(list),
		Status:     controller.StatusLoaded,
		LoadedAt:   time.Now(),
	}
}

func pong() items.Item {
	return items.Item{
		ID:          "k1",
		Title:       `Pong "Classic"`,
		Description: "Tênis de mesa",
		Category:    "Arcade",
		Image:       "https://example.com/pong.png",
		Platform:    "Atari",
		Year:        1972,
	}
}

func render(t *testing.T, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, MustNew().Page(&buf, p))
	return buf.String()
}

func TestPageRendersCards(t *testing.T) {
	out := render(t, Page{State: loadedState(pong())})

	assert.Contains(t, out, "<title>"+DefaultTitle+"</title>")
	assert.Contains(t, out, `alt="Capa de Pong &#34;Classic&#34;"`)
	assert.Contains(t, out, `href="/?edit=k1#form"`)
	assert.Contains(t, out, `action="/items/k1/delete"`)
	assert.Contains(t, out, `data-confirm="Remover &#34;Pong &#34;Classic&#34;&#34;?"`)
	assert.Contains(t, out, "Tênis de mesa")
	assert.Contains(t, out, "1972")
	assert.Contains(t, out, "onerror=")
	assert.NotContains(t, out, constants.MsgEmpty)
	assert.NotContains(t, out, `id="loading"`)
}

func TestPageEmptyState(t *testing.T) {
	out := render(t, Page{State: loadedState()})

	assert.Contains(t, out, `id="emptyState"`)
	assert.Contains(t, out, constants.MsgEmpty)
	assert.NotContains(t, out, `class="card"`)
}

func TestPageLoadError(t *testing.T) {
	s := loadedState(pong())
	s.Status = controller.StatusLoadError

	out := render(t, Page{State: s})

	assert.Contains(t, out, constants.MsgLoadFailed)
	assert.NotContains(t, out, `class="card"`)
}

func TestPageLoading(t *testing.T) {
	out := render(t, Page{State: controller.State{Status: controller.StatusIdle}})
	assert.Contains(t, out, constants.MsgLoading)
}

func TestPageForm(t *testing.T) {
	p := Page{
		State:    loadedState(pong()),
		Form:     form.Fill(pong()),
		Feedback: form.Failure(assert.AnError),
	}

	out := render(t, p)

	assert.Contains(t, out, "Editar jogo")
	assert.Contains(t, out, `name="itemId" value="k1"`)
	assert.Contains(t, out, `name="ano" inputmode="numeric" value="1972"`)
	assert.Contains(t, out, `class="form-text mt-2 text-danger"`)

	out = render(t, Page{State: loadedState(), Feedback: form.Success(constants.MsgCreated)})
	assert.Contains(t, out, "Adicionar jogo")
	assert.Contains(t, out, constants.MsgCreated)
	assert.Contains(t, out, "text-success")
}

func TestPageFilters(t *testing.T) {
	a := pong()
	b := pong()
	b.ID, b.Category, b.Platform = "k2", "RPG", "SNES"

	s := loadedState(a, b).WithFilter(filter.Filter{Category: "RPG"})
	out := render(t, Page{State: s})

	assert.Contains(t, out, `<option value="RPG" selected>RPG</option>`)
	assert.Contains(t, out, `<option value="Arcade">Arcade</option>`)
	assert.Equal(t, 1, strings.Count(out, `class="card"`))
}

func TestPageAlertAndLiveReload(t *testing.T) {
	out := render(t, Page{
		State:       loadedState(),
		Alert:       constants.MsgDeleteFailed + "boom",
		UpdatesURL:  "/api/v1/updates",
		FragmentURL: "/fragments/grid",
	})

	assert.Contains(t, out, "Erro ao remover: boom")
	assert.Contains(t, out, `data-updates="/api/v1/updates"`)
	assert.Contains(t, out, `src="/static/app.js"`)
}

func TestGrid(t *testing.T) {
	var buf bytes.Buffer
	noImage := pong()
	noImage.Image = ""

	require.NoError(t, MustNew().Grid(&buf, []items.Item{noImage}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<div id="grid"`))
	assert.Contains(t, out, "Capa&#43;do&#43;Jogo")
	assert.NotContains(t, out, "<html")
}

func TestGridState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustNew().GridState(&buf, controller.State{Status: controller.StatusLoadError}))
	assert.Contains(t, buf.String(), constants.MsgLoadFailed)
}

func TestCover(t *testing.T) {
	assert.Equal(t, constants.PlaceholderCover, Cover(""))
	assert.Equal(t, "x.png", Cover("x.png"))
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"style.css", "app.js"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}
