package form

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/gateway"
	"github.com/agentstation/retroshelf/pkg/items"
	"github.com/agentstation/retroshelf/pkg/store/memory"
)

// recordingSaver counts calls and fails with err when set.
type recordingSaver struct {
	creates []items.Item
	updates map[string]items.Item
	err     error
}

func (r *recordingSaver) Create(_ context.Context, it items.Item) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.creates = append(r.creates, it)
	return "new-key", nil
}

func (r *recordingSaver) Update(_ context.Context, id string, it items.Item) error {
	if r.err != nil {
		return r.err
	}
	if r.updates == nil {
		r.updates = make(map[string]items.Item)
	}
	r.updates[id] = it
	return nil
}

func (r *recordingSaver) calls() int {
	return len(r.creates) + len(r.updates)
}

func validForm() url.Values {
	return url.Values{
		"titulo":     {"  Game X "},
		"descricao":  {"d"},
		"categoria":  {"Arcade"},
		"imagem":     {"u"},
		"plataforma": {"PC"},
		"ano":        {"1990"},
	}
}

func TestReadTrims(t *testing.T) {
	v := Read(validForm())

	assert.Equal(t, "Game X", v.Title)
	assert.Equal(t, "1990", v.Year)
	assert.Equal(t, "", v.Genre)
	assert.False(t, v.IsEdit())

	it := v.Item()
	assert.Equal(t, "Game X", it.Title)
	assert.Equal(t, 1990, it.Year)
}

func TestFillRoundTrip(t *testing.T) {
	it := items.Item{
		ID:          "k1",
		Title:       "Doom",
		Description: "FPS",
		Category:    "Tiro",
		Image:       "u",
		Platform:    "PC",
		Year:        1993,
		Genre:       "FPS",
	}

	v := Fill(it)
	assert.Equal(t, "1993", v.Year)
	assert.True(t, v.IsEdit())
	assert.Equal(t, v, Read(v.Encode()))
	assert.Equal(t, it, v.Item())

	it.Year = 0
	assert.Equal(t, "", Fill(it).Year)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		message string
	}{
		{"missing title", "titulo", "", constants.MsgRequiredFields},
		{"missing description", "descricao", "   ", constants.MsgRequiredFields},
		{"missing category", "categoria", "", constants.MsgRequiredFields},
		{"missing image", "imagem", "", constants.MsgRequiredFields},
		{"missing platform", "plataforma", "", constants.MsgRequiredFields},
		{"missing year", "ano", "", constants.MsgRequiredFields},
		{"non numeric year", "ano", "noventa", constants.MsgInvalidYear},
		{"zero year", "ano", "0", constants.MsgInvalidYear},
		{"year truncating to zero", "ano", "0.4", constants.MsgInvalidYear},
	}

	require.NoError(t, Validate(Read(validForm())))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Set(tt.field, tt.value)

			err := Validate(Read(form))
			require.Error(t, err)

			var verr *errors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestSubmitMissingDescriptionMakesNoCalls(t *testing.T) {
	saver := &recordingSaver{}
	c := NewController(saver)

	form := validForm()
	form.Del("descricao")

	_, err := c.Submit(context.Background(), Read(form))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, constants.MsgRequiredFields, Failure(err).Message)
	assert.Zero(t, saver.calls())
}

func TestSubmitCreates(t *testing.T) {
	saver := &recordingSaver{}
	c := NewController(saver)

	res, err := c.Submit(context.Background(), Read(validForm()))
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "new-key", res.ID)
	assert.Equal(t, constants.MsgCreated, res.Message)
	assert.Equal(t, Values{}, res.Values)
	require.Len(t, saver.creates, 1)
	assert.Empty(t, saver.updates)
}

func TestSubmitUpdates(t *testing.T) {
	saver := &recordingSaver{}
	c := NewController(saver)

	form := validForm()
	form.Set(FieldID, "k1")

	res, err := c.Submit(context.Background(), Read(form))
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, "k1", res.ID)
	assert.Equal(t, constants.MsgUpdated, res.Message)
	assert.Contains(t, saver.updates, "k1")
	assert.Empty(t, saver.creates)
}

func TestSubmitStoreFailure(t *testing.T) {
	saver := &recordingSaver{err: errors.NewResourceError("create", "item", "", errors.New("permission denied"))}
	c := NewController(saver)

	_, err := c.Submit(context.Background(), Read(validForm()))
	require.Error(t, err)

	fb := Failure(err)
	assert.Equal(t, KindError, fb.Kind)
	assert.Equal(t, "text-danger", fb.Class())
	assert.Equal(t, "Erro ao salvar: permission denied", fb.Message)
}

func TestSubmitThenList(t *testing.T) {
	ctx := context.Background()
	g := gateway.New(memory.New())
	c := NewController(g)

	res, err := c.Submit(ctx, Read(validForm()))
	require.NoError(t, err)

	list, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Game X", list[0].Title)
	assert.Equal(t, 1990, list[0].Year)
	assert.Equal(t, res.ID, list[0].ID)
}

func TestFeedbackDefaults(t *testing.T) {
	assert.Equal(t, "text-secondary", Feedback{}.Class())
	assert.Equal(t, "text-success", Success("ok").Class())
	assert.True(t, Feedback{}.IsZero())
	assert.Equal(t, KindMuted, Muted(constants.MsgSaving).Kind)
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
