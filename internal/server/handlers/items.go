package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/internal/server/cache"
	"github.com/agentstation/retroshelf/internal/server/response"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/items"
	"github.com/agentstation/retroshelf/pkg/logging"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// ItemRequest is the JSON body of create and update requests. The year is
// accepted as a number or a numeric string.
type ItemRequest struct {
	Title       string          `json:"titulo"`
	Description string          `json:"descricao"`
	Category    string          `json:"categoria"`
	Image       string          `json:"imagem"`
	Platform    string          `json:"plataforma"`
	Year        json.RawMessage `json:"ano"`
	Genre       string          `json:"genero,omitempty"`
}

// Values converts the request into form fields so it is validated exactly
// like a submitted form.
func (req ItemRequest) Values(id string) form.Values {
	return form.Values{
		ItemID:      id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Image:       strings.TrimSpace(req.Image),
		Platform:    strings.TrimSpace(req.Platform),
		Year:        rawYear(req.Year),
		Genre:       strings.TrimSpace(req.Genre),
	}
}

func rawYear(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return strings.TrimSpace(unquoted)
	}
	return s
}

// ListResult is the payload of GET /api/v1/items.
type ListResult struct {
	Items  []items.Item  `json:"items"`
	Filter filter.Filter `json:"filter"`
	Total  int           `json:"total"`
	Count  int           `json:"count"`
}

// HandleListItems handles GET /api/v1/items.
// Query parameters categoria and plataforma filter by exact value.
func (h *Handlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	f := filter.FromQuery(r.URL.Query())
	cacheKey := cache.Key("items", f.Values())
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	state, ok := h.loadedState(w, r)
	if !ok {
		return
	}
	state = state.WithFilter(f)

	result := ListResult{
		Items:  state.View,
		Filter: state.Filter,
		Total:  len(state.Items),
		Count:  len(state.View),
	}
	h.cache.Set(cacheKey, result)
	response.OK(w, result)
}

// HandleFacets handles GET /api/v1/facets.
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "facets"
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	state, ok := h.loadedState(w, r)
	if !ok {
		return
	}
	h.cache.Set(cacheKey, state.Vocabulary)
	response.OK(w, state.Vocabulary)
}

// HandleGetItem handles GET /api/v1/items/{id}.
func (h *Handlers) HandleGetItem(w http.ResponseWriter, r *http.Request, id string) {
	ctx := logging.WithItem(r.Context(), id)
	h.ensureLoaded(ctx)

	it, err := h.ctl.Get(ctx, id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, it)
}

// HandleCreateItem handles POST /api/v1/items.
func (h *Handlers) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeItem(w, r)
	if !ok {
		return
	}

	v := req.Values("")
	if err := form.Validate(v); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	it := v.Item()
	id, err := h.ctl.Create(r.Context(), it)
	if err != nil {
		h.mutationFailed(w, r, "create", "", err)
		return
	}
	response.Created(w, it.WithID(id))
}

// HandleUpdateItem handles PUT /api/v1/items/{id}. The body is merged into
// the stored record; an unknown id is a 404 and nothing is written.
func (h *Handlers) HandleUpdateItem(w http.ResponseWriter, r *http.Request, id string) {
	req, ok := decodeItem(w, r)
	if !ok {
		return
	}

	v := req.Values(id)
	if err := form.Validate(v); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx := logging.WithItem(r.Context(), id)
	if _, err := h.ctl.Get(ctx, id); err != nil {
		h.mutationFailed(w, r, "update", id, err)
		return
	}

	it := v.Item()
	if err := h.ctl.Update(ctx, id, it); err != nil {
		h.mutationFailed(w, r, "update", id, err)
		return
	}
	response.OK(w, it)
}

// HandleDeleteItem handles DELETE /api/v1/items/{id}.
func (h *Handlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request, id string) {
	ctx := logging.WithItem(r.Context(), id)
	if err := h.ctl.Delete(ctx, id); err != nil {
		h.mutationFailed(w, r, "delete", id, err)
		return
	}
	response.OK(w, map[string]any{"id": id, "deleted": true})
}

// HandleReloadAPI handles POST /api/v1/reload.
func (h *Handlers) HandleReloadAPI(w http.ResponseWriter, r *http.Request) {
	if err := h.ctl.Reload(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	state := h.ctl.Snapshot()
	response.OK(w, map[string]any{
		"count":     len(state.Items),
		"loaded_at": state.LoadedAt,
	})
}

// loadedState returns the loaded catalog or writes the load failure.
func (h *Handlers) loadedState(w http.ResponseWriter, r *http.Request) (controller.State, bool) {
	state := h.ensureLoaded(r.Context())
	if !state.Loaded() {
		err := state.Err
		if err == nil {
			err = errors.NewLoadError("items", errors.ErrLoadFailed)
		}
		response.ErrorFromType(w, err)
		return state, false
	}
	return state, true
}

func (h *Handlers) mutationFailed(w http.ResponseWriter, r *http.Request, operation, id string, err error) {
	if errors.IsValidationError(err) || errors.IsNotFound(err) {
		response.ErrorFromType(w, err)
		return
	}

	logging.FromContext(r.Context()).Error().
		Err(err).
		Str("operation", operation).
		Str("item_id", id).
		Msg("Item mutation failed")

	response.ErrorFromType(w, &errors.ResourceError{
		Operation: operation,
		Resource:  "item",
		ID:        id,
		Message:   mutationPrefix(operation) + form.Message(err),
		Err:       err,
	})
}

func mutationPrefix(operation string) string {
	if operation == "delete" {
		return constants.MsgDeleteFailed
	}
	return constants.MsgSaveFailed
}

func decodeItem(w http.ResponseWriter, r *http.Request) (ItemRequest, bool) {
	var req ItemRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body", err.Error())
		return req, false
	}
	return req, true
}
