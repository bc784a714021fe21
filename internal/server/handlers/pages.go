package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/internal/view"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/filter"
	"github.com/agentstation/retroshelf/pkg/logging"
)

// EditParam selects the record loaded into the form.
const EditParam = "edit"

// HandleIndex handles GET /. Query parameters categoria and plataforma
// narrow the grid; edit fills the form with a record.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	state := h.ensureLoaded(ctx).WithFilter(filter.FromQuery(q))

	page := h.page(state)
	if id := q.Get(EditParam); id != "" {
		it, err := h.ctl.Get(logging.WithItem(ctx, id), id)
		if err != nil {
			page.Alert = form.Message(err)
			logging.FromContext(ctx).Warn().Err(err).Str("item_id", id).Msg("Cannot edit item")
		} else {
			page.Form = form.Fill(it)
		}
	}

	h.renderPage(w, r, http.StatusOK, page)
}

// HandleSubmit handles POST /items. The form is created or updated
// depending on itemId and the page is rendered again with feedback.
// Invalid or failed submits keep the entered values.
func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, h.failedPage(ctx, form.Values{}, err))
		return
	}

	v := form.Read(r.PostForm)
	res, err := h.ctl.Submit(ctx, v)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsValidationError(err) {
			status = http.StatusUnprocessableEntity
		} else {
			logging.FromContext(ctx).Error().Err(err).Str("item_id", v.ItemID).Msg("Failed to save item")
		}
		h.renderPage(w, r, status, h.failedPage(ctx, v, err))
		return
	}

	page := h.page(h.ctl.Snapshot().WithFilter(filter.FromQuery(r.URL.Query())))
	page.Form = res.Values
	page.Feedback = form.Success(res.Message)
	h.renderPage(w, r, http.StatusOK, page)
}

// HandleDelete handles POST /items/{id}/delete. Success redirects to the
// page; failure renders the page with an alert.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := logging.WithItem(r.Context(), id)
	if err := h.ctl.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to delete item")
		page := h.page(h.ensureLoaded(ctx))
		page.Alert = constants.MsgDeleteFailed + form.Message(err)
		status := http.StatusInternalServerError
		if errors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		h.renderPage(w, r, status, page)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleReload handles POST /reload. The page shows the load failure when
// the reload does not succeed.
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.ctl.Reload(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Reload failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleClear handles GET /clear: back to an empty form, keeping filters.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := filter.FromQuery(r.URL.Query()).Values().Encode(); q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleGridFragment handles GET /fragments/grid, the card grid alone.
func (h *Handlers) HandleGridFragment(w http.ResponseWriter, r *http.Request) {
	state := h.ensureLoaded(r.Context()).WithFilter(filter.FromQuery(r.URL.Query()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.GridState(w, state); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to render grid")
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (h *Handlers) page(state controller.State) view.Page {
	return view.Page{
		State:       state,
		UpdatesURL:  h.prefix + "/updates",
		FragmentURL: "/fragments/grid",
	}
}

// failedPage keeps the submitted values and shows the failure under the form.
func (h *Handlers) failedPage(ctx context.Context, v form.Values, err error) view.Page {
	page := h.page(h.ensureLoaded(ctx))
	page.Form = v
	page.Feedback = form.Failure(err)
	return page
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, page view.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, page); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
