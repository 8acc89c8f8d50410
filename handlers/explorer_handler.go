package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/models"
	"mrmelo_sanctuary/utils"
	"mrmelo_sanctuary/views"
)

const slotCookie = "sanctuary_slot"

// ExplorerHandler 探索页面的HTTP入口
type ExplorerHandler struct {
	explorer *views.Explorer
	renderer *views.Renderer
	slotTTL  time.Duration
}

// NewExplorerHandler 创建探索页面处理器
func NewExplorerHandler(explorer *views.Explorer, renderer *views.Renderer, slotTTL time.Duration) *ExplorerHandler {
	return &ExplorerHandler{explorer: explorer, renderer: renderer, slotTTL: slotTTL}
}

// Index GET /explore
func (h *ExplorerHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, func(rw http.ResponseWriter) error {
		return h.renderer.RenderIndex(rw, h.explorer.Index(r.Context()))
	})
}

// View GET /explore/{contentType}/{id}
func (h *ExplorerHandler) View(w http.ResponseWriter, r *http.Request) {
	t, id, ok := focalParams(w, r)
	if !ok {
		return
	}

	page, err := h.explorer.View(r.Context(), h.explorer.Peek(slotID(r)), t, id)
	if err != nil {
		writeHTMLError(w, err)
		return
	}
	h.renderPage(w, page)
}

// Generate POST /explore/{contentType}/{id}/generate
func (h *ExplorerHandler) Generate(w http.ResponseWriter, r *http.Request) {
	t, id, ok := focalParams(w, r)
	if !ok {
		return
	}

	page, err := h.explorer.Generate(r.Context(), h.session(w, r), t, id)
	if err != nil {
		writeHTMLError(w, err)
		return
	}
	h.renderPage(w, page)
}

// Dismiss POST /explore/{contentType}/{id}/dismiss
func (h *ExplorerHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	t, id, ok := focalParams(w, r)
	if !ok {
		return
	}

	if _, err := h.explorer.Dismiss(r.Context(), h.session(w, r), t, id); err != nil {
		writeHTMLError(w, err)
		return
	}
	http.Redirect(w, r, "/explore/"+string(t)+"/"+id, http.StatusSeeOther)
}

func slotID(r *http.Request) string {
	if c, err := r.Cookie(slotCookie); err == nil {
		return c.Value
	}
	return ""
}

// session 按cookie取得槽位，只在生成和关闭提示时创建并下发新的cookie
func (h *ExplorerHandler) session(w http.ResponseWriter, r *http.Request) *views.Session {
	current := slotID(r)
	s, id := h.explorer.Slot(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     slotCookie,
			Value:    id,
			Path:     "/explore",
			MaxAge:   int(h.slotTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

func (h *ExplorerHandler) renderPage(w http.ResponseWriter, page views.ExplorePage) {
	h.render(w, func(rw http.ResponseWriter) error {
		return h.renderer.RenderExplore(rw, page)
	})
}

func (h *ExplorerHandler) render(w http.ResponseWriter, fn func(http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := fn(w); err != nil {
		logger.Error("Failed to render explorer page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func focalParams(w http.ResponseWriter, r *http.Request) (models.ContentType, string, bool) {
	t, err := models.ParseContentType(chi.URLParam(r, "contentType"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", "", false
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "content id is required", http.StatusBadRequest)
		return "", "", false
	}
	return t, id, true
}

func writeHTMLError(w http.ResponseWriter, err error) {
	status, _, message := utils.ClassifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Explorer request failed", "status", status, "error", err)
	}
	http.Error(w, message, status)
}
