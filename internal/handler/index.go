package handler

import (
	"html/template"
	"net/http"

	"github.com/yatube-dev/yatube/internal/pagecache"
)

const indexCacheName = "index"

type postList struct {
	Page       any
	ShowGroup  bool
	ShowAuthor bool
}

// Index serves the newest posts. The listing is cached per page for
// IndexCacheTTL; the surrounding layout is rendered for every request so
// that the header reflects the current user.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	listing, err := pagecache.GetOrRender(r.Context(), h.cache, indexCacheName, pagecache.Key(indexCacheName, r), h.cfg.IndexCacheTTL,
		func() ([]byte, error) {
			page, err := h.feed.Index(pageParam(r))
			if err != nil {
				return nil, err
			}
			return h.renderFragment("index.html", "post_list", postList{Page: page, ShowGroup: true, ShowAuthor: true})
		})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderTemplate(w, r, "index.html", struct{ Listing template.HTML }{template.HTML(listing)})
}
