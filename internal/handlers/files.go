package handlers

import (
	"net/http"
	"strconv"
)

// searchFiles searches the company Dropbox folder by file name or
// content. Results carry display paths usable with /dropbox/link.
func (r *Router) searchFiles(w http.ResponseWriter, req *http.Request) {
	if r.dropbox == nil || !r.dropbox.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	query := req.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	matches, err := r.dropbox.Search(query, limit)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondData(w, http.StatusOK, matches)
}
