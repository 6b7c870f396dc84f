package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/satya-aforv/finance-tracker-sub001/authz"
	"github.com/satya-aforv/finance-tracker-sub001/utils"

	"github.com/gorilla/mux"
)

// pathID extracts a numeric path variable, 0 when absent or invalid.
func pathID(r *http.Request, name string) uint {
	v := mux.Vars(r)[name]
	id64, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id64)
}

// requireAction checks the authenticated admin's capability for an action
// and writes a 403 when denied. Returns true when the request may proceed.
func requireAction(w http.ResponseWriter, r *http.Request, action authz.Action) bool {
	role, _ := utils.GetAdminRole(r)
	if !authz.Can(authz.Role(role), action) {
		utils.WriteError(w, http.StatusForbidden, "Forbidden: insufficient permissions")
		return false
	}
	return true
}

// parsePagination reads page/limit query params with defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func trimQuery(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
