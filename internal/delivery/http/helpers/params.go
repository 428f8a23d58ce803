package helpers

import (
	"net/http"
	"strconv"
)

// PathID reads the named path value and parses it as a positive integer id.
// On a missing, non-numeric, or non-positive value it writes a 400 JSON error
// and returns false. Callers should return immediately when ok is false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
