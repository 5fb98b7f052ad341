package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// queryID extracts and parses a numeric id query parameter (e.g. user_id,
// task_id). Returns an error when the parameter is missing or not an integer.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s query parameter", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s query parameter: %q is not an integer", name, raw)
	}

	return id, nil
}
