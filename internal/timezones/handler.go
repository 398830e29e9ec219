package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type optionsResponse struct {
	Data []Option `json:"data"`
}

// Handler serves `{"data":[{"value","label"}]}` for the zone picker.
func Handler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zones := opts.Zones
		if zones == nil {
			loaded, err := DefaultZones()
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			zones = loaded
		}

		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get(opts.LimitParam))
		results := SearchOptions(zones, q.Get(opts.SearchParam), limit, opts)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Data: results})
	})
}
