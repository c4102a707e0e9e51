// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/axlechain/axle/metrics"
)

var metricRequests = metrics.LazyLoadCounterVec("api_request_count", []string{"path", "method", "code"})

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests per route template, method and response code.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, req)

		path := req.URL.Path
		if route := mux.CurrentRoute(req); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		metricRequests().AddWithLabel(1, map[string]string{
			"path":   path,
			"method": req.Method,
			"code":   strconv.Itoa(rec.code),
		})
	})
}
