// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type httpError struct {
	status int
	cause  error
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func badRequest(cause error) *httpError {
	return &httpError{status: http.StatusBadRequest, cause: cause}
}

func notFound(cause error) *httpError {
	return &httpError{status: http.StatusNotFound, cause: cause}
}

// handlerFunc is an http handler returning an error, translated into the
// response by wrap.
type handlerFunc func(w http.ResponseWriter, req *http.Request) error

func wrap(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if he, ok := err.(*httpError); ok {
				http.Error(w, he.cause.Error(), he.status)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func writeJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(obj)
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// hexBytes renders byte payloads as 0x-prefixed hex in JSON.
type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(h))
}

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return err
	}
	*h = b
	return nil
}
