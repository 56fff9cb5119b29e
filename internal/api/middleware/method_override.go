package middleware

import (
	"mime"
	"net/http"
	"strings"
)

const methodOverrideField = "_method"

// MethodOverride lets HTML forms issue PUT and DELETE. The method is read
// from the _method query parameter, or from a url-encoded POST body.
// Multipart bodies are not parsed here.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		method := r.URL.Query().Get(methodOverrideField)
		if method == "" && isURLEncoded(r) {
			if err := r.ParseForm(); err == nil {
				method = r.PostForm.Get(methodOverrideField)
			}
		}

		switch strings.ToUpper(method) {
		case http.MethodPut, http.MethodDelete, http.MethodPatch:
			r = r.WithContext(r.Context())
			r.Method = strings.ToUpper(method)
		}

		next.ServeHTTP(w, r)
	})
}

func isURLEncoded(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/x-www-form-urlencoded"
}
