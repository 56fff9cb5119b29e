package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/api/session"
)

// SessionMiddleware loads the request's session into the context and
// commits it just before the response header is written
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := manager.Load(r)
			ctx := session.WithState(r.Context(), st)

			cw := &committingWriter{ResponseWriter: w}
			cw.commit = func() {
				if err := manager.Commit(ctx, w, st); err != nil {
					log.Error().Err(err).Msg("Failed to save session")
				}
			}

			next.ServeHTTP(cw, r.WithContext(ctx))
			cw.commitOnce()
		})
	}
}

type committingWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (cw *committingWriter) commitOnce() {
	if cw.committed {
		return
	}
	cw.committed = true
	cw.commit()
}

func (cw *committingWriter) WriteHeader(statusCode int) {
	cw.commitOnce()
	cw.ResponseWriter.WriteHeader(statusCode)
}

func (cw *committingWriter) Write(b []byte) (int, error) {
	cw.commitOnce()
	return cw.ResponseWriter.Write(b)
}

func (cw *committingWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
