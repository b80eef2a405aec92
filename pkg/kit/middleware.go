package kit

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Recoverer(next http.Handler) http.Handler {
	return middleware.Recoverer(next)
}

func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			}
			if q := r.URL.Query(); len(q) > 0 {
				fields = append(fields, zap.Object("query", queryFields(q)))
			}
			log.Info("request", fields...)
		})
	}
}

type queryFields url.Values

func (q queryFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, vs := range q {
		if len(vs) == 1 {
			enc.AddString(k, vs[0])
			continue
		}
		if err := enc.AddArray(k, zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
			for _, v := range vs {
				ae.AppendString(v)
			}
			return nil
		})); err != nil {
			return err
		}
	}
	return nil
}
