package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/Naman-Bagoria17/shortify/internal/pool"
)

// writerPool recycles response buffers across requests.
var writerPool = pool.New[*bufferedWriter](64)

// compressible reports whether a response content type is worth gzipping.
func compressible(contentType string) bool {
	return strings.Contains(contentType, "application/json") ||
		strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "text/plain")
}

// bufferedWriter captures the response so the middleware can decide after
// the handler runs whether to compress it. It holds its own header map so
// flushing does not duplicate headers on the real writer.
type bufferedWriter struct {
	header     http.Header
	statusCode int
	body       []byte
}

func (w *bufferedWriter) Header() http.Header {
	return w.header
}

func (w *bufferedWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

// Reset prepares the buffer for reuse by the pool.
func (w *bufferedWriter) Reset() {
	w.header = nil
	w.statusCode = http.StatusOK
	w.body = w.body[:0]
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return len(b), nil
}

func (w *bufferedWriter) flush(out http.ResponseWriter, compress bool) error {
	for k, values := range w.Header() {
		for _, v := range values {
			out.Header().Add(k, v)
		}
	}

	if !compress {
		out.WriteHeader(w.statusCode)
		_, err := out.Write(w.body)
		return err
	}

	out.Header().Set("Content-Encoding", "gzip")
	out.WriteHeader(w.statusCode)

	gz, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		_, werr := out.Write(w.body)
		return werr
	}
	defer gz.Close()

	_, err = gz.Write(w.body)
	return err
}

// GzipWriter compresses eligible responses when the client accepts gzip.
func GzipWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		buf := writerPool.Get()
		if buf == nil {
			buf = &bufferedWriter{statusCode: http.StatusOK}
		}
		buf.header = make(http.Header)
		defer writerPool.Put(buf)

		next.ServeHTTP(buf, r)

		buf.flush(w, compressible(buf.Header().Get("Content-Type")))
	})
}

// GzipReader transparently decompresses gzipped request bodies.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = io.NopCloser(gzReader)
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
