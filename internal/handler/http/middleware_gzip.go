// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool reuses [gzip.Writer] instances across requests rather
// than allocating one per response.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// gzipReaderPool reuses [gzip.Reader] instances across requests rather
// than allocating one per decompressed request body.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip transparently decompresses gzip-encoded request bodies and
// compresses response bodies for clients that advertise gzip support via
// Accept-Encoding. Invalid gzip request data responds 400 without
// invoking next.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supportsGzip := strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
		isGzipRequest := strings.Contains(r.Header.Get("Content-Encoding"), "gzip")

		if isGzipRequest && r.Body != nil {
			reader := gzipReaderPool.Get().(*gzip.Reader)
			if err := reader.Reset(r.Body); err != nil {
				gzipReaderPool.Put(reader)
				http.Error(w, "invalid gzip data", http.StatusBadRequest)
				return
			}
			r.Body = &wrappedReadCloser{
				Reader: reader,
				OnClose: func() {
					reader.Close()
					gzipReaderPool.Put(reader)
				},
			}
			r.Header.Del("Content-Encoding")
		}

		if !supportsGzip {
			next.ServeHTTP(w, r)
			return
		}

		writer := gzipWriterPool.Get().(*gzip.Writer)
		writer.Reset(w)

		gzw := &gzipResponseWriter{ResponseWriter: w, gzipWriter: writer}
		next.ServeHTTP(gzw, r)

		writer.Close()
		gzipWriterPool.Put(writer)
	})
}

// wrappedReadCloser pairs an [io.Reader] with a close callback, used to
// return a pooled [gzip.Reader] when the request body is closed.
type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

// gzipResponseWriter decorates [http.ResponseWriter], routing writes
// through a pooled [gzip.Writer] and setting Content-Encoding on the
// first WriteHeader call.
type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}
