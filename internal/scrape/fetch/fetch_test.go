// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fetch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/scrape/fetch"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestSession_Get returns the raw body on a 2xx response.
*/
func TestSession_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	session := fetch.NewSession(discardLogger())
	defer session.Close()

	body, err := session.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "hello")
}

/*
TestSession_Get_BadStatus surfaces non-2xx statuses as a typed HTTPError.
*/
func TestSession_Get_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	session := fetch.NewSession(discardLogger())
	defer session.Close()

	_, err := session.Get(context.Background(), server.URL)
	require.Error(t, err)

	var httpErr *fetch.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, server.URL, httpErr.URL)
}

/*
TestSession_Get_FollowsRedirects verifies redirects are transparent.
*/
func TestSession_Get_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("final destination"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	session := fetch.NewSession(discardLogger())
	defer session.Close()

	body, err := session.Get(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	assert.Contains(t, body, "final destination")
}

/*
TestSession_Get_TransportError carries the cause with a zero status.
*/
func TestSession_Get_TransportError(t *testing.T) {
	session := fetch.NewSession(discardLogger())
	defer session.Close()

	_, err := session.Get(context.Background(), "http://127.0.0.1:1/unreachable")
	require.Error(t, err)

	var httpErr *fetch.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Zero(t, httpErr.Status)
}

/*
TestSession_Close_Idempotent closes an unused session and a used one twice.
*/
func TestSession_Close_Idempotent(t *testing.T) {
	session := fetch.NewSession(discardLogger())
	session.Close()
	session.Close()
}
