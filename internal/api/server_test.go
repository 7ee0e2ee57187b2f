package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaiminpan/mtrie/trie"
)

func newTestServer(t *testing.T) (*Server, *trie.Trie[[]byte]) {
	t.Helper()
	tr := trie.New[[]byte](nil, trie.BytesEncoder)
	return New(tr, nil), tr
}

func TestServerGetPutDelete(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	// Missing key.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/keys/hello", nil)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Insert.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/keys/hello", strings.NewReader("world"))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Conflict on re-insert.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/keys/hello", strings.NewReader("again"))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Read it back.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/keys/hello", nil)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "world", rec.Body.String())

	// Delete.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/keys/hello", nil)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Gone.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/keys/hello", nil)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerDigestChangesOnInsert(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/digest", nil)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	before := rec.Body.String()

	require.NoError(t, tr.Insert([]byte("x"), []byte("y")))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/digest", nil)
	h.ServeHTTP(rec, req)
	require.NotEqual(t, before, rec.Body.String())
}
