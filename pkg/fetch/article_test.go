package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const articleHTML = `<html><body>
<nav><p>Home</p></nav>
<article>
<p>The central bank held its benchmark rate steady on Tuesday, citing easing inflation pressure across the region.</p>
<p>Officials signalled that further moves would depend on incoming data over the next quarter and beyond.</p>
</article>
</body></html>`

func TestExcerpt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	f := NewArticleFetcher(5*time.Second, 2)
	got, err := f.Excerpt(context.Background(), srv.URL)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(got, "benchmark rate steady"))
	// Short nav fragments are skipped.
	assert.Equal(t, false, strings.Contains(got, "Home"))
}

func TestExcerptCapsLength(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("A reasonably long sentence about markets moving around. ", 60) + "</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	defer srv.Close()

	f := NewArticleFetcher(5*time.Second, 2)
	got, err := f.Excerpt(context.Background(), srv.URL)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, len(got) <= maxExcerptChars)
}

func TestExcerptErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewArticleFetcher(5*time.Second, 2)
	_, err := f.Excerpt(context.Background(), srv.URL)
	assert.NotEqual(t, nil, err)
}

func TestExcerptNoParagraphs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><div>nothing</div></body></html>"))
	}))
	defer srv.Close()

	f := NewArticleFetcher(5*time.Second, 2)
	_, err := f.Excerpt(context.Background(), srv.URL)
	assert.NotEqual(t, nil, err)
}
