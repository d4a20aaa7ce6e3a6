package trust

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"marketwire/internal/model"
)

func testFilter() *Filter {
	return NewFilter(&Sourcelist{
		AllowDomains:    []string{"reuters.com", "kontan.co.id"},
		BlockDomains:    []string{"facebook.com", "blogspot.com"},
		NameHints:       []string{"reuters", "bloomberg"},
		RedirectDomains: []string{"news.google.com"},
		GenericNames:    []string{"news", "google news", "unknown"},
	})
}

func TestBlocklistVetoesEverything(t *testing.T) {
	f := testFilter()

	// Even an allowlisted source cannot rescue a blocklisted one.
	sources := []model.Source{
		{Name: "Reuters", URL: "https://www.reuters.com/markets/story"},
		{Name: "Someone", URL: "https://myblog.blogspot.com/post"},
	}
	assert.Equal(t, false, f.IsTrusted(sources, false))
}

func TestAllowlistedDomain(t *testing.T) {
	f := testFilter()
	sources := []model.Source{{Name: "", URL: "https://kontan.co.id/news/x"}}
	assert.Equal(t, true, f.IsTrusted(sources, false))

	// Subdomains of an allowlisted domain count.
	sources = []model.Source{{Name: "", URL: "https://insight.kontan.co.id/news/x"}}
	assert.Equal(t, true, f.IsTrusted(sources, false))
}

func TestRedirectDomainIsNotAllowlisted(t *testing.T) {
	f := testFilter()
	sources := []model.Source{{Name: "google news", URL: "https://news.google.com/articles/abc"}}
	assert.Equal(t, false, f.IsTrusted(sources, false))
}

func TestNameHint(t *testing.T) {
	f := testFilter()
	sources := []model.Source{{Name: "Reuters Asia", URL: "https://news.google.com/articles/abc"}}
	assert.Equal(t, true, f.IsTrusted(sources, false))
}

func TestAggregatorWithUsableName(t *testing.T) {
	f := testFilter()
	sources := []model.Source{{Name: "Jakarta Globe", URL: "https://news.google.com/articles/abc"}}

	assert.Equal(t, true, f.IsTrusted(sources, true))
	// Same item outside an aggregator feed has no acceptance path.
	assert.Equal(t, false, f.IsTrusted(sources, false))

	// Generic names never count.
	generic := []model.Source{{Name: "google news", URL: "https://news.google.com/articles/abc"}}
	assert.Equal(t, false, f.IsTrusted(generic, true))
}

func TestRealPublisherURLWithName(t *testing.T) {
	f := testFilter()
	sources := []model.Source{{Name: "Jakarta Globe", URL: "https://jakartaglobe.id/business/x"}}
	assert.Equal(t, true, f.IsTrusted(sources, false))
}

func TestNoSources(t *testing.T) {
	f := testFilter()
	assert.Equal(t, false, f.IsTrusted(nil, true))
}
