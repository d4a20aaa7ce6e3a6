package textutil

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCanonicalizeURL(t *testing.T) {
	got := CanonicalizeURL("  HTTPS://WWW.Example.com/News/Story/?a=1&amp;b=2  ")
	assert.Equal(t, "https://www.example.com/News/Story?a=1&b=2", got)

	assert.Equal(t, "", CanonicalizeURL("   "))
	assert.Equal(t, "https://example.com/a", CanonicalizeURL("https://example.com/a/"))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "example.com", Domain("https://www.example.com/path"))
	assert.Equal(t, "news.google.com", Domain("https://news.google.com/rss"))
	assert.Equal(t, "", Domain("not a url"))
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup("<p>Fed &amp; markets:\n  rates <b>held</b></p>")
	assert.Equal(t, "Fed & markets: rates held", got)
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("https://example.com/story/")
	b := Fingerprint("HTTPS://EXAMPLE.COM/story")
	assert.Equal(t, a, b)
	assert.Equal(t, 16, len(a))

	other := Fingerprint("https://example.com/other")
	assert.NotEqual(t, a, other)
}

func TestStoryKeyStable(t *testing.T) {
	k1 := StoryKey("https://example.com/story", "Fed Holds Rates")
	k2 := StoryKey("https://example.com/story/", "<b>Fed Holds Rates</b>")
	assert.Equal(t, k1, k2)
	assert.Equal(t, 16, len(k1))

	k3 := StoryKey("https://example.com/story", "Fed Cuts Rates")
	assert.NotEqual(t, k1, k3)
}
