package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "http scheme unchanged", input: "http://example.com", want: "http://example.com"},
		{name: "https scheme unchanged", input: "https://example.com", want: "https://example.com"},
		{name: "file scheme unchanged", input: "file:///path/to/file.html", want: "file:///path/to/file.html"},
		{name: "new tab page unchanged", input: "about:newtab", want: "about:newtab"},
		{name: "domain gets https", input: "example.com", want: "https://example.com"},
		{name: "domain with path gets https", input: "example.com/path", want: "https://example.com/path"},
		{name: "surrounding space trimmed", input: "  example.com ", want: "https://example.com"},
		{name: "free text unchanged", input: "hello world", want: "hello world"},
		{name: "single word unchanged", input: "hello", want: "hello"},
		{name: "localhost", input: "localhost", want: "http://localhost"},
		{name: "localhost with port", input: "localhost:5173", want: "http://localhost:5173"},
		{name: "localhost with path", input: "localhost:8080/admin", want: "http://localhost:8080/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestLooksLikeURL(t *testing.T) {
	assert.True(t, LooksLikeURL("github.com"))
	assert.True(t, LooksLikeURL("HTTPS://EXAMPLE.COM"))
	assert.True(t, LooksLikeURL("localhost:3000"))
	assert.False(t, LooksLikeURL(""))
	assert.False(t, LooksLikeURL("go fmt"))
	assert.False(t, LooksLikeURL("tabs"))
}

func TestHost(t *testing.T) {
	assert.Equal(t, "youtube.com", Host("https://www.youtube.com/watch?v=1"))
	assert.Equal(t, "localhost", Host("http://localhost:8080/"))
	assert.Empty(t, Host("about:newtab"))
	assert.Empty(t, Host("not a url"))
}
