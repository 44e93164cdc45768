package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagent-ai/reagent/tool"
)

func TestSearchDuckDuckGo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"AbstractText": "Go is a programming language.", "meta": {"internal": true}}`))
	}))
	defer server.Close()

	search := NewSearchDuckDuckGo(func(o *Options) {
		o.DuckDuckGoURL = server.URL + "/"
	})

	result, err := search.Call(context.Background(), map[string]any{"query": "golang"})
	require.NoError(t, err)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Go is a programming language.", resultMap["AbstractText"])
	assert.NotContains(t, resultMap, "meta")
}

func TestSearchWikipedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "search", q.Get("list"))
		assert.Equal(t, "go gopher", q.Get("srsearch"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query": {"search": [{"title": "Gopher"}]}}`))
	}))
	defer server.Close()

	search := NewSearchWikipedia(func(o *Options) {
		o.WikipediaURL = server.URL
	})

	result, err := search.Call(context.Background(), map[string]any{"query": "go gopher"})
	require.NoError(t, err)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, resultMap, "query")
}

func TestScrapeWebpage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Title</h1><p>Some <strong>bold</strong> text.</p></body></html>`))
	}))
	defer server.Close()

	scrape := NewScrapeWebpage()

	result, err := scrape.Call(context.Background(), map[string]any{"url": server.URL})
	require.NoError(t, err)

	markdown, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, markdown, "Title")
	assert.Contains(t, markdown, "**bold**")
	assert.NotContains(t, markdown, "<p>")
}

func TestScrapeWebpageTruncatesLongContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>"))
		for range 100 {
			_, _ = w.Write([]byte("All work and no play makes the agent a dull tool. "))
		}
		_, _ = w.Write([]byte("</p></body></html>"))
	}))
	defer server.Close()

	scrape := NewScrapeWebpage(func(o *Options) {
		o.MaxContentLength = 128
	})

	result, err := scrape.Call(context.Background(), map[string]any{"url": server.URL})
	require.NoError(t, err)

	markdown := result.(string)
	assert.Contains(t, markdown, "[content truncated]")
	assert.LessOrEqual(t, len(markdown), 128+len("\n\n[content truncated]"))
}

func TestScrapeWebpageNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scrape := NewScrapeWebpage()

	_, err := scrape.Call(context.Background(), map[string]any{"url": server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestToolsRegisterCleanly(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, r.RegisterAll(Tools()...))

	assert.Equal(t, []string{"search_duckduckgo", "search_wikipedia", "scrape_webpage"}, r.Names())
}

func TestSearchRequiresQueryArgument(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, r.Register(NewSearchDuckDuckGo()))

	_, err := r.Invoke(context.Background(), "search_duckduckgo", `{}`)
	require.Error(t, err)

	var execErr *tool.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, tool.CodeValidation, execErr.Code)
}
