// Package web provides ready-made research tools: DuckDuckGo and Wikipedia
// search plus a webpage scraper that converts pages to markdown before
// handing them to the model.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/reagent-ai/reagent/tool"
)

// Options configures the web tools. All fields have working defaults; the
// base URLs and client exist mainly so tests can point the tools at a local
// server.
type Options struct {
	HTTPClient       *http.Client
	DuckDuckGoURL    string
	WikipediaURL     string
	MaxContentLength int // Scraped markdown is truncated beyond this many bytes
}

func resolveOptions(optFns []func(o *Options)) Options {
	opts := Options{
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
		DuckDuckGoURL:    "https://api.duckduckgo.com/",
		WikipediaURL:     "https://en.wikipedia.org/w/api.php",
		MaxContentLength: 64 * 1024,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}

// Tools returns the full built-in tool set, ready for registration.
func Tools(optFns ...func(o *Options)) []tool.Tool {
	return []tool.Tool{
		NewSearchDuckDuckGo(optFns...),
		NewSearchWikipedia(optFns...),
		NewScrapeWebpage(optFns...),
	}
}

// NewSearchDuckDuckGo searches the free DuckDuckGo instant answer API.
// Results are limited, as this is the public endpoint.
func NewSearchDuckDuckGo(optFns ...func(o *Options)) *tool.Func {
	opts := resolveOptions(optFns)

	return tool.NewFunc(
		"search_duckduckgo",
		"Search DuckDuckGo for the given query and return the JSON response.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)

			result, err := getJSON(ctx, opts.HTTPClient, opts.DuckDuckGoURL, url.Values{
				"q":      {query},
				"format": {"json"},
			})
			if err != nil {
				return nil, err
			}

			delete(result, "meta")
			return result, nil
		},
	)
}

// NewSearchWikipedia searches English Wikipedia via the MediaWiki API.
func NewSearchWikipedia(optFns ...func(o *Options)) *tool.Func {
	opts := resolveOptions(optFns)

	return tool.NewFunc(
		"search_wikipedia",
		"Search Wikipedia for the given query and return the JSON response.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)

			return getJSON(ctx, opts.HTTPClient, opts.WikipediaURL, url.Values{
				"action":   {"query"},
				"list":     {"search"},
				"srsearch": {query},
				"format":   {"json"},
			})
		},
	)
}

// NewScrapeWebpage fetches a page and returns its content converted to
// markdown, truncated to the configured length.
func NewScrapeWebpage(optFns ...func(o *Options)) *tool.Func {
	opts := resolveOptions(optFns)

	return tool.NewFunc(
		"scrape_webpage",
		"Fetch the given webpage and return its text content as markdown.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The URL of the webpage to scrape",
				},
			},
			"required": []string{"url"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			pageURL, _ := args["url"].(string)

			body, err := getBody(ctx, opts.HTTPClient, pageURL)
			if err != nil {
				return nil, err
			}

			markdown, err := htmltomarkdown.ConvertString(body)
			if err != nil {
				return nil, fmt.Errorf("convert page to markdown: %w", err)
			}

			if len(markdown) > opts.MaxContentLength {
				markdown = markdown[:opts.MaxContentLength] + "\n\n[content truncated]"
			}

			return markdown, nil
		},
	)
}

// getJSON issues a GET with the given query parameters and decodes the JSON body.
func getJSON(ctx context.Context, client *http.Client, baseURL string, params url.Values) (map[string]any, error) {
	body, err := getBody(ctx, client, baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	result := make(map[string]any)
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}

// getBody issues a context-aware GET and returns the response body as a string.
func getBody(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return string(data), nil
}
