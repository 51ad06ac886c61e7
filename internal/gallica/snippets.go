package gallica

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/document"
)

// SnippetItem is one excerpt from the content-search endpoint: excerpt text
// with markup stripped, plus the page label it came from.
type SnippetItem struct {
	Content string
	Page    string
}

type contentSearchResponse struct {
	XMLName xml.Name
	Items   []contentItem `xml:"items>item"`
}

type contentItem struct {
	Content string `xml:"content"`
	PageID  string `xml:"p_id"`
}

// Snippets queries the content-search endpoint for one document.
// contentQuery must already be in the shared boolean grammar's canonical
// surface form (see cql.Normalize). Documents without searchable OCR are
// rejected upstream with a client-error status, surfaced as
// ErrSnippetUnavailable; other non-2xx statuses stay RemoteError.
func (c *Client) Snippets(ctx context.Context, identifier, contentQuery string) ([]SnippetItem, error) {
	params := url.Values{}
	params.Set("ark", document.ARKName(identifier))
	params.Set("query", contentQuery)

	body, status, err := c.get(ctx, "content_search", c.cfg.ContentSearchURL, params)
	if err != nil {
		return nil, fmt.Errorf("content search %s: %w", identifier, err)
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrSnippetUnavailable, identifier)
	case status != http.StatusOK:
		return nil, domain.NewRemoteError(status, string(body))
	}

	var resp contentSearchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	items := make([]SnippetItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		text := stripMarkup(item.Content)
		if text == "" {
			continue
		}
		items = append(items, SnippetItem{Content: text, Page: item.PageID})
	}
	return items, nil
}
