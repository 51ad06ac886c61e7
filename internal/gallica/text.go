package gallica

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kailas-cloud/gallex/internal/domain/document"
)

// Text downloads the raw OCR text page for a document and converts it to
// plain text. The service exposes two URL permutations for the same
// resource; both are tried in order.
func (c *Client) Text(ctx context.Context, identifier string) (string, error) {
	ark := document.NormalizeARK(identifier)

	var errs []error
	for _, u := range c.textURLs(ark) {
		body, status, err := c.get(ctx, "text", u, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u, err))
			continue
		}
		if status == http.StatusOK && strings.TrimSpace(string(body)) != "" {
			return htmlToPlainText(string(body)), nil
		}
		errs = append(errs, fmt.Errorf("%s: HTTP %d", u, status))
	}

	return "", fmt.Errorf("download text for %s: %w", ark, errors.Join(errs...))
}

// textURLs builds the URL permutations the service accepts for raw text.
func (c *Client) textURLs(ark string) []string {
	base := strings.TrimRight(c.cfg.TextBaseURL, "/") + "/" + strings.Trim(ark, "/")
	return []string{
		base + ".texteBrut",
		base + "/texteBrut",
	}
}
