package gallica

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/search/query"
)

// Record is one raw SRU hit, fields as delivered upstream. Normalization
// into the document model happens in the repository layer.
type Record struct {
	Identifier string
	Title      string
	Creators   []string
	Date       string
	Type       string
	Language   string
	Rights     string
}

// ResultSet is the parsed SRU envelope: total match count plus the raw
// records of the requested page, in upstream relevance order.
type ResultSet struct {
	Total   int
	Records []Record
}

// sruResponse mirrors the srw:searchRetrieveResponse envelope. Unqualified
// field names match the namespaced elements.
type sruResponse struct {
	XMLName         xml.Name    `xml:"searchRetrieveResponse"`
	NumberOfRecords int         `xml:"numberOfRecords"`
	Records         []sruRecord `xml:"records>record"`
}

type sruRecord struct {
	Data dcContainer `xml:"recordData>dc"`
}

type dcContainer struct {
	Identifiers []string `xml:"identifier"`
	Titles      []string `xml:"title"`
	Creators    []string `xml:"creator"`
	Dates       []string `xml:"date"`
	Types       []string `xml:"type"`
	Languages   []string `xml:"language"`
	Rights      []string `xml:"rights"`
}

// Search executes one SRU searchRetrieve request. page is 1-based; pageSize
// must be within [1, query.MaxPageSize]; out-of-bounds values surface
// ErrInvalidPage instead of being clamped silently. Collapsing is always
// disabled so every periodical issue arrives as its own record; collapsed
// results would make per-issue identifiers unrecoverable downstream.
func (c *Client) Search(
	ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
) (*ResultSet, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d is not 1-based", domain.ErrInvalidPage, page)
	}
	if pageSize < 1 || pageSize > query.MaxPageSize {
		return nil, fmt.Errorf(
			"%w: page size %d outside [1, %d]", domain.ErrInvalidPage, pageSize, query.MaxPageSize,
		)
	}

	startRecord := (page-1)*pageSize + 1

	params := url.Values{}
	params.Set("version", "1.2")
	params.Set("operation", "searchRetrieve")
	params.Set("query", expr.String())
	params.Set("startRecord", strconv.Itoa(startRecord))
	params.Set("maximumRecords", strconv.Itoa(pageSize))
	params.Set("collapsing", "false")
	params.Set("exactSearch", strconv.FormatBool(exact))

	body, status, err := c.get(ctx, "sru", c.cfg.SRUBaseURL, params)
	if err != nil {
		return nil, fmt.Errorf("sru search: %w", err)
	}
	if status != http.StatusOK {
		return nil, domain.NewRemoteError(status, string(body))
	}

	var resp sruResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	rs := &ResultSet{Total: resp.NumberOfRecords}
	for _, rec := range resp.Records {
		rs.Records = append(rs.Records, Record{
			Identifier: first(rec.Data.Identifiers),
			Title:      first(rec.Data.Titles),
			Creators:   rec.Data.Creators,
			Date:       first(rec.Data.Dates),
			Type:       first(rec.Data.Types),
			Language:   first(rec.Data.Languages),
			Rights:     first(rec.Data.Rights),
		})
	}
	return rs, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
