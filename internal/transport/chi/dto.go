package chi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/domain/search/query"
	"github.com/kailas-cloud/gallex/internal/domain/search/result"
)

type errorDTO struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

type pageDTO struct {
	Page      int           `json:"page"`
	Total     int           `json:"total_results"`
	Skipped   int           `json:"skipped_records"`
	Documents []documentDTO `json:"documents"`
}

type documentDTO struct {
	Identifier string       `json:"identifier"`
	Title      string       `json:"title"`
	URL        string       `json:"url,omitempty"`
	Creators   []string     `json:"creators,omitempty"`
	Date       string       `json:"date,omitempty"`
	Kind       string       `json:"kind"`
	RawType    string       `json:"raw_type,omitempty"`
	Language   string       `json:"language,omitempty"`
	Rights     string       `json:"rights,omitempty"`
	Snippets   []snippetDTO `json:"snippets,omitempty"`
}

type snippetDTO struct {
	Text string `json:"text"`
	Page string `json:"page,omitempty"`
}

type snippetsDTO struct {
	Identifier string       `json:"identifier"`
	Snippets   []snippetDTO `json:"snippets"`
}

func pageToDTO(pg result.Page) pageDTO {
	docs := make([]documentDTO, 0, len(pg.Documents()))
	for _, d := range pg.Documents() {
		docs = append(docs, documentToDTO(d))
	}
	return pageDTO{
		Page:      pg.Page(),
		Total:     pg.Total(),
		Skipped:   pg.Skipped(),
		Documents: docs,
	}
}

func documentToDTO(d document.Document) documentDTO {
	return documentDTO{
		Identifier: d.Identifier(),
		Title:      d.Title(),
		URL:        d.URL(),
		Creators:   d.Creators(),
		Date:       d.Date(),
		Kind:       string(d.Kind()),
		RawType:    d.RawType(),
		Language:   d.Language(),
		Rights:     d.Rights(),
		Snippets:   snippetSliceToDTO(d.Snippets()),
	}
}

func snippetsToDTO(identifier string, snippets []document.Snippet) snippetsDTO {
	dto := snippetsDTO{
		Identifier: identifier,
		Snippets:   snippetSliceToDTO(snippets),
	}
	if dto.Snippets == nil {
		dto.Snippets = []snippetDTO{}
	}
	return dto
}

func snippetSliceToDTO(snippets []document.Snippet) []snippetDTO {
	if len(snippets) == 0 {
		return nil
	}
	out := make([]snippetDTO, len(snippets))
	for i := range snippets {
		out[i] = snippetDTO{Text: snippets[i].Text(), Page: snippets[i].Page()}
	}
	return out
}

// queryOptions parses the structured filter parameters of GET /search.
func queryOptions(params url.Values) ([]query.Option, error) {
	var opts []query.Option

	if creators := params["creator"]; len(creators) > 0 {
		opts = append(opts, query.WithCreators(creators...))
	}
	if rawTypes := params["doc_type"]; len(rawTypes) > 0 {
		types := make([]query.DocType, len(rawTypes))
		for i, t := range rawTypes {
			types[i] = query.DocType(t)
		}
		opts = append(opts, query.WithDocTypes(types...))
	}
	if raw := params.Get("date_from"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("date_from must be a year: %q", raw)
		}
		opts = append(opts, query.WithDateFrom(year))
	}
	if raw := params.Get("date_to"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("date_to must be a year: %q", raw)
		}
		opts = append(opts, query.WithDateTo(year))
	}
	if lang := params.Get("language"); lang != "" {
		opts = append(opts, query.WithLanguage(lang))
	}
	if title := params.Get("title"); title != "" {
		opts = append(opts, query.WithTitle(title))
	}
	if raw := params.Get("public_domain"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("public_domain must be a boolean: %q", raw)
		}
		opts = append(opts, query.WithPublicDomainOnly(v))
	}
	if raw := params.Get("exact"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("exact must be a boolean: %q", raw)
		}
		opts = append(opts, query.WithExactMatch(v))
	}

	return opts, nil
}
