package document

// Kind classifies a bibliographic record.
type Kind string

const (
	// KindMonograph is a printed book.
	KindMonograph Kind = "monograph"
	// KindPeriodicalCollection is the aggregate record of a periodical title.
	KindPeriodicalCollection Kind = "periodical-collection"
	// KindPeriodicalIssue is a single dated issue of a periodical.
	KindPeriodicalIssue Kind = "periodical-issue"
	// KindManuscript is a manuscript.
	KindManuscript Kind = "manuscript"
	// KindImage is an image or photograph.
	KindImage Kind = "image"
	// KindMap is a map.
	KindMap Kind = "map"
	// KindScore is a musical score.
	KindScore Kind = "score"
	// KindOther covers upstream type strings with no known mapping.
	KindOther Kind = "other"
)

// Document is one normalized search hit. Issues of the same periodical are
// always distinct documents with distinct identifiers.
type Document struct {
	identifier string
	title      string
	url        string
	creators   []string
	date       string
	kind       Kind
	rawType    string
	language   string
	rights     string
	snippets   []Snippet
}

// New creates a document record.
func New(
	identifier, title, url string, creators []string,
	date string, kind Kind, rawType, language, rights string,
) Document {
	return Document{
		identifier: identifier,
		title:      title,
		url:        url,
		creators:   creators,
		date:       date,
		kind:       kind,
		rawType:    rawType,
		language:   language,
		rights:     rights,
	}
}

// Identifier returns the stable ARK identifier.
func (d *Document) Identifier() string { return d.identifier }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// URL returns the human-viewable upstream URL.
func (d *Document) URL() string { return d.url }

// Creators returns the creator names.
func (d *Document) Creators() []string { return d.creators }

// Date returns the publication date as reported upstream.
func (d *Document) Date() string { return d.date }

// Kind returns the document kind.
func (d *Document) Kind() Kind { return d.kind }

// RawType returns the upstream type string the kind was derived from.
func (d *Document) RawType() string { return d.rawType }

// Language returns the language code, if reported.
func (d *Document) Language() string { return d.language }

// Rights returns the rights class, if reported.
func (d *Document) Rights() string { return d.rights }

// Snippets returns contextual excerpts attached during enrichment.
func (d *Document) Snippets() []Snippet { return d.snippets }

// WithSnippets returns a copy of the document with excerpts attached.
func (d Document) WithSnippets(snippets []Snippet) Document {
	d.snippets = snippets
	return d
}

// Snippet is a contextual excerpt from a document's OCR text.
type Snippet struct {
	text string
	page string
}

// NewSnippet creates a snippet.
func NewSnippet(text, page string) Snippet {
	return Snippet{text: text, page: page}
}

// Text returns the excerpt text.
func (s *Snippet) Text() string { return s.text }

// Page returns the originating page label (e.g. "PAG_200").
func (s *Snippet) Page() string { return s.page }
