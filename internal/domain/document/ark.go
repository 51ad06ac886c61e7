package document

import "strings"

// NormalizeARK canonicalizes an identifier into the "ark:/..." form the
// upstream service recognizes. Accepts "ark:12148/...", "/12148/..." and
// already-canonical inputs.
func NormalizeARK(identifier string) string {
	ident := strings.TrimSpace(identifier)
	if strings.HasPrefix(ident, "ark:/") {
		return ident
	}
	ident = strings.TrimPrefix(ident, "ark:")
	ident = strings.TrimLeft(ident, "/")
	return "ark:/" + ident
}

// ARKFromURL extracts the ARK identifier from an upstream identifier URL
// such as "https://gallica.bnf.fr/ark:/12148/bpt6k5619759j".
func ARKFromURL(url string) (string, bool) {
	idx := strings.Index(url, "ark:/")
	if idx < 0 {
		return "", false
	}
	ark := url[idx:]
	if ark == "ark:/" {
		return "", false
	}
	return ark, true
}

// ARKName returns the trailing name segment of an ARK, the form the
// snippet endpoint expects (e.g. "bpt6k5619759j").
func ARKName(identifier string) string {
	ark := NormalizeARK(identifier)
	trimmed := strings.TrimPrefix(ark, "ark:/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}
