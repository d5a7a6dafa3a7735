package manifest

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"slices"
)

// ErrNoManifestFound is returned when an index page links to no manifests.
var ErrNoManifestFound = errors.New("no manifest found on page")

var manifestHref = regexp.MustCompile(`(?i)href\s*=\s*("|')([^"']+?\.(?:json|ya?ml))("|')`)

// Links extracts manifest URLs from an HTML index page.
//
// An index page is any HTML document with links to .json, .yaml or .yml
// files, such as a directory listing served by a static file server:
//
//	<a href="kid-a.yaml">kid-a.yaml</a>
//	<a href="/catalogs/singles.json">singles.json</a>
//
// Relative links are resolved against base. Duplicates are removed and the
// result is sorted so that the catalog is loaded in a stable order.
//
// Returns ErrNoManifestFound if the page has no manifest links.
func Links(base, pageHTML string) ([]string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	matches := manifestHref.FindAllStringSubmatch(pageHTML, -1)
	if len(matches) == 0 {
		return nil, ErrNoManifestFound
	}

	set := make(map[string]struct{})
	for _, match := range matches {
		ref, err := url.Parse(html.UnescapeString(match[2]))
		if err != nil {
			continue
		}
		set[baseURL.ResolveReference(ref).String()] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrNoManifestFound
	}

	links := make([]string, 0, len(set))
	for link := range set {
		links = append(links, link)
	}
	slices.Sort(links)
	return links, nil
}
