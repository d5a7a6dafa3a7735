// Package manifest reads and writes catalog manifests.
//
// A manifest is a JSON or YAML document listing albums, the songs on each
// album, and songs that belong to no album:
//
//	albums:
//	  - name: Kid A
//	    year: 2000
//	    songs:
//	      - name: Everything In Its Right Place
//	        duration: "4:11"
//	      - name: Idioteque
//	        duration: 309
//	singles:
//	  - name: Pyramid Song
//	    duration: 289
//
// Durations are seconds, or clock strings of the form "m:ss" / "h:mm:ss".
//
// # Loading
//
//	m, err := manifest.Parse(data, manifest.FormatFromPath(path))
//	if err != nil {
//	    return err
//	}
//	if err := m.Apply(c); err != nil {
//	    return err
//	}
//
// # Exporting
//
//	data, err := manifest.FromCatalog(c).Encode(manifest.FormatYAML)
//
// # Index Pages
//
// Links extracts manifest URLs from an HTML page, so that a directory of
// manifests served over HTTP can be loaded as a single source.
package manifest
