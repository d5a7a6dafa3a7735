package importer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/music-catalog/internal/audio"
	"github.com/handiism/music-catalog/internal/catalog"
	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/http"
	"github.com/handiism/music-catalog/internal/manifest"
	"github.com/handiism/music-catalog/internal/store"
)

// ErrNoSourceLoaded is returned by Load when every source failed.
var ErrNoSourceLoaded = errors.New("no source could be loaded")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents an import progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Stats summarizes the sources processed by a Manager.
type Stats struct {
	Loaded int // sources applied to the catalog
	Failed int // sources that could not be read or applied
	Albums int // album entries applied
	Songs  int // song entries applied, before duplicate collapsing
}

// Manager coordinates loading sources into a catalog.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	scanner    *audio.Scanner

	stats Stats

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new import Manager.
//
// onProgress may be nil. It is called from the goroutines reading sources,
// so it must be safe for concurrent use.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		httpClient: http.NewClient(settings.HTTPTimeout(), settings.UserAgent),
		scanner: audio.NewScanner(&audio.ScanConfig{
			Extensions:         settings.AudioExtensions,
			MaxConcurrentFiles: settings.MaxConcurrentFiles,
		}),
		onProgress: onProgress,
	}
}

// Load reads every source and adds its contents to c.
//
// Sources are read concurrently, at most MaxConcurrentSources at a time, and
// then applied to c one after another in the order they were given, so the
// result does not depend on which source finished reading first. A source
// that fails is reported as a LevelError event and skipped.
//
// Load returns an error only when ctx is cancelled or when no source could
// be loaded. c is only modified after every read has finished.
func (m *Manager) Load(ctx context.Context, c *catalog.Catalog, sources []string) error {
	if len(sources) == 0 {
		return nil
	}

	results := make([]*manifest.Manifest, len(sources))

	var g errgroup.Group
	g.SetLimit(max(m.settings.MaxConcurrentSources, 1))

	for i, source := range sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			mf, err := m.readSource(ctx, source)
			if err != nil {
				if ctx.Err() == nil {
					m.fail(fmt.Sprintf("Error loading %s: %v", source, err))
				}
				return nil
			}
			results[i] = mf
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	loaded := 0
	for i, mf := range results {
		if mf == nil {
			continue
		}
		if err := mf.Apply(c); err != nil {
			m.fail(fmt.Sprintf("Error applying %s: %v", sources[i], err))
			continue
		}

		loaded++
		m.mu.Lock()
		m.stats.Loaded++
		m.stats.Albums += len(mf.Albums)
		m.stats.Songs += mf.Songs()
		m.mu.Unlock()

		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Loaded %s: %d albums, %d songs", sources[i], len(mf.Albums), mf.Songs()),
			Level:   LevelSuccess,
		})
	}

	if loaded == 0 {
		return fmt.Errorf("%w (%d sources)", ErrNoSourceLoaded, len(sources))
	}
	return nil
}

// Stats returns the counts accumulated over every Load call.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func (m *Manager) readSource(ctx context.Context, source string) (*manifest.Manifest, error) {
	kind, err := Classify(source)
	if err != nil {
		return nil, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Reading %s %s", kind, source), Level: LevelVerbose})

	switch kind {
	case KindURL:
		return m.readURL(ctx, source)
	case KindDirectory:
		return m.readDirectory(ctx, source)
	case KindDatabase:
		return m.readDatabase(ctx, source)
	default:
		return m.readManifestFile(source)
	}
}

func (m *Manager) readManifestFile(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return manifest.Parse(data, manifest.FormatFromPath(path))
}

func (m *Manager) readDatabase(ctx context.Context, path string) (*manifest.Manifest, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	loaded, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	return manifest.FromCatalog(loaded), nil
}

// readDirectory scans a directory of audio files. Every distinct album tag
// becomes an album; when files disagree on the year, the last file in path
// order wins. Tracks without an album tag become singles.
func (m *Manager) readDirectory(ctx context.Context, root string) (*manifest.Manifest, error) {
	tracks, err := m.scanner.Scan(ctx, root, func(path string, err error) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", path, err), Level: LevelWarning})
	})
	if err != nil {
		return nil, err
	}

	mf := &manifest.Manifest{}
	index := make(map[string]int)

	for _, t := range tracks {
		song := manifest.SongEntry{Name: t.Title, Duration: manifest.Duration(t.Duration)}
		if t.Album == "" {
			mf.Singles = append(mf.Singles, song)
			continue
		}

		i, ok := index[t.Album]
		if !ok {
			i = len(mf.Albums)
			index[t.Album] = i
			mf.Albums = append(mf.Albums, manifest.AlbumEntry{Name: t.Album})
		}
		if t.Year != 0 {
			mf.Albums[i].Year = t.Year
		}
		mf.Albums[i].Songs = append(mf.Albums[i].Songs, song)
	}

	if err := mf.Validate(); err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %d files in %s", len(tracks), root), Level: LevelVerbose})
	return mf, nil
}

// readURL fetches a manifest. If the response is an HTML page, it is read as
// an index and every manifest it links to is fetched and merged.
func (m *Manager) readURL(ctx context.Context, source string) (*manifest.Manifest, error) {
	body, err := m.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if !looksLikeHTML(body) {
		return manifest.Parse(body, formatFromURL(source))
	}

	links, err := manifest.Links(source, string(body))
	if err != nil {
		return nil, err
	}

	merged := &manifest.Manifest{}
	for _, link := range links {
		data, err := m.fetch(ctx, link)
		if err != nil {
			return nil, err
		}
		mf, err := manifest.Parse(data, formatFromURL(link))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", link, err)
		}
		merged.Albums = append(merged.Albums, mf.Albums...)
		merged.Singles = append(merged.Singles, mf.Singles...)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Fetched %s", link), Level: LevelVerbose})
	}
	return merged, nil
}

// fetch downloads link, retrying with exponential backoff.
func (m *Manager) fetch(ctx context.Context, link string) ([]byte, error) {
	retries := max(m.settings.FetchMaxRetries, 1)

	var body []byte
	var err error
	for tries := 0; tries < retries; tries++ {
		body, err = m.httpClient.Get(ctx, link)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil || tries == retries-1 {
			break
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, retries-1, link), Level: LevelWarning})
		m.waitForRetry(ctx, tries)
	}
	return nil, err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	select {
	case <-ctx.Done():
	case <-time.After(m.settings.RetryDelay(tries)):
	}
}

func (m *Manager) fail(message string) {
	m.mu.Lock()
	m.stats.Failed++
	m.mu.Unlock()
	m.progress(ProgressEvent{Message: message, Level: LevelError})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<")
}

func formatFromURL(source string) manifest.Format {
	if u, err := url.Parse(source); err == nil {
		return manifest.FormatFromPath(filepath.Base(u.Path))
	}
	return manifest.FormatJSON
}
