package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/music-catalog/internal/io"
	"github.com/handiism/music-catalog/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	// INI-style format with file, title, and length info.
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	// XML-based SMIL format.
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	// XML-based SMIL format with extended metadata.
	FormatZPL
)

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

func (pf PlaylistFormat) String() string {
	return strings.TrimPrefix(pf.Extension(), ".")
}

// Playlist is a titled, ordered list of songs together with the file
// location each entry points to.
type Playlist struct {
	Title   string
	Entries []Entry
}

// Entry is a single playlist line.
type Entry struct {
	Song     model.Song
	Location string
}

// NewPlaylist builds a playlist from songs, computing each location from the
// song file name format (see model.Song.FileName).
//
// Example:
//
//	pl := NewPlaylist("Abbey Road", c.SongsInAlbum("Abbey Road"), "{title}.mp3")
func NewPlaylist(title string, songs []model.Song, fileNameFormat string) *Playlist {
	entries := make([]Entry, 0, len(songs))
	for _, s := range songs {
		entries = append(entries, Entry{Song: s, Location: s.FileName(fileNameFormat)})
	}
	return &Playlist{Title: title, Entries: entries}
}

// PlaylistCreator generates playlist files in various formats.
//
// Example:
//
//	// Create M3U playlist with extended info
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(playlist)
//	os.WriteFile("Abbey Road.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:259,Abbey Road - Come Together
//	// Come Together.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format this creator renders.
func (p *PlaylistCreator) Format() PlaylistFormat {
	return p.format
}

// CreatePlaylist renders the playlist content, ready to be written to a file.
func (p *PlaylistCreator) CreatePlaylist(pl *Playlist) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(pl)
	case FormatWPL:
		return p.createWPL(pl)
	case FormatZPL:
		return p.createZPL(pl)
	default:
		return p.createM3U(pl)
	}
}

// SavePlaylist renders pl and writes it to dir/fileName plus the format's
// extension, creating dir if needed. It returns the written path.
func (p *PlaylistCreator) SavePlaylist(ctx context.Context, pl *Playlist, dir, fileName string) (string, error) {
	path := filepath.Join(dir, fileName+p.format.Extension())
	if err := ioutils.WriteFile(ctx, path, []byte(p.CreatePlaylist(pl))); err != nil {
		return "", fmt.Errorf("failed to write playlist %s: %w", path, err)
	}
	return path, nil
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Album - Title
//	Title.mp3
//
// Songs without an album use the playlist title as the EXTINF prefix.
func (p *PlaylistCreator) createM3U(pl *Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range pl.Entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", int(e.Song.Duration), entryAlbum(pl, e), e.Song.Name))
		}
		sb.WriteString(e.Location + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Title.mp3
//	Title1=Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(pl *Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range pl.Entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.Location))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.Song.Name))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, int(e.Song.Duration)))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(pl.Entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(pl *Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range pl.Entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.Location)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes album title, track title and duration
// attributes on every media element.
func (p *PlaylistCreator) createZPL(pl *Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"MusicCatalog\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(pl.Entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range pl.Entries {
		duration := time.Duration(e.Song.Duration * float64(time.Second))
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" trackTitle=\"%s\" duration=\"%d\"/>\n",
			escapeXML(e.Location),
			escapeXML(entryAlbum(pl, e)),
			escapeXML(e.Song.Name),
			duration.Milliseconds()))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func entryAlbum(pl *Playlist, e Entry) string {
	if album, ok := e.Song.Album.Get(); ok {
		return album
	}
	return pl.Title
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
