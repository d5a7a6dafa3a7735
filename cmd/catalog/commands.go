package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/handiism/music-catalog/internal/audio"
	"github.com/handiism/music-catalog/internal/catalog"
	"github.com/handiism/music-catalog/internal/importer"
	ioutils "github.com/handiism/music-catalog/internal/io"
	"github.com/handiism/music-catalog/internal/manifest"
	"github.com/handiism/music-catalog/internal/model"
	"github.com/handiism/music-catalog/internal/store"
)

// allSongsTitle names the playlist of every song in the catalog.
const allSongsTitle = "All Songs"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "import",
			Usage:     "load sources and save them as the catalog snapshot",
			ArgsUsage: "[source...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "append",
					Usage: "add to the existing snapshot instead of replacing it",
				},
			},
			Action: a.importAction,
		},
		{
			Name:   "songs",
			Usage:  "list every song name in byte-wise order",
			Action: a.songsAction,
		},
		{
			Name:   "albums",
			Usage:  "list every album name",
			Action: a.albumsAction,
		},
		{
			Name:      "year",
			Usage:     "list the albums released in a year",
			ArgsUsage: "<year>",
			Action:    a.yearAction,
		},
		{
			Name:      "count",
			Usage:     "count the songs on an album",
			ArgsUsage: "<album>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "no-album",
					Usage: "count the songs that belong to no album",
				},
			},
			Action: a.countAction,
		},
		{
			Name:      "average",
			Usage:     "print the average song duration of an album, in seconds",
			ArgsUsage: "<album>",
			Action:    a.averageAction,
		},
		{
			Name:   "longest-song",
			Usage:  "print the name of the longest song",
			Action: a.longestSongAction,
		},
		{
			Name:   "longest-album",
			Usage:  "print the name of the album with the greatest total duration",
			Action: a.longestAlbumAction,
		},
		{
			Name:   "summary",
			Usage:  "print catalog-wide aggregates and a table of albums",
			Action: a.summaryAction,
		},
		{
			Name:  "export",
			Usage: "write the catalog as a manifest",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: "json",
					Usage: "manifest format: json or yaml",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write to a file instead of stdout",
				},
			},
			Action: a.exportAction,
		},
		{
			Name:      "playlist",
			Usage:     "write a playlist for an album, or for every song",
			ArgsUsage: "[album]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Usage: "playlist format: m3u, pls, wpl or zpl (default from settings)",
				},
				&cli.StringFlag{
					Name:  "dir",
					Usage: "output directory (default from settings)",
				},
			},
			Action: a.playlistAction,
		},
		{
			Name:  "config",
			Usage: "manage the settings file",
			Subcommands: []*cli.Command{
				{
					Name:   "init",
					Usage:  "write the current settings to the --config path",
					Action: a.configInitAction,
				},
			},
		},
	}
}

func (a *app) importAction(cCtx *cli.Context) error {
	sources := cCtx.Args().Slice()
	if len(sources) == 0 {
		sources = a.settings.Sources
	}
	if len(sources) == 0 {
		return errors.New("no sources given and none configured")
	}

	st, err := store.Open(a.settings.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	c := catalog.New()
	if cCtx.Bool("append") {
		if c, err = st.Load(cCtx.Context); err != nil {
			return err
		}
	}

	manager := importer.NewManager(a.settings, a.logProgress)
	if err := manager.Load(cCtx.Context, c, sources); err != nil {
		return err
	}

	if err := st.Save(cCtx.Context, c); err != nil {
		return err
	}

	albums, songs, err := st.Counts(cCtx.Context)
	if err != nil {
		return err
	}

	stats := manager.Stats()
	a.logger.Info("catalog saved",
		"path", a.settings.DatabasePath,
		"sources", stats.Loaded,
		"failed", stats.Failed,
		"albums", albums,
		"songs", songs,
	)
	return nil
}

// logProgress forwards importer events to the logger.
func (a *app) logProgress(event importer.ProgressEvent) {
	level := slog.LevelInfo
	switch event.Level {
	case importer.LevelVerbose:
		level = slog.LevelDebug
	case importer.LevelWarning:
		level = slog.LevelWarn
	case importer.LevelError:
		level = slog.LevelError
	}
	a.logger.Log(context.Background(), level, event.Message)
}

// loadCatalog reads the snapshot database. A missing database is an error
// rather than an empty catalog, so that a wrong --db path is noticed.
func (a *app) loadCatalog(cCtx *cli.Context) (*catalog.Catalog, error) {
	path := a.settings.DatabasePath
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no snapshot at %s, run import first: %w", path, err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	a.logger.Debug("loading snapshot", "path", path)
	return st.Load(cCtx.Context)
}

func (a *app) songsAction(cCtx *cli.Context) error {
	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	a.printLines(c.OrderedSongNames())
	return nil
}

func (a *app) albumsAction(cCtx *cli.Context) error {
	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	names := c.AlbumNames()
	slices.Sort(names)
	a.printLines(names)
	return nil
}

func (a *app) yearAction(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return errors.New("year requires exactly one argument")
	}
	year, err := strconv.Atoi(cCtx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", cCtx.Args().First(), err)
	}

	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	names := c.AlbumInYear(year)
	slices.Sort(names)
	a.printLines(names)
	return nil
}

func (a *app) countAction(cCtx *cli.Context) error {
	noAlbum := cCtx.Bool("no-album")
	if noAlbum == (cCtx.NArg() == 1) || cCtx.NArg() > 1 {
		return errors.New("count requires either one album or --no-album")
	}

	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	if noAlbum {
		fmt.Fprintln(a.out, c.CountSongsInNoAlbum())
	} else {
		fmt.Fprintln(a.out, c.CountSongs(cCtx.Args().First()))
	}
	return nil
}

func (a *app) averageAction(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return errors.New("average requires exactly one album")
	}
	album := cCtx.Args().First()

	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	avg, ok := c.AverageDurationOfSongs(album)
	if !ok {
		return fmt.Errorf("album %q has no songs", album)
	}
	fmt.Fprintln(a.out, strconv.FormatFloat(avg, 'f', -1, 64))
	return nil
}

func (a *app) longestSongAction(cCtx *cli.Context) error {
	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	name, err := c.LongestSong()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, name)
	return nil
}

func (a *app) longestAlbumAction(cCtx *cli.Context) error {
	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	name, err := c.LongestAlbum()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, name)
	return nil
}

func (a *app) summaryAction(cCtx *cli.Context) error {
	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	s, err := c.Summary()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Albums:         %d\n", s.Albums)
	fmt.Fprintf(a.out, "Songs:          %d (%d in no album)\n", s.Songs, s.SongsInNoAlbum)
	fmt.Fprintf(a.out, "Total duration: %s\n", manifest.Duration(s.TotalDuration))
	fmt.Fprintf(a.out, "Longest song:   %s\n", orNone(s.LongestSong))
	fmt.Fprintf(a.out, "Longest album:  %s\n", orNone(s.LongestAlbum))

	stats := c.AlbumStats()
	if len(stats) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		average := "-"
		if st.Songs > 0 {
			average = manifest.Duration(st.Average).String()
		}
		rows = append(rows, []string{
			st.Album.Name,
			strconv.Itoa(st.Album.Year),
			strconv.Itoa(st.Songs),
			average,
			manifest.Duration(st.Total).String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Album", "Year", "Songs", "Average", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, t.Render())
	return nil
}

func (a *app) exportAction(cCtx *cli.Context) error {
	format, err := manifest.ParseFormat(cCtx.String("format"))
	if err != nil {
		return err
	}

	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}
	data, err := manifest.FromCatalog(c).Encode(format)
	if err != nil {
		return err
	}

	if output := cCtx.String("output"); output != "" {
		if err := ioutils.WriteFile(cCtx.Context, output, data); err != nil {
			return err
		}
		a.logger.Info("manifest written", "path", output, "format", format)
		return nil
	}
	_, err = a.out.Write(data)
	return err
}

func (a *app) playlistAction(cCtx *cli.Context) error {
	if cCtx.NArg() > 1 {
		return errors.New("playlist takes at most one album")
	}

	settings := *a.settings
	if f := cCtx.String("format"); f != "" {
		settings.PlaylistFormat = f
	}
	if dir := cCtx.String("dir"); dir != "" {
		settings.PlaylistDirectory = dir
	}

	c, err := a.loadCatalog(cCtx)
	if err != nil {
		return err
	}

	title, fileName := allSongsTitle, ioutils.SanitizeFileName(allSongsTitle)
	songs := c.Songs()
	if cCtx.NArg() == 1 {
		title = cCtx.Args().First()
		year, ok := c.Year(title)
		if !ok {
			return fmt.Errorf("%w: %q", catalog.ErrInvalidReference, title)
		}
		songs = c.SongsInAlbum(title)
		fileName = model.NewAlbum(title, year).FileName(settings.PlaylistFileNameFormat)
	}

	pl := audio.NewPlaylist(title, songs, settings.SongFileNameFormat)
	creator := audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended)
	path, err := creator.SavePlaylist(cCtx.Context, pl, settings.PlaylistDirectory, fileName)
	if err != nil {
		return err
	}

	a.logger.Info("playlist written", "path", path, "songs", len(songs), "format", creator.Format())
	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) configInitAction(cCtx *cli.Context) error {
	path := cCtx.String("config")
	if err := a.settings.Save(path); err != nil {
		return err
	}
	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
