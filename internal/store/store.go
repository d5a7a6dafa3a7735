package store

import (
	"context"
	"fmt"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/handiism/music-catalog/internal/catalog"
	ioutils "github.com/handiism/music-catalog/internal/io"
	"github.com/handiism/music-catalog/internal/model"
)

// InMemory is the database path for a private, non-persistent database.
const InMemory = ":memory:"

const batchSize = 500

// albumRow is the persisted form of model.Album.
type albumRow struct {
	Name string `gorm:"primaryKey"`
	Year int
}

func (albumRow) TableName() string { return "albums" }

// songRow is the persisted form of model.Song.
// AlbumName is NULL for songs that belong to no album.
type songRow struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	AlbumName *string `gorm:"index"`
	Duration  float64
}

func (songRow) TableName() string { return "songs" }

// Store persists catalogs to a SQLite database.
//
// A store holds a single catalog snapshot: Save replaces whatever was
// stored before, and Load rebuilds a catalog from it.
//
// Example usage:
//
//	st, err := store.Open("/home/user/.music-catalog/catalog.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	if err := st.Save(ctx, c); err != nil {
//	    log.Fatal(err)
//	}
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the database at path and migrates
// its schema. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if path != InMemory {
		if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if path == InMemory {
		// Every connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&albumRow{}, &songRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save replaces the stored snapshot with the contents of c.
// The replacement is atomic: on error the previous snapshot is kept.
func (s *Store) Save(ctx context.Context, c *catalog.Catalog) error {
	albums := c.Albums()
	albumRows := make([]albumRow, 0, len(albums))
	for _, a := range albums {
		albumRows = append(albumRows, albumRow{Name: a.Name, Year: a.Year})
	}

	songs := c.Songs()
	songRows := make([]songRow, 0, len(songs))
	for _, song := range songs {
		row := songRow{Name: song.Name, Duration: song.Duration}
		if name, ok := song.Album.Get(); ok {
			row.AlbumName = &name
		}
		songRows = append(songRows, row)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&songRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear songs: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&albumRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear albums: %w", err)
		}
		if len(albumRows) > 0 {
			if err := tx.CreateInBatches(albumRows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to save albums: %w", err)
			}
		}
		if len(songRows) > 0 {
			if err := tx.CreateInBatches(songRows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to save songs: %w", err)
			}
		}
		return nil
	})
}

// Load rebuilds a catalog from the stored snapshot.
// An empty database yields an empty catalog.
func (s *Store) Load(ctx context.Context) (*catalog.Catalog, error) {
	var albums []albumRow
	if err := s.db.WithContext(ctx).Order("name").Find(&albums).Error; err != nil {
		return nil, fmt.Errorf("failed to load albums: %w", err)
	}

	var songs []songRow
	if err := s.db.WithContext(ctx).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}

	c := catalog.New()
	for _, a := range albums {
		c.AddAlbum(a.Name, a.Year)
	}
	for _, row := range songs {
		album := model.NoAlbum()
		if row.AlbumName != nil {
			album = model.InAlbum(*row.AlbumName)
		}
		if err := c.AddSong(row.Name, album, row.Duration); err != nil {
			return nil, fmt.Errorf("song %d: %w", row.ID, err)
		}
	}
	return c, nil
}

// Counts returns the number of stored albums and songs.
func (s *Store) Counts(ctx context.Context) (albums, songs int64, err error) {
	if err = s.db.WithContext(ctx).Model(&albumRow{}).Count(&albums).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.WithContext(ctx).Model(&songRow{}).Count(&songs).Error; err != nil {
		return 0, 0, err
	}
	return albums, songs, nil
}
