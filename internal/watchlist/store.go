// Package watchlist persists the user's saved movies in a single sqlite
// table. Each row denormalizes the movie's fields (no foreign key) so a
// saved entry stays readable even if the remote record changes or
// disappears; genre and video lists are serialized JSON columns.
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/appydinos/moviebrowser/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// itemRow is the persisted shape of one watchlist entry.
type itemRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	MovieID     int       `gorm:"column:movie_id;uniqueIndex"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	PosterURL   string    `gorm:"column:poster_url"`
	ReleaseDate string    `gorm:"column:release_date"`
	Rating      float64   `gorm:"column:rating"`
	Votes       int       `gorm:"column:votes"`
	Genres      string    `gorm:"column:genres"` // JSON-encoded []string
	RunTime     string    `gorm:"column:run_time"`
	Status      string    `gorm:"column:status"`
	TagLine     string    `gorm:"column:tag_line"`
	Videos      string    `gorm:"column:videos"` // JSON-encoded []domain.Video
	AddedAt     time.Time `gorm:"column:added_at;index"`
}

func (itemRow) TableName() string { return "watchlist" }

// Store implements domain.WatchlistRepository on sqlite. Conflicting
// writes are serialized by the engine; no higher-level locking is
// needed.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (or creates) the watchlist database at path and migrates
// the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&itemRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add upserts the movie keyed by movie id: re-adding an already saved
// movie replaces its row (including the added timestamp) instead of
// duplicating it. Returns the surrogate row id.
func (s *Store) Add(ctx context.Context, movie domain.Movie) (int64, error) {
	row, err := toRow(movie, time.Now())
	if err != nil {
		return 0, err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ID == 0 {
		// The upsert replaced an existing row; read its surrogate id back.
		var existing itemRow
		if err := s.db.WithContext(ctx).Select("id").Where("movie_id = ?", movie.ID).Take(&existing).Error; err != nil {
			return 0, err
		}
		row.ID = existing.ID
	}
	return row.ID, nil
}

// GetMovie returns the stored movie for the id, or nil when not present.
func (s *Store) GetMovie(ctx context.Context, movieID int) (*domain.Movie, error) {
	var row itemRow
	err := s.db.WithContext(ctx).Where("movie_id = ?", movieID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item, err := fromRow(row)
	if err != nil {
		return nil, err
	}
	return &item.Movie, nil
}

// Delete removes the row for the movie id. Deleting an absent id is a
// no-op.
func (s *Store) Delete(ctx context.Context, movieID int) error {
	return s.db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&itemRow{}).Error
}

// List returns one window of the watchlist ordered by added time
// descending, feeding the same Page shape as the remote loader. A nil
// key means the first window.
func (s *Store) List(ctx context.Context, key *int, pageSize int) (domain.Page[domain.WatchlistItem], error) {
	page := 1
	if key != nil {
		page = *key
	}

	// Fetch one extra row to learn whether another window exists.
	var rows []itemRow
	err := s.db.WithContext(ctx).
		Order("added_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize + 1).
		Find(&rows).Error
	if err != nil {
		return domain.Page[domain.WatchlistItem]{}, err
	}

	var nextKey *int
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		next := page + 1
		nextKey = &next
	}

	items := make([]domain.WatchlistItem, 0, len(rows))
	for _, row := range rows {
		item, err := fromRow(row)
		if err != nil {
			return domain.Page[domain.WatchlistItem]{}, err
		}
		items = append(items, item)
	}
	return domain.Page[domain.WatchlistItem]{Items: items, NextKey: nextKey}, nil
}

// UpdateTrailers overwrites only the stored video list for the movie id.
// A no-op when the row does not exist.
func (s *Store) UpdateTrailers(ctx context.Context, movieID int, videos []domain.Video) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&itemRow{}).
		Where("movie_id = ?", movieID).
		Update("videos", string(data)).Error
}

func toRow(movie domain.Movie, addedAt time.Time) (itemRow, error) {
	genres, err := json.Marshal(movie.Genre)
	if err != nil {
		return itemRow{}, err
	}
	videos, err := json.Marshal(movie.Videos)
	if err != nil {
		return itemRow{}, err
	}
	return itemRow{
		MovieID:     movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterURL:   movie.PosterURL,
		ReleaseDate: movie.ReleaseDate,
		Rating:      movie.Rating,
		Votes:       movie.Votes,
		Genres:      string(genres),
		RunTime:     movie.RunTime,
		Status:      movie.Status,
		TagLine:     movie.TagLine,
		Videos:      string(videos),
		AddedAt:     addedAt,
	}, nil
}

func fromRow(row itemRow) (domain.WatchlistItem, error) {
	var genres []string
	if row.Genres != "" {
		if err := json.Unmarshal([]byte(row.Genres), &genres); err != nil {
			return domain.WatchlistItem{}, err
		}
	}
	var videos []domain.Video
	if row.Videos != "" {
		if err := json.Unmarshal([]byte(row.Videos), &videos); err != nil {
			return domain.WatchlistItem{}, err
		}
	}
	return domain.WatchlistItem{
		ID: row.ID,
		Movie: domain.Movie{
			ID:          row.MovieID,
			Title:       row.Title,
			Description: row.Description,
			PosterURL:   row.PosterURL,
			ReleaseDate: row.ReleaseDate,
			Rating:      row.Rating,
			Votes:       row.Votes,
			Genre:       genres,
			RunTime:     row.RunTime,
			Status:      row.Status,
			TagLine:     row.TagLine,
			Videos:      videos,
		},
		AddedAt: row.AddedAt,
	}, nil
}
