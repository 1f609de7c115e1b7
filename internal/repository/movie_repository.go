package repository

import (
	"context"

	"gorm.io/gorm"

	"movieapi/internal/model"
)

// MovieRepository defines movie persistence operations.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	FindByID(ctx context.Context, id uint) (*model.Movie, error)
	List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error)
	Update(ctx context.Context, movie *model.Movie) error
	Delete(ctx context.Context, id uint) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts a movie and fills in its ID.
func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

// FindByID finds a movie by ID.
func (r *movieRepository) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

// List returns movies matching every present filter field, ordered by ID.
func (r *movieRepository) List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error) {
	movies := []model.Movie{}
	q := r.db.WithContext(ctx).Order("id")
	if conds := filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// Update writes every column of an existing movie. It never inserts.
func (r *movieRepository) Update(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting(tx, &model.Movie{}, movie.ID); err != nil {
			return err
		}
		return tx.Model(movie).Select("*").Omit("id", "created_at").Updates(movie).Error
	})
}

// Delete removes a movie permanently.
func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Movie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
