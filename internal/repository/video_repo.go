package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipgallery/clipgallery-go/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// ListPage returns one page of a platform's videos, newest first.
func (r *VideoRepo) ListPage(ctx context.Context, platform model.Platform, limit, offset int) ([]model.Video, error) {
	query := `
		SELECT id, platform, COALESCE(title, ''), COALESCE(description, ''),
		       COALESCE(author_name, ''), COALESCE(author_user, ''),
		       original_url, COALESCE(thumbnail_url, ''),
		       COALESCE(views, 0), COALESCE(likes, 0),
		       COALESCE(category, ''), created_at, COALESCE(added_by, '')
		FROM videos
		WHERE platform = $1
		ORDER BY created_at DESC NULLS LAST, id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, platform, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.ID, &v.Platform, &v.Title, &v.Description,
			&v.AuthorName, &v.AuthorUser,
			&v.OriginalURL, &v.ThumbnailURL,
			&v.Views, &v.Likes,
			&v.Category, &v.CreatedAt, &v.AddedBy,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// Count returns the total number of videos for a platform.
func (r *VideoRepo) Count(ctx context.Context, platform model.Platform) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM videos WHERE platform = $1`, platform).Scan(&total)
	return total, err
}

// PlatformTotals returns the video count per platform in one query.
func (r *VideoRepo) PlatformTotals(ctx context.Context) (model.ResultMap, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT platform, COUNT(*) FROM videos GROUP BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(model.ResultMap)
	for rows.Next() {
		var p model.Platform
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return nil, err
		}
		totals[p] = n
	}
	return totals, rows.Err()
}

// Insert stores a new video.
func (r *VideoRepo) Insert(ctx context.Context, v model.Video) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO videos (id, platform, title, description, author_name, author_user,
		                    original_url, thumbnail_url, views, likes, category, created_at, added_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), $12)`,
		v.ID, v.Platform, v.Title, v.Description, v.AuthorName, v.AuthorUser,
		v.OriginalURL, v.ThumbnailURL, v.Views, v.Likes, v.Category, v.AddedBy,
	)
	return err
}
