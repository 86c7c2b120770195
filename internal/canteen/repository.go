package canteen

import (
	"context"
	"database/sql"
	"errors"

	"campuseats-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListOpen(ctx context.Context) ([]*Canteen, error)
	GetByID(ctx context.Context, id string) (*Canteen, error)
	Create(ctx context.Context, params CreateParams) (*Canteen, error)
	UpdateSettings(ctx context.Context, id string, params UpdateSettingsParams) (*Canteen, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const canteenColumns = `id, name, location, image_url, is_open, upi_id, created_at, updated_at`

func scanCanteen(row interface{ Scan(...any) error }) (*Canteen, error) {
	var c Canteen
	err := row.Scan(
		&c.ID, &c.Name, &c.Location, &c.ImageURL,
		&c.IsOpen, &c.UpiID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListOpen(ctx context.Context) ([]*Canteen, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOpenCanteens"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+canteenColumns+`
		FROM canteens
		WHERE is_open = TRUE
		ORDER BY name
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	canteens := make([]*Canteen, 0)
	for rows.Next() {
		c, err := scanCanteen(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		canteens = append(canteens, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return canteens, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Canteen, error) {
	c, err := scanCanteen(r.db.QueryRowContext(ctx, `
		SELECT `+canteenColumns+`
		FROM canteens
		WHERE id = $1
	`, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCanteenNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Canteen, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCanteen"),
		zap.String("name", params.Name),
	)

	imageURL := params.ImageURL
	if imageURL == "" {
		imageURL = defaultImageURL
	}

	c, err := scanCanteen(r.db.QueryRowContext(ctx, `
		INSERT INTO canteens (name, location, image_url, upi_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+canteenColumns+`
	`, params.Name, params.Location, imageURL, params.UpiID))

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrNameExists
		}
		log.Error("failed to insert canteen", zap.Error(err))
		return nil, err
	}

	log.Info("canteen created", zap.String("canteen_id", c.ID))
	return c, nil
}

func (r *repository) UpdateSettings(ctx context.Context, id string, params UpdateSettingsParams) (*Canteen, error) {
	// COALESCE keeps the stored value when the caller left a field nil.
	c, err := scanCanteen(r.db.QueryRowContext(ctx, `
		UPDATE canteens
		SET upi_id = COALESCE($1, upi_id),
		    is_open = COALESCE($2, is_open),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING `+canteenColumns+`
	`, params.UpiID, params.IsOpen, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCanteenNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM canteens`).Scan(&count)
	return count, err
}
