package menu

import (
	"context"
	"database/sql"
	"errors"

	"campuseats-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListAvailableByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error)
	ListByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
	// GetByIDs resolves a batch of item ids in one query. Missing ids are
	// simply absent from the result; callers decide what that means.
	GetByIDs(ctx context.Context, ids []string) ([]*MenuItem, error)
	Create(ctx context.Context, params CreateParams) (*MenuItem, error)
	Update(ctx context.Context, id string, params UpdateParams) (*MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, canteen_id, name, description, price, image_url, is_available, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.CanteenID, &m.Name, &m.Description,
		&m.Price, &m.ImageURL, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*MenuItem, 0)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) ListAvailableByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	return r.list(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE canteen_id = $1 AND is_available = TRUE
		ORDER BY name
	`, canteenID)
}

func (r *repository) ListByCanteen(ctx context.Context, canteenID string) ([]*MenuItem, error) {
	return r.list(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE canteen_id = $1
		ORDER BY name
	`, canteenID)
}

func (r *repository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	m, err := scanItem(r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE id = $1
	`, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetMenuItemsByIDs"),
		zap.Int("id_count", len(ids)),
	)

	items, err := r.list(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		log.Error("batched menu item lookup failed", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateMenuItem"),
		zap.String("canteen_id", params.CanteenID),
	)

	imageURL := params.ImageURL
	if imageURL == "" {
		imageURL = defaultImageURL
	}

	m, err := scanItem(r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (canteen_id, name, description, price, image_url, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns+`
	`, params.CanteenID, params.Name, params.Description, params.Price, imageURL, params.IsAvailable))

	if err != nil {
		log.Error("failed to insert menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.String("item_id", m.ID))
	return m, nil
}

func (r *repository) Update(ctx context.Context, id string, params UpdateParams) (*MenuItem, error) {
	m, err := scanItem(r.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    price = COALESCE($3, price),
		    image_url = COALESCE($4, image_url),
		    is_available = COALESCE($5, is_available),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING `+itemColumns+`
	`, params.Name, params.Description, params.Price, params.ImageURL, params.IsAvailable, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
