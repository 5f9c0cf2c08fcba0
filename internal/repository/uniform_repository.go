package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
)

// UniformFilter narrows the catalog listing.
type UniformFilter struct {
	Category   *string
	SearchTerm *string
	Page
}

// UniformRepository encapsulates uniform catalog persistence.
type UniformRepository interface {
	Create(ctx context.Context, u *domain.Uniform) error
	Update(ctx context.Context, u *domain.Uniform) error
	GetByID(ctx context.Context, id string) (*domain.Uniform, error)
	List(ctx context.Context, filter UniformFilter) ([]domain.Uniform, error)
	Delete(ctx context.Context, id string) (*string, error)
	SetDiscordMessageID(ctx context.Context, id string, messageID *string) error
}

type uniformRepository struct {
	db persistence.DBTX
}

// NewUniformRepository instantiates repository.
func NewUniformRepository(db persistence.DBTX) UniformRepository {
	return &uniformRepository{db: db}
}

const uniformColumns = `id, name, category, description, items, image_url, discord_message_id, created_at, updated_at`

func (r *uniformRepository) Create(ctx context.Context, u *domain.Uniform) error {
	const query = `
        INSERT INTO uniforms (name, category, description, items, image_url)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		u.Name,
		u.Category,
		u.Description,
		u.Items,
		u.ImageURL,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapWriteError("uniform", err)
}

func (r *uniformRepository) Update(ctx context.Context, u *domain.Uniform) error {
	const query = `
        UPDATE uniforms SET name=$1, category=$2, description=$3, items=$4, image_url=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		u.Name,
		u.Category,
		u.Description,
		u.Items,
		u.ImageURL,
		u.ID,
	).Scan(&u.UpdatedAt)
	return mapWriteError("uniform", err)
}

func (r *uniformRepository) GetByID(ctx context.Context, id string) (*domain.Uniform, error) {
	query := `SELECT ` + uniformColumns + ` FROM uniforms WHERE id=$1`
	return scanUniform(r.db.QueryRow(ctx, query, id))
}

func (r *uniformRepository) List(ctx context.Context, filter UniformFilter) ([]domain.Uniform, error) {
	var w where
	if filter.Category != nil {
		w.add("category=%s", *filter.Category)
	}
	w.search(filter.SearchTerm, "name", "description")

	query := w.sql(`SELECT `+uniformColumns+` FROM uniforms`, "category ASC, name ASC", filter.Page)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Uniform
	for rows.Next() {
		u, err := scanUniform(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func (r *uniformRepository) Delete(ctx context.Context, id string) (*string, error) {
	var messageID *string
	err := r.db.QueryRow(ctx, `DELETE FROM uniforms WHERE id=$1 RETURNING discord_message_id`, id).Scan(&messageID)
	if err != nil {
		return nil, err
	}
	return messageID, nil
}

func (r *uniformRepository) SetDiscordMessageID(ctx context.Context, id string, messageID *string) error {
	return setDiscordMessageID(ctx, r.db, "uniforms", id, messageID)
}

func scanUniform(row pgx.Row) (*domain.Uniform, error) {
	var u domain.Uniform
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Category,
		&u.Description,
		&u.Items,
		&u.ImageURL,
		&u.DiscordMessageID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
