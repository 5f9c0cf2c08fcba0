package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
)

// PersonnelFilter narrows the personnel listing.
type PersonnelFilter struct {
	Rank       *string
	SuperiorID *string
	Statuses   []domain.PersonnelStatus
	SearchTerm *string
	Page
}

// PersonnelRepository encapsulates personnel persistence.
type PersonnelRepository interface {
	Create(ctx context.Context, p *domain.Personnel) error
	Update(ctx context.Context, p *domain.Personnel) error
	GetByID(ctx context.Context, id string) (*domain.Personnel, error)
	List(ctx context.Context, filter PersonnelFilter) ([]domain.Personnel, error)
	ListAll(ctx context.Context) ([]domain.Personnel, error)
	Delete(ctx context.Context, id string) (*string, error)
	SetDiscordMessageID(ctx context.Context, id string, messageID *string) error
}

type personnelRepository struct {
	db persistence.DBTX
}

// NewPersonnelRepository instantiates repository.
func NewPersonnelRepository(db persistence.DBTX) PersonnelRepository {
	return &personnelRepository{db: db}
}

const personnelColumns = `id, name, rank, badge_number, callsign, position, superior_id, status, joined_at, discord_message_id, created_at, updated_at`

func (r *personnelRepository) Create(ctx context.Context, p *domain.Personnel) error {
	const query = `
        INSERT INTO personnel (name, rank, badge_number, callsign, position, superior_id, status, joined_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Rank,
		p.BadgeNumber,
		p.Callsign,
		p.Position,
		p.SuperiorID,
		p.Status,
		p.JoinedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapWriteError("personnel", err)
}

func (r *personnelRepository) Update(ctx context.Context, p *domain.Personnel) error {
	const query = `
        UPDATE personnel SET name=$1, rank=$2, badge_number=$3, callsign=$4, position=$5,
            superior_id=$6, status=$7, joined_at=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Rank,
		p.BadgeNumber,
		p.Callsign,
		p.Position,
		p.SuperiorID,
		p.Status,
		p.JoinedAt,
		p.ID,
	).Scan(&p.UpdatedAt)
	return mapWriteError("personnel", err)
}

func (r *personnelRepository) GetByID(ctx context.Context, id string) (*domain.Personnel, error) {
	query := `SELECT ` + personnelColumns + ` FROM personnel WHERE id=$1`
	return scanPersonnel(r.db.QueryRow(ctx, query, id))
}

func (r *personnelRepository) List(ctx context.Context, filter PersonnelFilter) ([]domain.Personnel, error) {
	var w where
	if filter.Rank != nil {
		w.add("rank=%s", *filter.Rank)
	}
	if filter.SuperiorID != nil {
		w.add("superior_id=%s", *filter.SuperiorID)
	}
	w.in("status", toStrings(filter.Statuses))
	w.search(filter.SearchTerm, "name", "callsign", "badge_number")

	query := w.sql(`SELECT `+personnelColumns+` FROM personnel`, "name ASC", filter.Page)
	return r.query(ctx, query, w.args...)
}

// ListAll returns every record; the hierarchy view needs the full set.
func (r *personnelRepository) ListAll(ctx context.Context) ([]domain.Personnel, error) {
	return r.query(ctx, `SELECT `+personnelColumns+` FROM personnel ORDER BY name ASC`)
}

func (r *personnelRepository) query(ctx context.Context, query string, args ...any) ([]domain.Personnel, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *personnelRepository) Delete(ctx context.Context, id string) (*string, error) {
	var messageID *string
	err := r.db.QueryRow(ctx, `DELETE FROM personnel WHERE id=$1 RETURNING discord_message_id`, id).Scan(&messageID)
	if err != nil {
		return nil, err
	}
	return messageID, nil
}

func (r *personnelRepository) SetDiscordMessageID(ctx context.Context, id string, messageID *string) error {
	return setDiscordMessageID(ctx, r.db, "personnel", id, messageID)
}

func scanPersonnel(row pgx.Row) (*domain.Personnel, error) {
	var p domain.Personnel
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Rank,
		&p.BadgeNumber,
		&p.Callsign,
		&p.Position,
		&p.SuperiorID,
		&p.Status,
		&p.JoinedAt,
		&p.DiscordMessageID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
