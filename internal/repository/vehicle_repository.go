package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
)

// VehicleFilter narrows the roster listing.
type VehicleFilter struct {
	Statuses   []domain.VehicleStatus
	SearchTerm *string
	Page
}

// VehicleRepository encapsulates vehicle roster persistence.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id string) (*string, error)
	SetDiscordMessageID(ctx context.Context, id string, messageID *string) error
}

type vehicleRepository struct {
	db persistence.DBTX
}

// NewVehicleRepository instantiates repository.
func NewVehicleRepository(db persistence.DBTX) VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, name, model, plate, callsign, status, notes, image_url, discord_message_id, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (name, model, plate, callsign, status, notes, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		v.Name,
		v.Model,
		v.Plate,
		v.Callsign,
		v.Status,
		v.Notes,
		v.ImageURL,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	return mapWriteError("vehicle", err)
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	const query = `
        UPDATE vehicles SET name=$1, model=$2, plate=$3, callsign=$4, status=$5, notes=$6,
            image_url=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		v.Name,
		v.Model,
		v.Plate,
		v.Callsign,
		v.Status,
		v.Notes,
		v.ImageURL,
		v.ID,
	).Scan(&v.UpdatedAt)
	return mapWriteError("vehicle", err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id=$1`
	return scanVehicle(r.db.QueryRow(ctx, query, id))
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error) {
	var w where
	w.in("status", toStrings(filter.Statuses))
	w.search(filter.SearchTerm, "name", "plate", "callsign", "model")

	query := w.sql(`SELECT `+vehicleColumns+` FROM vehicles`, "callsign ASC, name ASC", filter.Page)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, rows.Err()
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) (*string, error) {
	var messageID *string
	err := r.db.QueryRow(ctx, `DELETE FROM vehicles WHERE id=$1 RETURNING discord_message_id`, id).Scan(&messageID)
	if err != nil {
		return nil, err
	}
	return messageID, nil
}

func (r *vehicleRepository) SetDiscordMessageID(ctx context.Context, id string, messageID *string) error {
	return setDiscordMessageID(ctx, r.db, "vehicles", id, messageID)
}

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Model,
		&v.Plate,
		&v.Callsign,
		&v.Status,
		&v.Notes,
		&v.ImageURL,
		&v.DiscordMessageID,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
