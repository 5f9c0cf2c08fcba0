package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
)

// AnnouncementFilter narrows the communications board listing.
type AnnouncementFilter struct {
	Category   *string
	Priorities []domain.AnnouncementPriority
	PinnedOnly bool
	SearchTerm *string
	Page
}

// AnnouncementRepository encapsulates announcement persistence.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	Update(ctx context.Context, a *domain.Announcement) error
	GetByID(ctx context.Context, id string) (*domain.Announcement, error)
	List(ctx context.Context, filter AnnouncementFilter) ([]domain.Announcement, error)
	Delete(ctx context.Context, id string) (*string, error)
	SetDiscordMessageID(ctx context.Context, id string, messageID *string) error
}

type announcementRepository struct {
	db persistence.DBTX
}

// NewAnnouncementRepository instantiates repository.
func NewAnnouncementRepository(db persistence.DBTX) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const announcementColumns = `id, title, body, author, category, priority, pinned, image_url, discord_message_id, created_at, updated_at`

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (title, body, author, category, priority, pinned, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		a.Title,
		a.Body,
		a.Author,
		a.Category,
		a.Priority,
		a.Pinned,
		a.ImageURL,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapWriteError("announcement", err)
}

func (r *announcementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	const query = `
        UPDATE announcements SET title=$1, body=$2, author=$3, category=$4, priority=$5, pinned=$6,
            image_url=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		a.Title,
		a.Body,
		a.Author,
		a.Category,
		a.Priority,
		a.Pinned,
		a.ImageURL,
		a.ID,
	).Scan(&a.UpdatedAt)
	return mapWriteError("announcement", err)
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id=$1`
	return scanAnnouncement(r.db.QueryRow(ctx, query, id))
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]domain.Announcement, error) {
	var w where
	if filter.Category != nil {
		w.add("category=%s", *filter.Category)
	}
	if filter.PinnedOnly {
		w.clauses = append(w.clauses, "pinned = TRUE")
	}
	w.in("priority", toStrings(filter.Priorities))
	w.search(filter.SearchTerm, "title", "body")

	query := w.sql(`SELECT `+announcementColumns+` FROM announcements`, "pinned DESC, created_at DESC", filter.Page)
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *announcementRepository) Delete(ctx context.Context, id string) (*string, error) {
	var messageID *string
	err := r.db.QueryRow(ctx, `DELETE FROM announcements WHERE id=$1 RETURNING discord_message_id`, id).Scan(&messageID)
	if err != nil {
		return nil, err
	}
	return messageID, nil
}

func (r *announcementRepository) SetDiscordMessageID(ctx context.Context, id string, messageID *string) error {
	return setDiscordMessageID(ctx, r.db, "announcements", id, messageID)
}

func scanAnnouncement(row pgx.Row) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.Author,
		&a.Category,
		&a.Priority,
		&a.Pinned,
		&a.ImageURL,
		&a.DiscordMessageID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// setDiscordMessageID stores the mirrored message ID without touching updated_at,
// so syncing never looks like a user edit.
func setDiscordMessageID(ctx context.Context, db persistence.DBTX, table, id string, messageID *string) error {
	cmd, err := db.Exec(ctx, `UPDATE `+table+` SET discord_message_id=$1 WHERE id=$2`, messageID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
