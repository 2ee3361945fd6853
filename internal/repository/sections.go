package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Section is the persistence record for a content section.
type Section struct {
	ID             int64
	Name           string
	Nick           string
	Description    *string
	ModeratorUUIDs []string
	AssistantUUIDs []string
	Status         int16
	Level          int32
	OnlyRoles      bool
	RoleIDs        []int64
	OnlyGroups     bool
	GroupIDs       []int64
	CreateAt       time.Time
}

const sectionColumns = `id, name, nick, description, moderator_uuids,
	assistant_uuids, status, level, only_roles, role_ids, only_groups,
	group_ids, create_at`

var sectionSearchColumns = []string{"name", "nick", "description"}

// SectionRepository owns the sections table.
type SectionRepository struct {
	pool *pgxpool.Pool
}

func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

func scanSection(row pgx.Row) (*Section, error) {
	s := &Section{}
	err := row.Scan(&s.ID, &s.Name, &s.Nick, &s.Description,
		&s.ModeratorUUIDs, &s.AssistantUUIDs, &s.Status, &s.Level,
		&s.OnlyRoles, &s.RoleIDs, &s.OnlyGroups, &s.GroupIDs, &s.CreateAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Insert persists a new section and fills in the generated id and create_at.
func (r *SectionRepository) Insert(ctx context.Context, s *Section) error {
	const q = `insert into sections (name, nick, description, moderator_uuids,
		assistant_uuids, status, level, only_roles, role_ids, only_groups,
		group_ids)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		returning id, create_at`
	return r.pool.QueryRow(ctx, q, s.Name, s.Nick, s.Description,
		s.ModeratorUUIDs, s.AssistantUUIDs, s.Status, s.Level, s.OnlyRoles,
		s.RoleIDs, s.OnlyGroups, s.GroupIDs).Scan(&s.ID, &s.CreateAt)
}

// GetByID fetches a single section, returning pgx.ErrNoRows when absent.
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*Section, error) {
	q := fmt.Sprintf(`select %s from sections where id = $1`, sectionColumns)
	return scanSection(r.pool.QueryRow(ctx, q, id))
}

// List returns one page of sections plus the total matching count.
func (r *SectionRepository) List(ctx context.Context, lq ListQuery) ([]Section, int64, error) {
	where, args := buildSearch(lq, sectionSearchColumns)

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from sections`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`select %s from sections%s order by %s %s`,
		sectionColumns, where, lq.OrderField, lq.Order)
	if lq.Limit > 0 {
		q += fmt.Sprintf(` limit %d offset %d`, lq.Limit, lq.Offset)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, 0, err
		}
		sections = append(sections, *s)
	}
	return sections, total, rows.Err()
}

// Update rewrites the mutable columns of a section identified by id.
func (r *SectionRepository) Update(ctx context.Context, s *Section) error {
	const q = `update sections set name = $2, nick = $3, description = $4,
		moderator_uuids = $5, assistant_uuids = $6, status = $7, level = $8,
		only_roles = $9, role_ids = $10, only_groups = $11, group_ids = $12
		where id = $1`
	tag, err := r.pool.Exec(ctx, q, s.ID, s.Name, s.Nick, s.Description,
		s.ModeratorUUIDs, s.AssistantUUIDs, s.Status, s.Level, s.OnlyRoles,
		s.RoleIDs, s.OnlyGroups, s.GroupIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a section row, returning pgx.ErrNoRows when nothing matched.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `delete from sections where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
