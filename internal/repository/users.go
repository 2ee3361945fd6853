package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is the persistence record for a user account. Pointer fields are
// nullable columns.
type User struct {
	ID             int64
	UUID           string
	Username       string
	Password       string
	Nick           string
	RoleID         int64
	GroupIDs       []int64
	Gender         *int16
	Email          *string
	Phone          *string
	QQ             *string
	Address        *string
	Status         int16
	Remark         *string
	GenderPrivacy  int16
	EmailPrivacy   int16
	PhonePrivacy   int16
	QQPrivacy      int16
	AddressPrivacy int16
	CreateAt       time.Time
}

const userColumns = `id, uuid, username, password, nick, role_id, group_ids,
	gender, email, phone, qq, address, status, remark,
	gender_privacy, email_privacy, phone_privacy, qq_privacy, address_privacy,
	create_at`

// userSearchColumns are searched when a list query has no query_field.
var userSearchColumns = []string{"username", "nick", "remark"}

// UserRepository owns the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.UUID, &u.Username, &u.Password, &u.Nick,
		&u.RoleID, &u.GroupIDs, &u.Gender, &u.Email, &u.Phone, &u.QQ,
		&u.Address, &u.Status, &u.Remark,
		&u.GenderPrivacy, &u.EmailPrivacy, &u.PhonePrivacy, &u.QQPrivacy,
		&u.AddressPrivacy, &u.CreateAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Insert persists a new user and fills in the generated id and create_at.
func (r *UserRepository) Insert(ctx context.Context, u *User) error {
	const q = `insert into users (uuid, username, password, nick, role_id,
		group_ids, gender, email, phone, qq, address, status, remark,
		gender_privacy, email_privacy, phone_privacy, qq_privacy, address_privacy)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17, $18)
		returning id, create_at`
	return r.pool.QueryRow(ctx, q, u.UUID, u.Username, u.Password, u.Nick,
		u.RoleID, u.GroupIDs, u.Gender, u.Email, u.Phone, u.QQ, u.Address,
		u.Status, u.Remark, u.GenderPrivacy, u.EmailPrivacy, u.PhonePrivacy,
		u.QQPrivacy, u.AddressPrivacy).Scan(&u.ID, &u.CreateAt)
}

// GetByUUID fetches a single user, returning pgx.ErrNoRows when absent.
func (r *UserRepository) GetByUUID(ctx context.Context, uuid string) (*User, error) {
	q := fmt.Sprintf(`select %s from users where uuid = $1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, q, uuid))
}

// List returns one page of users plus the total matching count.
func (r *UserRepository) List(ctx context.Context, lq ListQuery) ([]User, int64, error) {
	where, args := buildSearch(lq, userSearchColumns)

	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`select %s from users%s order by %s %s`,
		userColumns, where, lq.OrderField, lq.Order)
	if lq.Limit > 0 {
		q += fmt.Sprintf(` limit %d offset %d`, lq.Limit, lq.Offset)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Update rewrites the mutable columns of a user identified by uuid.
func (r *UserRepository) Update(ctx context.Context, u *User) error {
	const q = `update users set username = $2, password = $3, nick = $4,
		role_id = $5, group_ids = $6, gender = $7, email = $8, phone = $9,
		qq = $10, address = $11, status = $12, remark = $13,
		gender_privacy = $14, email_privacy = $15, phone_privacy = $16,
		qq_privacy = $17, address_privacy = $18
		where uuid = $1`
	tag, err := r.pool.Exec(ctx, q, u.UUID, u.Username, u.Password, u.Nick,
		u.RoleID, u.GroupIDs, u.Gender, u.Email, u.Phone, u.QQ, u.Address,
		u.Status, u.Remark, u.GenderPrivacy, u.EmailPrivacy, u.PhonePrivacy,
		u.QQPrivacy, u.AddressPrivacy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a user row, returning pgx.ErrNoRows when nothing matched.
func (r *UserRepository) Delete(ctx context.Context, uuid string) error {
	tag, err := r.pool.Exec(ctx, `delete from users where uuid = $1`, uuid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// buildSearch assembles the WHERE clause for a list query. Column names come
// from the service layer's whitelist, never from raw request input.
func buildSearch(lq ListQuery, searchColumns []string) (string, []any) {
	if lq.Query == "" {
		return "", nil
	}
	pattern := "%" + lq.Query + "%"
	if lq.QueryField != "" {
		return fmt.Sprintf(` where %s::text ilike $1`, lq.QueryField), []any{pattern}
	}
	clauses := make([]string, 0, len(searchColumns))
	for _, col := range searchColumns {
		clauses = append(clauses, fmt.Sprintf(`%s::text ilike $1`, col))
	}
	return ` where ` + strings.Join(clauses, " or "), []any{pattern}
}
