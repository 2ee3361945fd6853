// Package repository handles all interactions with the database.
//
// It contains the raw SQL to fetch, persist and update records, keeping SQL
// out of the service layer. Ordering and filter columns passed in ListQuery
// must already be whitelisted by the caller.
package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories is the container for all repository instances.
type Repositories struct {
	Users    *UserRepository
	Sections *SectionRepository
}

// NewRepositories constructs the repository container on a shared pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool),
		Sections: NewSectionRepository(pool),
	}
}

// ListQuery carries pagination, ordering and filtering for list queries.
// Limit 0 means "no limit". OrderField, Order and QueryField are column
// names validated by the service layer before they reach SQL text.
type ListQuery struct {
	Limit      int
	Offset     int
	OrderField string
	Order      string
	Query      string
	QueryField string
}
