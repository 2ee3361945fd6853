package service

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/repository"
)

const defaultPageSize = 10

// listParams is the common raw shape of list queries across resources.
type listParams struct {
	page       *string
	pageSize   *string
	orderField *string
	order      *string
	query      *string
	queryField *string
}

// buildListQuery interprets raw list parameters: page 0 (the default) means
// all data, page_size defaults to 10, order defaults to desc. Order and
// query fields are checked against the resource's column whitelists before
// they get near SQL text.
func buildListQuery(p listParams, defaultOrderField string, orderColumns, queryColumns map[string]struct{}) (repository.ListQuery, error) {
	lq := repository.ListQuery{OrderField: defaultOrderField, Order: "desc"}

	page := 0
	if p.page != nil {
		n, err := strconv.Atoi(*p.page)
		if err != nil || n < 0 {
			return lq, errs.NewBadRequestError("Invalid page number")
		}
		page = n
	}

	pageSize := defaultPageSize
	if p.pageSize != nil {
		n, err := strconv.Atoi(*p.pageSize)
		if err != nil || n <= 0 {
			return lq, errs.NewBadRequestError("Invalid page size")
		}
		pageSize = n
	}
	if page > 0 {
		lq.Limit = pageSize
		lq.Offset = (page - 1) * pageSize
	}

	if p.orderField != nil {
		if _, ok := orderColumns[*p.orderField]; !ok {
			return lq, errs.NewBadRequestError("Invalid order field")
		}
		lq.OrderField = *p.orderField
	}
	if p.order != nil {
		if *p.order != "asc" && *p.order != "desc" {
			return lq, errs.NewBadRequestError("Invalid order direction")
		}
		lq.Order = *p.order
	}

	if p.query != nil {
		lq.Query = *p.query
	}
	if p.queryField != nil && *p.queryField != "" {
		if _, ok := queryColumns[*p.queryField]; !ok {
			return lq, errs.NewBadRequestError("Invalid query field")
		}
		lq.QueryField = *p.queryField
	}

	return lq, nil
}

// parseInt64List converts identifier strings to int64, surfacing the given
// message on the first malformed entry. Order and duplicates are preserved.
func parseInt64List(values []string, message string) ([]int64, error) {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errs.NewBadRequestError(message)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseUUIDList validates identifier strings as UUIDs, preserving order.
func parseUUIDList(values []string, message string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, err := uuid.Parse(v); err != nil {
			return nil, errs.NewBadRequestError(message)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseEnum parses a bounded small-int field, falling back to def when the
// field is unset.
func parseEnum(p *string, def, max int16, message string) (int16, error) {
	if p == nil {
		return def, nil
	}
	n, err := strconv.ParseInt(*p, 10, 16)
	if err != nil || n < 0 || n > int64(max) {
		return 0, errs.NewBadRequestError(message)
	}
	return int16(n), nil
}

// parseOptionalEnum is parseEnum for nullable columns: unset stays nil.
func parseOptionalEnum(p *string, max int16, message string) (*int16, error) {
	if p == nil {
		return nil, nil
	}
	n, err := parseEnum(p, 0, max, message)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// optionalText maps a present-but-empty string to SQL NULL, keeping the
// distinction between "clear this field" and "leave unchanged" (nil input
// never reaches this helper).
func optionalText(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
