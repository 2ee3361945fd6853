package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/repository"
	"github.com/eternalzzx/blog-server/internal/sqlerr"
)

// Section statuses.
const (
	SectionStatusCancel      int16 = 0
	SectionStatusVisibleOnly int16 = 1
	SectionStatusActive      int16 = 2
)

const sectionCacheTTL = 10 * time.Minute

var sectionOrderColumns = map[string]struct{}{
	"id": {}, "name": {}, "nick": {}, "status": {}, "level": {}, "create_at": {},
}

var sectionQueryColumns = map[string]struct{}{
	"name": {}, "nick": {}, "description": {},
}

// SectionView is the client-facing shape of a section record.
type SectionView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nick        string    `json:"nick"`
	Description *string   `json:"description"`
	Moderators  []string  `json:"moderators"`
	Assistants  []string  `json:"assistants"`
	Status      int16     `json:"status"`
	Level       int32     `json:"level"`
	OnlyRoles   bool      `json:"only_roles"`
	Roles       []int64   `json:"roles"`
	OnlyGroups  bool      `json:"only_groups"`
	Groups      []int64   `json:"groups"`
	CreateAt    time.Time `json:"create_at"`
}

// SectionListData is the list payload: total matching count plus one page.
type SectionListData struct {
	Total    int64         `json:"total"`
	Sections []SectionView `json:"sections"`
}

type sectionService struct {
	repo  *repository.SectionRepository
	cache *redis.Client
	log   *zerolog.Logger
}

func sectionView(s *repository.Section) SectionView {
	view := SectionView{
		ID:          s.ID,
		Name:        s.Name,
		Nick:        s.Nick,
		Description: s.Description,
		Moderators:  s.ModeratorUUIDs,
		Assistants:  s.AssistantUUIDs,
		Status:      s.Status,
		Level:       s.Level,
		OnlyRoles:   s.OnlyRoles,
		Roles:       s.RoleIDs,
		OnlyGroups:  s.OnlyGroups,
		Groups:      s.GroupIDs,
		CreateAt:    s.CreateAt,
	}
	if view.Moderators == nil {
		view.Moderators = []string{}
	}
	if view.Assistants == nil {
		view.Assistants = []string{}
	}
	if view.Roles == nil {
		view.Roles = []int64{}
	}
	if view.Groups == nil {
		view.Groups = []int64{}
	}
	return view
}

// parseSectionID converts the path identifier; anything non-numeric is
// treated as a missing section rather than a parameter error, matching the
// not-found contract for get/update/delete.
func parseSectionID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, errs.NewNotFoundError("Section not found")
	}
	return n, nil
}

func (s *sectionService) List(ctx context.Context, p SectionListParams) (int, any, error) {
	lq, err := buildListQuery(listParams{
		page:       p.Page,
		pageSize:   p.PageSize,
		orderField: p.OrderField,
		order:      p.Order,
		query:      p.Query,
		queryField: p.QueryField,
	}, "create_at", sectionOrderColumns, sectionQueryColumns)
	if err != nil {
		return 0, nil, err
	}

	sections, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return 0, nil, sqlerr.Convert(err)
	}

	views := make([]SectionView, 0, len(sections))
	for i := range sections {
		views = append(views, sectionView(&sections[i]))
	}
	return http.StatusOK, SectionListData{Total: total, Sections: views}, nil
}

func (s *sectionService) Get(ctx context.Context, id string) (int, any, error) {
	sectionID, err := parseSectionID(id)
	if err != nil {
		return 0, nil, err
	}

	if view, ok := s.cacheGet(ctx, sectionID); ok {
		return http.StatusOK, view, nil
	}

	rec, err := s.repo.GetByID(ctx, sectionID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("Section not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	view := sectionView(rec)
	s.cacheSet(ctx, view)
	return http.StatusOK, view, nil
}

func (s *sectionService) Create(ctx context.Context, p SectionCreateParams) (int, any, error) {
	if p.Name == nil || *p.Name == "" {
		return 0, nil, errs.NewBadRequestError("Section name required")
	}

	rec := &repository.Section{
		Name:       *p.Name,
		Nick:       *p.Name,
		Status:     SectionStatusActive,
		OnlyRoles:  p.OnlyRoles,
		OnlyGroups: p.OnlyGroups,
	}

	if p.Nick != nil && *p.Nick != "" {
		rec.Nick = *p.Nick
	}
	if p.Description != nil {
		rec.Description = optionalText(*p.Description)
	}

	var err error
	if rec.ModeratorUUIDs, err = parseUUIDList(p.ModeratorUUIDs, "Invalid moderator UUID"); err != nil {
		return 0, nil, err
	}
	if rec.AssistantUUIDs, err = parseUUIDList(p.AssistantUUIDs, "Invalid assistant UUID"); err != nil {
		return 0, nil, err
	}
	if rec.Status, err = parseEnum(p.Status, SectionStatusActive, SectionStatusActive, "Invalid status"); err != nil {
		return 0, nil, err
	}
	if rec.Level, err = parseLevel(p.Level); err != nil {
		return 0, nil, err
	}
	if rec.RoleIDs, err = parseInt64List(p.RoleIDs, "Invalid role ID"); err != nil {
		return 0, nil, err
	}
	if rec.GroupIDs, err = parseInt64List(p.GroupIDs, "Invalid group ID"); err != nil {
		return 0, nil, err
	}

	if err = s.repo.Insert(ctx, rec); err != nil {
		return 0, nil, sqlerr.Convert(err)
	}

	s.log.Info().Int64("id", rec.ID).Str("name", rec.Name).Msg("section created")
	return http.StatusOK, sectionView(rec), nil
}

func (s *sectionService) Update(ctx context.Context, id string, p SectionUpdateParams) (int, any, error) {
	sectionID, err := parseSectionID(id)
	if err != nil {
		return 0, nil, err
	}

	rec, err := s.repo.GetByID(ctx, sectionID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("Section not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	if p.Nick != nil && *p.Nick != "" {
		rec.Nick = *p.Nick
	}
	if p.Description != nil {
		rec.Description = optionalText(*p.Description)
	}
	if p.ModeratorUUIDs != nil {
		if rec.ModeratorUUIDs, err = parseUUIDList(p.ModeratorUUIDs, "Invalid moderator UUID"); err != nil {
			return 0, nil, err
		}
	}
	if p.AssistantUUIDs != nil {
		if rec.AssistantUUIDs, err = parseUUIDList(p.AssistantUUIDs, "Invalid assistant UUID"); err != nil {
			return 0, nil, err
		}
	}
	if p.Status != nil {
		if rec.Status, err = parseEnum(p.Status, SectionStatusActive, SectionStatusActive, "Invalid status"); err != nil {
			return 0, nil, err
		}
	}
	if p.Level != nil {
		if rec.Level, err = parseLevel(p.Level); err != nil {
			return 0, nil, err
		}
	}
	rec.OnlyRoles = p.OnlyRoles
	rec.OnlyGroups = p.OnlyGroups
	if p.RoleIDs != nil {
		if rec.RoleIDs, err = parseInt64List(p.RoleIDs, "Invalid role ID"); err != nil {
			return 0, nil, err
		}
	}
	if p.GroupIDs != nil {
		if rec.GroupIDs, err = parseInt64List(p.GroupIDs, "Invalid group ID"); err != nil {
			return 0, nil, err
		}
	}

	if err = s.repo.Update(ctx, rec); err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("Section not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	s.cacheDel(ctx, rec.ID)
	return http.StatusOK, sectionView(rec), nil
}

func (s *sectionService) Delete(ctx context.Context, p DeleteParams) (DeleteResult, error) {
	sectionID, err := parseSectionID(p.DeleteID)
	if err != nil {
		return DeleteResult{}, err
	}

	rec, err := s.repo.GetByID(ctx, sectionID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return DeleteResult{}, errs.NewNotFoundError("Section not found")
		}
		return DeleteResult{}, sqlerr.Convert(err)
	}

	// Without force the section is cancelled; force removes the row.
	if p.Force {
		err = s.repo.Delete(ctx, rec.ID)
	} else {
		rec.Status = SectionStatusCancel
		err = s.repo.Update(ctx, rec)
	}
	if err != nil {
		return DeleteResult{}, sqlerr.Convert(err)
	}

	s.cacheDel(ctx, rec.ID)
	return DeleteResult{Status: StatusSuccess, ID: p.DeleteID, Name: rec.Name}, nil
}

func parseLevel(p *string) (int32, error) {
	if p == nil {
		return 0, nil
	}
	n, err := strconv.ParseInt(*p, 10, 32)
	if err != nil || n < 0 {
		return 0, errs.NewBadRequestError("Invalid level")
	}
	return int32(n), nil
}

func sectionCacheKey(id int64) string {
	return "section:" + strconv.FormatInt(id, 10)
}

func (s *sectionService) cacheGet(ctx context.Context, id int64) (SectionView, bool) {
	var view SectionView
	raw, err := s.cache.Get(ctx, sectionCacheKey(id)).Bytes()
	if err != nil {
		return view, false
	}
	if err := json.Unmarshal(raw, &view); err != nil {
		return view, false
	}
	return view, true
}

func (s *sectionService) cacheSet(ctx context.Context, view SectionView) {
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, sectionCacheKey(view.ID), raw, sectionCacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Msg("section cache set failed")
	}
}

func (s *sectionService) cacheDel(ctx context.Context, id int64) {
	if err := s.cache.Del(ctx, sectionCacheKey(id)).Err(); err != nil {
		s.log.Debug().Err(err).Msg("section cache invalidation failed")
	}
}
