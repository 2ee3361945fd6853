package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/repository"
	"github.com/eternalzzx/blog-server/internal/sqlerr"
)

// User account statuses.
const (
	UserStatusCancel int16 = 0
	UserStatusActive int16 = 1
)

// Privacy scopes for profile attributes.
const (
	PrivacyPrivate   int16 = 0
	PrivacyProtected int16 = 1
	PrivacyPublic    int16 = 2
)

const userCacheTTL = 10 * time.Minute

var validate = validator.New()

var userOrderColumns = map[string]struct{}{
	"id": {}, "username": {}, "nick": {}, "role_id": {}, "status": {}, "create_at": {},
}

var userQueryColumns = map[string]struct{}{
	"username": {}, "nick": {}, "remark": {}, "email": {},
}

// UserView is the client-facing shape of a user record. The password hash
// never leaves the service layer.
type UserView struct {
	ID             int64     `json:"id"`
	UUID           string    `json:"uuid"`
	Username       string    `json:"username"`
	Nick           string    `json:"nick"`
	Role           int64     `json:"role"`
	Groups         []int64   `json:"groups"`
	Gender         *int16    `json:"gender"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	QQ             *string   `json:"qq"`
	Address        *string   `json:"address"`
	Status         int16     `json:"status"`
	Remark         *string   `json:"remark"`
	GenderPrivacy  int16     `json:"gender_privacy"`
	EmailPrivacy   int16     `json:"email_privacy"`
	PhonePrivacy   int16     `json:"phone_privacy"`
	QQPrivacy      int16     `json:"qq_privacy"`
	AddressPrivacy int16     `json:"address_privacy"`
	CreateAt       time.Time `json:"create_at"`
}

// UserListData is the list payload: total matching count plus one page.
type UserListData struct {
	Total int64      `json:"total"`
	Users []UserView `json:"users"`
}

type userService struct {
	repo  *repository.UserRepository
	cache *redis.Client
	log   *zerolog.Logger
}

func userView(u *repository.User) UserView {
	groups := u.GroupIDs
	if groups == nil {
		groups = []int64{}
	}
	return UserView{
		ID:             u.ID,
		UUID:           u.UUID,
		Username:       u.Username,
		Nick:           u.Nick,
		Role:           u.RoleID,
		Groups:         groups,
		Gender:         u.Gender,
		Email:          u.Email,
		Phone:          u.Phone,
		QQ:             u.QQ,
		Address:        u.Address,
		Status:         u.Status,
		Remark:         u.Remark,
		GenderPrivacy:  u.GenderPrivacy,
		EmailPrivacy:   u.EmailPrivacy,
		PhonePrivacy:   u.PhonePrivacy,
		QQPrivacy:      u.QQPrivacy,
		AddressPrivacy: u.AddressPrivacy,
		CreateAt:       u.CreateAt,
	}
}

func (s *userService) List(ctx context.Context, p UserListParams) (int, any, error) {
	lq, err := buildListQuery(listParams{
		page:       p.Page,
		pageSize:   p.PageSize,
		orderField: p.OrderField,
		order:      p.Order,
		query:      p.Query,
		queryField: p.QueryField,
	}, "create_at", userOrderColumns, userQueryColumns)
	if err != nil {
		return 0, nil, err
	}

	users, total, err := s.repo.List(ctx, lq)
	if err != nil {
		return 0, nil, sqlerr.Convert(err)
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return http.StatusOK, UserListData{Total: total, Users: views}, nil
}

func (s *userService) Get(ctx context.Context, userUUID string) (int, any, error) {
	if userUUID == "" {
		return 0, nil, errs.NewNotFoundError("User not found")
	}

	if view, ok := s.cacheGet(ctx, userUUID); ok {
		return http.StatusOK, view, nil
	}

	u, err := s.repo.GetByUUID(ctx, userUUID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("User not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	view := userView(u)
	s.cacheSet(ctx, view)
	return http.StatusOK, view, nil
}

func (s *userService) Create(ctx context.Context, p UserCreateParams) (int, any, error) {
	if p.Username == nil || *p.Username == "" || p.Password == nil || *p.Password == "" {
		return 0, nil, errs.NewBadRequestError("Username and password required")
	}

	u := &repository.User{
		UUID:           uuid.NewSHA1(uuid.NameSpaceDNS, []byte(*p.Username)).String(),
		Username:       *p.Username,
		Nick:           *p.Username,
		RoleID:         2,
		GroupIDs:       []int64{},
		Status:         UserStatusActive,
		GenderPrivacy:  PrivacyPublic,
		EmailPrivacy:   PrivacyPrivate,
		PhonePrivacy:   PrivacyPrivate,
		QQPrivacy:      PrivacyPrivate,
		AddressPrivacy: PrivacyPrivate,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, nil, errs.NewInternalServerError()
	}
	u.Password = string(hash)

	if p.Nick != nil && *p.Nick != "" {
		u.Nick = *p.Nick
	}
	if p.RoleID != nil {
		roleID, err := strconv.ParseInt(*p.RoleID, 10, 64)
		if err != nil {
			return 0, nil, errs.NewBadRequestError("Invalid role ID")
		}
		u.RoleID = roleID
	}
	if u.GroupIDs, err = parseInt64List(p.GroupIDs, "Invalid group ID"); err != nil {
		return 0, nil, err
	}
	if u.Gender, err = parseOptionalEnum(p.Gender, 1, "Invalid gender"); err != nil {
		return 0, nil, err
	}
	if u.Status, err = parseEnum(p.Status, UserStatusActive, UserStatusActive, "Invalid status"); err != nil {
		return 0, nil, err
	}
	if err = s.applyContact(u, p.Email, p.Phone, p.QQ, p.Address, p.Remark); err != nil {
		return 0, nil, err
	}
	if err = applyPrivacy(u, p.Privacy); err != nil {
		return 0, nil, err
	}

	if err = s.repo.Insert(ctx, u); err != nil {
		return 0, nil, sqlerr.Convert(err)
	}

	s.log.Info().Str("uuid", u.UUID).Str("username", u.Username).Msg("user created")
	return http.StatusOK, userView(u), nil
}

func (s *userService) Update(ctx context.Context, userUUID string, p UserUpdateParams) (int, any, error) {
	if userUUID == "" {
		return 0, nil, errs.NewNotFoundError("User not found")
	}

	u, err := s.repo.GetByUUID(ctx, userUUID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("User not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	if p.Username != nil && *p.Username != "" {
		u.Username = *p.Username
	}
	if p.NewPassword != nil {
		if p.OldPassword == nil ||
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(*p.OldPassword)) != nil {
			return 0, nil, errs.NewForbiddenError("Password error")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return 0, nil, errs.NewInternalServerError()
		}
		u.Password = string(hash)
	}
	if p.Nick != nil && *p.Nick != "" {
		u.Nick = *p.Nick
	}
	if p.RoleID != nil {
		roleID, err := strconv.ParseInt(*p.RoleID, 10, 64)
		if err != nil {
			return 0, nil, errs.NewBadRequestError("Invalid role ID")
		}
		u.RoleID = roleID
	}
	if p.GroupIDs != nil {
		if u.GroupIDs, err = parseInt64List(p.GroupIDs, "Invalid group ID"); err != nil {
			return 0, nil, err
		}
	}
	if p.Gender != nil {
		if u.Gender, err = parseOptionalEnum(p.Gender, 1, "Invalid gender"); err != nil {
			return 0, nil, err
		}
	}
	if err = s.applyContact(u, p.Email, p.Phone, p.QQ, p.Address, p.Remark); err != nil {
		return 0, nil, err
	}
	if err = applyPrivacy(u, p.Privacy); err != nil {
		return 0, nil, err
	}

	if err = s.repo.Update(ctx, u); err != nil {
		if sqlerr.IsNotFound(err) {
			return 0, nil, errs.NewNotFoundError("User not found")
		}
		return 0, nil, sqlerr.Convert(err)
	}

	s.cacheDel(ctx, u.UUID)
	return http.StatusOK, userView(u), nil
}

func (s *userService) Delete(ctx context.Context, p DeleteParams) (DeleteResult, error) {
	u, err := s.repo.GetByUUID(ctx, p.DeleteID)
	if err != nil {
		if sqlerr.IsNotFound(err) {
			return DeleteResult{}, errs.NewNotFoundError("User not found")
		}
		return DeleteResult{}, sqlerr.Convert(err)
	}

	// Without force the account is cancelled; force removes the row.
	if p.Force {
		err = s.repo.Delete(ctx, u.UUID)
	} else {
		u.Status = UserStatusCancel
		err = s.repo.Update(ctx, u)
	}
	if err != nil {
		return DeleteResult{}, sqlerr.Convert(err)
	}

	s.cacheDel(ctx, u.UUID)
	return DeleteResult{Status: StatusSuccess, ID: u.UUID, Name: u.Nick}, nil
}

// applyContact sets the nullable contact fields. A present-but-empty value
// clears the column; nil leaves it alone.
func (s *userService) applyContact(u *repository.User, email, phone, qq, address, remark *string) error {
	if email != nil {
		if *email != "" {
			if err := validate.Var(*email, "email"); err != nil {
				return errs.NewBadRequestError("Invalid email format")
			}
		}
		u.Email = optionalText(*email)
	}
	if phone != nil {
		u.Phone = optionalText(*phone)
	}
	if qq != nil {
		u.QQ = optionalText(*qq)
	}
	if address != nil {
		u.Address = optionalText(*address)
	}
	if remark != nil {
		u.Remark = optionalText(*remark)
	}
	return nil
}

// applyPrivacy folds the privacy override bag onto the record. Extraction
// only probes the known field names, but the values still need bounds
// checks.
func applyPrivacy(u *repository.User, overrides map[string]string) error {
	for key, raw := range overrides {
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil || n < int64(PrivacyPrivate) || n > int64(PrivacyPublic) {
			return errs.NewBadRequestError("Invalid privacy setting")
		}
		value := int16(n)
		switch key {
		case "gender_privacy":
			u.GenderPrivacy = value
		case "email_privacy":
			u.EmailPrivacy = value
		case "phone_privacy":
			u.PhonePrivacy = value
		case "qq_privacy":
			u.QQPrivacy = value
		case "address_privacy":
			u.AddressPrivacy = value
		default:
			return errs.NewBadRequestError("Invalid privacy setting")
		}
	}
	return nil
}

func userCacheKey(userUUID string) string {
	return "user:" + userUUID
}

func (s *userService) cacheGet(ctx context.Context, userUUID string) (UserView, bool) {
	var view UserView
	raw, err := s.cache.Get(ctx, userCacheKey(userUUID)).Bytes()
	if err != nil {
		return view, false
	}
	if err := json.Unmarshal(raw, &view); err != nil {
		return view, false
	}
	return view, true
}

func (s *userService) cacheSet(ctx context.Context, view UserView) {
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, userCacheKey(view.UUID), raw, userCacheTTL).Err(); err != nil {
		s.log.Debug().Err(err).Msg("user cache set failed")
	}
}

func (s *userService) cacheDel(ctx context.Context, userUUID string) {
	if err := s.cache.Del(ctx, userCacheKey(userUUID)).Err(); err != nil {
		s.log.Debug().Err(err).Msg("user cache invalidation failed")
	}
}
