package service

// Parameter bags passed from handlers to services. A nil pointer is the
// unset sentinel: the caller omitted the field, as opposed to supplying an
// empty value. Bags are built per request, passed once, then discarded.

// UserPrivacyFields is the fixed set of per-attribute privacy override
// names. Extraction probes exactly these keys and services accept no others.
var UserPrivacyFields = []string{
	"gender_privacy",
	"email_privacy",
	"phone_privacy",
	"qq_privacy",
	"address_privacy",
}

// UserListParams carries the optional list query parameters as received,
// unparsed; interpretation (paging defaults, order whitelist) belongs here
// in the service layer.
type UserListParams struct {
	Page       *string
	PageSize   *string
	OrderField *string
	Order      *string
	Query      *string
	QueryField *string
}

// UserCreateParams carries the create fields. GroupIDs is empty (not nil)
// when the field was absent. Privacy holds only the override keys present
// in the request.
type UserCreateParams struct {
	Username *string
	Password *string
	Nick     *string
	RoleID   *string
	GroupIDs []string
	Gender   *string
	Email    *string
	Phone    *string
	QQ       *string
	Address  *string
	Status   *string
	Remark   *string
	Privacy  map[string]string
}

// UserUpdateParams carries the update fields. GroupIDs nil means "leave
// unchanged"; an empty non-nil slice clears the list.
type UserUpdateParams struct {
	Username    *string
	OldPassword *string
	NewPassword *string
	Nick        *string
	RoleID      *string
	GroupIDs    []string
	Gender      *string
	Email       *string
	Phone       *string
	QQ          *string
	Address     *string
	Remark      *string
	Privacy     map[string]string
}

// SectionListParams mirrors UserListParams for the sections resource.
type SectionListParams struct {
	Page       *string
	PageSize   *string
	OrderField *string
	Order      *string
	Query      *string
	QueryField *string
}

// SectionCreateParams carries the section create fields. List fields are
// empty (not nil) when absent; the boolean flags were already normalized by
// extraction.
type SectionCreateParams struct {
	Name           *string
	Nick           *string
	Description    *string
	ModeratorUUIDs []string
	AssistantUUIDs []string
	Status         *string
	Level          *string
	OnlyRoles      bool
	RoleIDs        []string
	OnlyGroups     bool
	GroupIDs       []string
}

// SectionUpdateParams carries the section update fields. List fields nil
// means "leave unchanged".
type SectionUpdateParams struct {
	Nick           *string
	Description    *string
	ModeratorUUIDs []string
	AssistantUUIDs []string
	Status         *string
	Level          *string
	OnlyRoles      bool
	RoleIDs        []string
	OnlyGroups     bool
	GroupIDs       []string
}
