package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/pkg/db/pagination"
)

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrNotFound         = errors.New("not_found")
)

type CreateUserRequest struct {
	FullName string
	Phone    string
}

type ListUsersRequest struct {
	PageToken string
	PageSize  int32
	FeeStatus FeeStatus
}

type UserPage struct {
	Users    []*User              `json:"users"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	GetByID(ctx context.Context, id snowflake.ID) (User, error)
	List(ctx context.Context, req ListUsersRequest) (UserPage, error)
	SetFeeStatus(ctx context.Context, id snowflake.ID, status FeeStatus) error
}
