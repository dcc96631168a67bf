package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/user/domain"
	"github.com/fitstack/clubledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:        s.genID.Generate(),
		FullName:  name,
		Phone:     strings.TrimSpace(req.Phone),
		FeeStatus: domain.FeeStatusUnpaid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.User, error) {
	if id == 0 {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

// List pages through members with an opaque cursor. Snowflake IDs are
// time-ordered, so keyset pagination on id follows creation order.
func (s *Service) List(ctx context.Context, req domain.ListUsersRequest) (domain.UserPage, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 250 {
		pageSize = 250
	}

	var afterID snowflake.ID
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.UserPage{}, domain.ErrInvalidPageToken
		}
		parsed, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return domain.UserPage{}, domain.ErrInvalidPageToken
		}
		afterID = parsed
	}

	users, err := s.repo.List(ctx, s.db, afterID, req.FeeStatus, int(pageSize)+1)
	if err != nil {
		return domain.UserPage{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(users, pageSize, func(u *domain.User) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: u.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})

	if len(users) > int(pageSize) {
		users = users[:pageSize]
	}
	return domain.UserPage{Users: users, PageInfo: pageInfo}, nil
}

func (s *Service) SetFeeStatus(ctx context.Context, id snowflake.ID, status domain.FeeStatus) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.UpdateFeeStatus(ctx, s.db, id, status, time.Now().UTC())
}
