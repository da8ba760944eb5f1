package usecase

import (
	"context"
	"errors"

	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"
	"portfolio-api/internal/pkg/jwt"
	ucauth "portfolio-api/internal/usecase/auth"

	"go.uber.org/zap"
)

// Session is what register, signup and login hand back to the client.
type Session struct {
	Token   string
	User    user.User
	Profile *profile.Profile
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Signup(ctx context.Context, in ucauth.SignupInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Me(ctx context.Context, userID int64) (user.User, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	users    user.Repository
	profiles profile.Repository
	jwt      jwt.Service

	publicOwnerID int64
	log           *zap.Logger
}

func NewAuthUsecase(users user.Repository, profiles profile.Repository, jwtSvc jwt.Service, publicOwnerID int64, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{
		authSvc:       ucauth.NewService(users),
		users:         users,
		profiles:      profiles,
		jwt:           jwtSvc,
		publicOwnerID: publicOwnerID,
		log:           log,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.session(usr, nil)
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (Session, error) {
	usr, p, err := u.authSvc.Signup(ctx, in)
	if err != nil {
		return Session{}, err
	}
	u.log.Info("user signed up", zap.Int64("user_id", usr.ID), zap.Int64("profile_id", p.ID))
	return u.session(usr, &p)
}

// Login returns the caller's own profile, falling back to the public
// default profile for accounts that have none.
func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}

	p, err := u.loginProfile(ctx, usr.ID)
	if err != nil {
		return Session{}, errors.Join(ErrInternal, err)
	}
	return u.session(usr, p)
}

func (u *Auth) Me(ctx context.Context, userID int64) (user.User, error) {
	if userID <= 0 {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, errors.Join(ErrInternal, err)
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *Auth) loginProfile(ctx context.Context, userID int64) (*profile.Profile, error) {
	for _, owner := range []int64{userID, u.publicOwnerID} {
		if owner <= 0 {
			continue
		}
		p, err := u.profiles.GetByUserID(ctx, owner)
		if err == nil {
			return &p, nil
		}
		if !errors.Is(err, profile.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func (u *Auth) session(usr user.User, p *profile.Profile) (Session, error) {
	tok, err := u.jwt.GenerateToken(usr.ID)
	if err != nil {
		return Session{}, errors.Join(ErrInternal, err)
	}
	return Session{Token: tok, User: usr, Profile: p}, nil
}
