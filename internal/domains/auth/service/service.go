package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	gRepo "hotel/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageUserExists         = "User already exists"
	MessageUserNotFound       = "User not found"
	MessageInvalidToken       = "Invalid token"
	MessageTokenRequired      = "Access token required"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Profile(ctx context.Context, principal gModel.Principal) (userDto.UserResponse, error)
	VerifySession(ctx context.Context, token string) (gModel.Principal, error)
}

type serviceImpl struct {
	// registerMu makes the email check and the insert one step.
	registerMu sync.Mutex
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
	clock      clock.Clock
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT, clock clock.Clock) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
		clock:      clock,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword, gModel.NewMetadata(s.clock.Now()))

	if err = s.insertUnique(ctx, user); err != nil {
		return res, err
	}

	shared.InvalidateCaches(ctx, s.cache, userModel.CacheListUser)

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromModel(token, user)

	return res, nil
}

func (s *serviceImpl) insertUnique(ctx context.Context, user userModel.User) error {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	exists, err := s.userRepo.Exist(ctx, shared.FilterByField(userModel.FieldEmail, user.Email, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict(MessageUserExists) // nolint:wrapcheck
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if gRepo.IsDuplicate(err) {
			return failure.Conflict(MessageUserExists) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByField(userModel.FieldEmail, req.Email, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized(MessageInvalidCredentials) // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("userID", user.ID).Msg("failed to verify password")
		}

		return res, failure.Unauthorized(MessageInvalidCredentials) // nolint:wrapcheck
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromModel(token, user)

	return res, nil
}

func (s *serviceImpl) Profile(ctx context.Context, principal gModel.Principal) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Profile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByID(principal.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(MessageUserNotFound) // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

// VerifySession resolves a bearer token into the caller's identity. The token is trusted on its
// signature alone; a deleted user keeps access until the token expires.
func (s *serviceImpl) VerifySession(ctx context.Context, token string) (principal gModel.Principal, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.VerifySession")
	defer scope.End()

	if token == constant.Empty {
		return principal, failure.Unauthorized(MessageTokenRequired) // nolint:wrapcheck
	}

	claims, err := s.jwtService.Validate(token)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session token")

		return principal, failure.Unauthorized(MessageInvalidToken) // nolint:wrapcheck
	}

	return gModel.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
