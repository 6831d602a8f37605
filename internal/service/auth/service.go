package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplehq/hrms-backend-go/internal/domain/activity"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/jwt"
	activitysvc "github.com/peoplehq/hrms-backend-go/internal/service/activity"
)

type TokenPair struct {
	AccessToken      string `json:"access_token"`
	AccessExpiresAt  int64  `json:"access_expires_at"`
	RefreshToken     string `json:"-"`
	RefreshExpiresAt int64  `json:"-"`
}

type Service struct {
	user.UserRepository
	jwtService jwt.Service
	recorder   *activitysvc.Recorder
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service, recorder *activitysvc.Recorder) *Service {
	return &Service{
		UserRepository: userRepo,
		jwtService:     jwtService,
		recorder:       recorder,
	}
}

func (s *Service) Register(ctx context.Context, req user.RegisterRequest, actorID string) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	u := user.User{
		EmployeeCode: req.EmployeeCode,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Department:   req.Department,
		Designation:  req.Designation,
		BaseSalary:   req.BaseSalary,
	}
	if req.JoiningDate != nil {
		d, err := time.Parse("2006-01-02", *req.JoiningDate)
		if err != nil {
			return user.User{}, fmt.Errorf("failed to parse joining date: %w", err)
		}
		u.JoiningDate = &d
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionUserRegistered,
		EntityType: "user",
		EntityID:   created.ID,
		Details:    map[string]any{"employee_code": created.EmployeeCode},
	})

	return created, nil
}

func (s *Service) Login(ctx context.Context, req user.LoginRequest) (user.User, TokenPair, error) {
	u, err := s.GetByEmail(ctx, req.Email)
	if err != nil {
		return user.User{}, TokenPair{}, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return user.User{}, TokenPair{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return user.User{}, TokenPair{}, user.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh validates a refresh token and issues a fresh pair. The old
// refresh token is revoked so it cannot be replayed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (user.User, TokenPair, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return user.User{}, TokenPair{}, user.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return user.User{}, TokenPair{}, user.ErrInvalidToken
	}
	if err := jwxjwt.Validate(token); err != nil {
		return user.User{}, TokenPair{}, user.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return user.User{}, TokenPair{}, user.ErrInvalidToken
	}
	if claims["type"] != "refresh" {
		return user.User{}, TokenPair{}, user.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return user.User{}, TokenPair{}, user.ErrInvalidToken
	}

	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	if !u.IsActive {
		return user.User{}, TokenPair{}, user.ErrUserInactive
	}

	s.jwtService.RevokeToken(refreshToken)

	pair, err := s.issueTokens(u)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *Service) Logout(refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}

func (s *Service) RefreshCookie(pair TokenPair) *http.Cookie {
	return s.jwtService.RefreshTokenCookie(pair.RefreshToken, pair.RefreshExpiresAt)
}

func (s *Service) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest, actorID string) (user.User, error) {
	u, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.Designation != nil {
		u.Designation = req.Designation
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.BaseSalary != nil {
		u.BaseSalary = req.BaseSalary
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     activity.ActionUserUpdated,
		EntityType: "user",
		EntityID:   u.ID,
	})

	return u, nil
}

func (s *Service) issueTokens(u user.User) (TokenPair, error) {
	access, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeCode, u.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
