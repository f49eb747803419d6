// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeIdentifier lowercases and trims a username/email so uniqueness
// and lookups are case-insensitive.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := normalizeIdentifier(input.Username)
	email := normalizeIdentifier(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	// 1. Validate that no field is blank after trimming.
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("all registration fields are required")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", username))

	// 2. Hash the password outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	newUser := &entity.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashedPassword,
	}

	// 3. Check uniqueness and insert in one transaction so concurrent
	// registrations of the same identifier cannot both pass the check.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, existsErr := userRepo.ExistsByUsernameOrEmail(ctx, username, email)
		if existsErr != nil {
			return errors.Wrap(existsErr, "failed to check user existence")
		}
		if exists {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already registered")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", username), slog.Any("error", err))

		return nil, err
	}

	// 4. Re-fetch by id to confirm durability.
	createdUser, err := srv.userRepo.FindByID(ctx, newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Post-create read failed", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("user not readable after create")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", createdUser.ID))

	return &usecase.RegisterOutput{User: createdUser.Sanitized()}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := normalizeIdentifier(input.Identifier)

	srv.log(ctx).Debug("Starting user login", slog.String("identifier", identifier))

	// 1. Look up the account by username or email.
	loggedInUser, err := srv.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, user not found", slog.String("identifier", identifier))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// 2. Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, loggedInUser.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.Any("userID", loggedInUser.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	// 3. Generate a new token pair.
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(
		loggedInUser.ID, loggedInUser.Username, loggedInUser.Email, loggedInUser.FullName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens during login")
	}

	// 4. Store the refresh-token hash, replacing any previous session.
	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, loggedInUser.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		srv.log(ctx).Error("Failed to persist session", slog.Any("userID", loggedInUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist refresh token during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         loggedInUser.Sanitized(),
	}, nil
}

// RefreshToken validates the presented refresh token against the stored
// session hash and rotates the whole token pair.
func (srv *userService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	// 1. Verify signature, expiry and token type.
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh failed, invalid token", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("invalid refresh token")
	}

	// 2. Compare against the stored session hash and rotate in one
	// transaction so a replayed token cannot race the rotation.
	var newAccessToken, newRefreshToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		sessionUser, findErr := userRepo.FindByID(ctx, claims.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid.WrapMessage("session user no longer exists")
			}

			return errors.Wrap(findErr, "failed to find user during refresh")
		}

		// A stale or rotated-out token hashes to something other than the
		// stored value, so replays after rotation are rejected here.
		if sessionUser.RefreshTokenHash == "" ||
			sessionUser.RefreshTokenHash != srv.tokenService.HashToken(refreshToken) {
			srv.log(ctx).Warn("Refresh failed, token does not match stored session", slog.Any("userID", sessionUser.ID))

			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token does not match active session")
		}

		var genErr error
		newAccessToken, newRefreshToken, genErr = srv.tokenService.GenerateTokens(
			sessionUser.ID, sessionUser.Username, sessionUser.Email, sessionUser.FullName)
		if genErr != nil {
			return errors.Wrap(genErr, "failed to generate tokens during refresh")
		}

		if updateErr := userRepo.UpdateRefreshTokenHash(ctx, sessionUser.ID, srv.tokenService.HashToken(newRefreshToken)); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist rotated refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", claims.UserID))

	return &usecase.RefreshOutput{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout clears the user's active session. Logging out twice is not an error.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("logout failed")
		}

		return errors.Wrap(err, "failed to clear session during logout")
	}

	srv.log(ctx).Debug("User logged out", slog.Any("userID", userID))

	return nil
}
