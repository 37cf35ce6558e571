package usecases

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"social-server/auth"
	"social-server/entities"
	"social-server/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 64
	minPasswordLength = 6
	maxPasswordBytes  = 72 // bcrypt input limit
	searchLimit       = 20
)

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EditProfileInput carries optional changes; nil fields are left alone.
type EditProfileInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type AuthUseCase struct {
	users    repositories.UserRepository
	tokens   *auth.JWTService
	names    *NameResolver
	hashCost int
	log      *zap.Logger
}

func NewAuthUseCase(users repositories.UserRepository, tokens *auth.JWTService, names *NameResolver, log *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		tokens:   tokens,
		names:    names,
		hashCost: bcrypt.DefaultCost,
		log:      orNopLogger(log),
	}
}

// WithHashCost overrides the bcrypt cost.
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if err := uc.ensureAvailable(ctx, "", username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, uc.hashCost)
	if err != nil {
		return nil, internalError(err)
	}
	user := &entities.User{Username: username, Email: email, PasswordHash: hash}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, uc.duplicateOr(ctx, err, email)
	}

	uc.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and returns a signed bearer token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, *entities.User, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, internalError(err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, internalError(err)
	}
	return token, user, nil
}

func (uc *AuthUseCase) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := uc.tokens.ParseToken(token)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Message: ErrInvalidToken.Message, Err: err}
	}
	return claims, nil
}

func (uc *AuthUseCase) EditProfile(ctx context.Context, userID string, in EditProfileInput) (*entities.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	username, email := "", ""
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		email = strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
	}

	if err := uc.ensureAvailable(ctx, user.ID, username, email); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, uc.hashCost)
		if err != nil {
			return nil, internalError(err)
		}
		user.PasswordHash = hash
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, uc.duplicateOr(ctx, err, email)
	}
	uc.names.Forget(ctx, user.ID)
	return user, nil
}

// DeleteAccount removes the user and everything they own or received.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, userID string) error {
	exists, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return internalError(err)
	}
	if !exists {
		return ErrUserNotFound
	}
	if err := uc.users.DeleteCascade(ctx, userID); err != nil {
		return internalError(err)
	}
	uc.names.Forget(ctx, userID)
	uc.log.Info("account deleted", zap.String("user_id", userID))
	return nil
}

func (uc *AuthUseCase) GetUsername(ctx context.Context, id string) (string, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return "", internalError(err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Username, nil
}

// SearchUsers matches usernames containing query, ignoring case.
func (uc *AuthUseCase) SearchUsers(ctx context.Context, query string) ([]UserSummary, error) {
	out := []UserSummary{}
	query = strings.TrimSpace(query)
	if query == "" {
		return out, nil
	}
	users, err := uc.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, internalError(err)
	}
	for _, u := range users {
		out = append(out, UserSummary{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

// ensureAvailable rejects a username or email held by anyone other than selfID.
func (uc *AuthUseCase) ensureAvailable(ctx context.Context, selfID, username, email string) error {
	if username != "" {
		existing, err := uc.users.GetByUsername(ctx, username)
		if err != nil {
			return internalError(err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrUsernameTaken
		}
	}
	if email != "" {
		existing, err := uc.users.GetByEmail(ctx, email)
		if err != nil {
			return internalError(err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrEmailTaken
		}
	}
	return nil
}

// duplicateOr maps a unique index violation that slipped past ensureAvailable.
func (uc *AuthUseCase) duplicateOr(ctx context.Context, err error, email string) error {
	if !errors.Is(err, repositories.ErrDuplicate) {
		return internalError(err)
	}
	if email != "" {
		if existing, lookupErr := uc.users.GetByEmail(ctx, email); lookupErr == nil && existing != nil {
			return ErrEmailTaken
		}
	}
	return ErrUsernameTaken
}

func validateUsername(username string) error {
	if username == "" {
		return validationError("Username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return validationError("Username must be at most 64 characters")
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return validationError("Username cannot contain spaces")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return validationError("Email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return validationError("Invalid email")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return validationError("Password is required")
	}
	if len(password) < minPasswordLength {
		return validationError("Password must be at least 6 characters")
	}
	if len(password) > maxPasswordBytes {
		return validationError("Password must be at most 72 bytes")
	}
	return nil
}
