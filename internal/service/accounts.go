package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/moentix-be/internal/auth"
	"github.com/hongminglow/moentix-be/internal/logger"
	"github.com/hongminglow/moentix-be/internal/models"
	"github.com/hongminglow/moentix-be/internal/storage"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

const (
	msgRegisterFields    = "Todos los campos son obligatorios"
	msgInvalidEmail      = "Formato de email inválido"
	msgShortPassword     = "La contraseña debe tener al menos 6 caracteres"
	msgEmailTaken        = "El email ya está registrado"
	msgEmailTakenByOther = "El email ya está registrado por otro usuario"
	msgLoginFields       = "Email y contraseña son obligatorios"
	msgBadCredentials    = "Credenciales incorrectas"
	msgProfileFields     = "Nombre y email son obligatorios"
	msgPasswordFields    = "La contraseña actual y la nueva son obligatorias"
	msgShortNewPassword  = "La nueva contraseña debe tener al menos 6 caracteres"
	msgWrongPassword     = "La contraseña actual es incorrecta"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Generate(user models.User) (string, error)
}

// Accounts handles registration, login and profile changes.
type Accounts struct {
	store  storage.UserStore
	tokens TokenIssuer
}

// NewAccounts constructs the account service.
func NewAccounts(store storage.UserStore, tokens TokenIssuer) *Accounts {
	return &Accounts{store: store, tokens: tokens}
}

// Register creates a user with a zero balance and returns it with a token.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, "", validationError(msgRegisterFields)
	}
	if !validEmail(email) {
		return models.User{}, "", validationError(msgInvalidEmail)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return models.User{}, "", validationError(msgShortPassword)
	}

	if _, err := a.store.FindUserByEmail(ctx, email); err == nil {
		return models.User{}, "", validationError(msgEmailTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, "", internalError("find user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", internalError("hash password", err)
	}

	user, err := a.store.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Balance:      decimal.Zero,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, "", validationError(msgEmailTaken)
		}
		return models.User{}, "", internalError("create user", err)
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return models.User{}, "", internalError("generate token", err)
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(user.ID)).
		Str("email", logger.RedactEmail(email)).
		Msg("user registered")
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// emails and wrong passwords fail the same way.
func (a *Accounts) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, "", validationError(msgLoginFields)
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, "", authError(msgBadCredentials)
		}
		return models.User{}, "", internalError("find user", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		logger.Log.Warn().Str("email", logger.RedactEmail(email)).Msg("login rejected")
		return models.User{}, "", authError(msgBadCredentials)
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		return models.User{}, "", internalError("generate token", err)
	}
	return user, token, nil
}

// Profile returns the user with id.
func (a *Accounts) Profile(ctx context.Context, id int64) (models.User, error) {
	user, err := a.store.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, notFoundError(msgUserNotFound, err)
		}
		return models.User{}, internalError("find user", err)
	}
	return user, nil
}

// UpdateProfile changes the name and email of a user.
func (a *Accounts) UpdateProfile(ctx context.Context, id int64, name, email string) (models.User, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" {
		return models.User{}, validationError(msgProfileFields)
	}
	if !validEmail(email) {
		return models.User{}, validationError(msgInvalidEmail)
	}

	existing, err := a.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != id:
		return models.User{}, validationError(msgEmailTakenByOther)
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return models.User{}, internalError("find user", err)
	}

	user, err := a.store.UpdateUserProfile(ctx, id, name, email)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return models.User{}, notFoundError(msgUserNotFound, err)
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.User{}, validationError(msgEmailTakenByOther)
		}
		return models.User{}, internalError("update profile", err)
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (a *Accounts) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if current == "" || next == "" {
		return validationError(msgPasswordFields)
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return validationError(msgShortNewPassword)
	}

	user, err := a.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return authError(msgWrongPassword)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return internalError("hash password", err)
	}
	if err := a.store.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFoundError(msgUserNotFound, err)
		}
		return internalError("update password", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address with a dotted domain.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
