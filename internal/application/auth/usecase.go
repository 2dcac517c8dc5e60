package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

// AuthUseCase casos de uso de autenticación: registro, login, listado de usuarios y siembra del vendedor.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cost     int
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, cost: bcrypt.DefaultCost, now: time.Now}
}

// UserID deriva el id estable del usuario a partir del email normalizado.
// Registrar dos veces el mismo email produce el mismo id.
func UserID(normalizedEmail string) string {
	sum := sha256.Sum256([]byte(normalizedEmail))
	return "user_" + hex.EncodeToString(sum[:])[:16]
}

// RegisterUser crea un estudiante: normaliza el email, hashea la credencial con bcrypt y persiste.
// El rol solicitado se ignora; la única cuenta de vendedor es la sembrada por EnsureVendor.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash de credencial: %w", err)
	}
	name := norm.NFC.String(strings.TrimSpace(in.Name))
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           UserID(email),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleStudent,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/credencial. Con Role = vendor solo acepta la cuenta de vendedor,
// aunque el email exista como estudiante; sin ese rol solo acepta estudiantes.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.UserResponse, error) {
	vendorLogin := in.Role == entity.RoleVendor
	fail := domain.ErrInvalidCredentials
	if vendorLogin {
		fail = domain.ErrInvalidVendorCredentials
	}

	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fail
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el tiempo de respuesta con el caso de usuario existente.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, fail
	}
	if vendorLogin != user.IsVendor() {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, fail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fail
	}
	return toUserResponse(user), nil
}

// ListUsers lista las cuentas registradas (solo vendedor).
func (uc *AuthUseCase) ListUsers(ctx context.Context, req dto.Requester) ([]*dto.UserResponse, error) {
	if req.Role != entity.RoleVendor {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// EnsureVendor siembra la cuenta del vendedor en la tabla users. Es idempotente:
// si ya existe y la credencial configurada cambió, rota el hash.
func (uc *AuthUseCase) EnsureVendor(ctx context.Context, acc dto.VendorAccount) (*dto.UserResponse, error) {
	email := entity.NormalizeEmail(acc.Email)
	if acc.ID == "" || email == "" || acc.Password == "" {
		return nil, fmt.Errorf("%w: cuenta de vendedor incompleta", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByID(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsVendor() || existing.Email != email {
			return nil, fmt.Errorf("%w: el id %s pertenece a otra cuenta", domain.ErrEmailAlreadyExists, acc.ID)
		}
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(acc.Password)) == nil {
			return toUserResponse(existing), nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("hash de credencial: %w", err)
		}
		if err := uc.userRepo.UpdatePasswordHash(ctx, existing.ID, string(hash)); err != nil {
			return nil, err
		}
		return toUserResponse(existing), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash de credencial: %w", err)
	}
	vendor := &entity.User{
		ID:           acc.ID,
		Name:         norm.NFC.String(strings.TrimSpace(acc.Name)),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleVendor,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("%w: %s ya está registrado como estudiante", err, email)
		}
		return nil, err
	}
	return toUserResponse(vendor), nil
}

// dummyHash hash bcrypt para comparar cuando el usuario no existe.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("jprint-placeholder"), bcrypt.DefaultCost)

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
