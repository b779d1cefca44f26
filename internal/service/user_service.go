package service

import (
	"context"
	"strings"

	"ladle/internal/models"
	"ladle/internal/repository"
	"ladle/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const maxNameLen = 150

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the signup payload, hashes the password and creates the
// user. Duplicate email or username is reported as a validation error so the
// handler can answer with a conflict status.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.FirstName) > maxNameLen || len(in.LastName) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 150 characters)")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email is already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError("Email or username is already taken")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the user. The same
// unauthorized answer covers a missing account and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint, viewerID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int, viewerID uint) ([]*models.User, int64, error) {
	users, err := s.userRepo.List(ctx, limit, offset, viewerID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}
