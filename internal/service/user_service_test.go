package service

import (
	"context"
	"testing"

	"ladle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "kitchen42",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 7
		created = u
		return nil
	}

	svc := NewUserService(userRepo)
	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.EqualValues(t, 7, user.ID)
	require.NotNil(t, created)
	assert.NotEqual(t, "kitchen42", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("kitchen42")))
}

func TestRegister_NormalizesEmail(t *testing.T) {
	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}

	svc := NewUserService(userRepo)
	in := validRegisterInput()
	in.Email = "  Cook@Example.COM "
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", created.Email)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	for name, mutate := range map[string]func(*RegisterInput){
		"bad email":        func(in *RegisterInput) { in.Email = "not-an-email" },
		"bad username":     func(in *RegisterInput) { in.Username = "has spaces" },
		"short password":   func(in *RegisterInput) { in.Password = "ab1" },
		"letters only":     func(in *RegisterInput) { in.Password = "passwordpass" },
		"first name limit": func(in *RegisterInput) { in.FirstName = string(make([]byte, 151)) },
	} {
		t.Run(name, func(t *testing.T) {
			in := validRegisterInput()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assertValidationError(t, err)
		})
	}
}

func TestRegister_DuplicateEmailOrUsername(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1}, nil
	}
	svc := NewUserService(userRepo)
	_, err := svc.Register(context.Background(), validRegisterInput())
	assertValidationError(t, err)

	userRepo = noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
		return &models.User{ID: 1}, nil
	}
	svc = NewUserService(userRepo)
	_, err = svc.Register(context.Background(), validRegisterInput())
	assertValidationError(t, err)
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("kitchen42"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "cook@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, nil
	}

	svc := NewUserService(userRepo)

	user, err := svc.Authenticate(context.Background(), "Cook@Example.com", "kitchen42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)

	_, err = svc.Authenticate(context.Background(), "cook@example.com", "wrong")
	assertAppErrorCode(t, err, "UNAUTHORIZED")

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "kitchen42")
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestGetUser_Missing(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, _, _ uint) (*models.User, error) { return nil, nil }

	svc := NewUserService(userRepo)
	_, err := svc.GetUser(context.Background(), 9, 0)
	assertNotFoundError(t, err)
}
