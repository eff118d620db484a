package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/repository"
	"github.com/templui/goalgraph/internal/validation"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// Create registers an owner identity. Goals reference owners by the returned id.
func (s *UserService) Create(ctx context.Context, email, firstName, lastName string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, invalid("email", err)
	}
	err = validation.ValidatePersonName(firstName)
	if err != nil {
		return nil, invalid("firstName", err)
	}
	err = validation.ValidatePersonName(lastName)
	if err != nil {
		return nil, invalid("lastName", err)
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		CreatedAt: time.Now(),
	}

	err = s.userRepository.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, storageErr("create user", err)
	}

	return user, nil
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: id, Err: err}
	}
	if err != nil {
		return nil, storageErr("load user", err)
	}
	return user, nil
}

func (s *UserService) ByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: email, Err: err}
	}
	if err != nil {
		return nil, storageErr("load user", err)
	}
	return user, nil
}

func (s *UserService) Users(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepository.Users(ctx)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}
