package service

import (
	"context"
	"strings"

	"postboard/internal/forms"
	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// MsgBadCredentials is the non-field error shown for a failed login.
const MsgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// SignupForm is the submitted sign-up form.
type SignupForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm is the submitted login form.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type AccountService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost, mainly so tests stay fast.
func (s *AccountService) WithBcryptCost(cost int) *AccountService {
	s.bcryptCost = cost
	return s
}

// Signup validates the form and creates the user.
func (s *AccountService) Signup(ctx context.Context, form SignupForm) (*models.User, forms.FieldErrors, error) {
	username := strings.TrimSpace(form.Username)
	email := strings.ToLower(strings.TrimSpace(form.Email))

	errs := forms.FieldErrors{}
	if username == "" {
		errs.Add("username", forms.MsgRequired)
	} else if err := validation.ValidateUsername(username); err != nil {
		errs.Add("username", err.Error())
	}
	if email == "" {
		errs.Add("email", forms.MsgRequired)
	} else if err := validation.ValidateEmail(email); err != nil {
		errs.Add("email", err.Error())
	}
	if form.Password == "" {
		errs.Add("password", forms.MsgRequired)
	} else if err := validation.ValidatePassword(form.Password); err != nil {
		errs.Add("password", err.Error())
	}
	if errs.Any() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{Username: username, Email: email, Password: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.IsConflict(err) {
			errs.Add("", "A user with that username or email already exists.")
			return nil, errs, nil
		}
		return nil, nil, err
	}
	return user, nil, nil
}

// Login checks the credentials. A wrong username and a wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, form LoginForm) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(form.Username))
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthorizedError(MsgBadCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return nil, models.NewUnauthorizedError(MsgBadCredentials)
	}
	return user, nil
}
