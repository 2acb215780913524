package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(email)
}

// UserName resolves a user's display name (used for review attribution).
func (s *Service) UserName(id int) (string, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u.Password = string(hashed)
	u.Role = RoleUser
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Update(id int, u User) (User, error) {
	return s.repo.Update(id, u)
}

// UpdatePassword verifies the current password before storing a new hash.
func (s *Service) UpdatePassword(id int, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(id, string(hashed), nowRFC3339())
}

// ResetPassword sets a new password without the old one. Callers are expected
// to have verified the user's identity through an OTP first.
func (s *Service) ResetPassword(email, newPassword string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.UpdatePassword(u.ID, string(hashed), nowRFC3339()); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) UpdateRole(id int, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(id, role, nowRFC3339())
}

func (s *Service) MarkVerified(email string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.SetVerified(u.ID, nowRFC3339()); err != nil {
		return User{}, err
	}
	u.Verified = true
	return u, nil
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
