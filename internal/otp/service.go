package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

var (
	ErrInvalidPurpose  = errors.New("invalid otp purpose")
	ErrExpired         = errors.New("otp has expired")
	ErrInvalidCode     = errors.New("invalid otp code")
	ErrTooManyAttempts = errors.New("too many failed attempts")
)

// Delivery carries generated codes to the customer. The notify package
// provides the production implementation over the background dispatcher.
type Delivery interface {
	DeliverCode(email, phone, code, purpose string)
}

// Users is the slice of the user service the OTP flows need.
type Users interface {
	GetByEmail(email string) (user.User, error)
	MarkVerified(email string) (user.User, error)
	ResetPassword(email, newPassword string) (user.User, error)
}

type Service struct {
	repo     Repository
	users    Users
	delivery Delivery
	now      func() time.Time
}

func NewService(repo Repository, users Users, delivery Delivery) *Service {
	return &Service{repo: repo, users: users, delivery: delivery, now: time.Now}
}

// Send issues a fresh six digit code for the given purpose and hands it to
// the delivery channel. Login and reset codes require a known account;
// verification codes may be requested before the account exists.
func (s *Service) Send(email, phone, purpose string) error {
	if !validPurpose(purpose) {
		return ErrInvalidPurpose
	}
	if purpose == PurposeLogin || purpose == PurposeReset {
		if _, err := s.users.GetByEmail(email); err != nil {
			return err
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	_, err = s.repo.Upsert(Code{
		Email:     email,
		Phone:     phone,
		CodeHash:  string(hash),
		Purpose:   purpose,
		ExpiresAt: now.Add(TTL).Format(time.RFC3339),
		CreatedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if s.delivery != nil {
		s.delivery.DeliverCode(email, phone, code, purpose)
	}
	return nil
}

// Verify checks a submitted code. A correct code is single use: the stored
// record is deleted on success.
func (s *Service) Verify(email, code, purpose string) error {
	if !validPurpose(purpose) {
		return ErrInvalidPurpose
	}

	stored, err := s.repo.Get(email, purpose)
	if err != nil {
		return ErrInvalidCode
	}

	expires, err := time.Parse(time.RFC3339, stored.ExpiresAt)
	if err != nil || s.now().UTC().After(expires) {
		s.repo.Delete(stored.ID)
		return ErrExpired
	}
	if stored.Attempts >= MaxAttempts {
		s.repo.Delete(stored.ID)
		return ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)) != nil {
		if attempts, err := s.repo.IncrementAttempts(stored.ID); err == nil && attempts >= MaxAttempts {
			s.repo.Delete(stored.ID)
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	return s.repo.Delete(stored.ID)
}

// VerifyAccount consumes a verification code and flags the account.
func (s *Service) VerifyAccount(email, code string) (user.User, error) {
	if err := s.Verify(email, code, PurposeVerification); err != nil {
		return user.User{}, err
	}
	return s.users.MarkVerified(email)
}

// Login consumes a login code and returns the account for token issuance.
func (s *Service) Login(email, code string) (user.User, error) {
	if err := s.Verify(email, code, PurposeLogin); err != nil {
		return user.User{}, err
	}
	return s.users.GetByEmail(email)
}

// ResetPassword consumes a reset code and stores the new password.
func (s *Service) ResetPassword(email, code, newPassword string) (user.User, error) {
	if err := s.Verify(email, code, PurposeReset); err != nil {
		return user.User{}, err
	}
	return s.users.ResetPassword(email, newPassword)
}

func validPurpose(purpose string) bool {
	for _, p := range Purposes {
		if purpose == p {
			return true
		}
	}
	return false
}

// generateCode draws six digits from crypto/rand, zero padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
