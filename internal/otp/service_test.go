package otp

import (
	"testing"
	"time"

	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

type capturedDelivery struct {
	email   string
	phone   string
	code    string
	purpose string
	count   int
}

func (d *capturedDelivery) DeliverCode(email, phone, code, purpose string) {
	d.email, d.phone, d.code, d.purpose = email, phone, code, purpose
	d.count++
}

func newTestService(seed []user.User) (*Service, *capturedDelivery) {
	users := user.NewService(user.NewInMemoryRepository(seed))
	delivery := &capturedDelivery{}
	return NewService(NewInMemoryRepository(), users, delivery), delivery
}

func TestSendAndVerifyRoundTrip(t *testing.T) {
	svc, delivery := newTestService(nil)

	if err := svc.Send("jane@example.com", "12345", PurposeVerification); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delivery.count != 1 || len(delivery.code) != 6 {
		t.Fatalf("expected one six digit code delivered, got %+v", delivery)
	}

	if err := svc.Verify("jane@example.com", delivery.code, PurposeVerification); err != nil {
		t.Fatalf("expected the delivered code to verify, got %v", err)
	}

	// codes are single use
	if err := svc.Verify("jane@example.com", delivery.code, PurposeVerification); err != ErrInvalidCode {
		t.Fatalf("expected ErrInvalidCode on reuse, got %v", err)
	}
}

func TestVerifyWrongCodeCountsAttempts(t *testing.T) {
	svc, delivery := newTestService(nil)
	svc.Send("jane@example.com", "", PurposeVerification)

	for i := 0; i < MaxAttempts-1; i++ {
		if err := svc.Verify("jane@example.com", "000000", PurposeVerification); err != ErrInvalidCode {
			t.Fatalf("attempt %d: expected ErrInvalidCode, got %v", i, err)
		}
	}
	if err := svc.Verify("jane@example.com", "000000", PurposeVerification); err != ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// the real code no longer works after lockout
	if err := svc.Verify("jane@example.com", delivery.code, PurposeVerification); err == nil {
		t.Fatal("expected the code to be invalidated after lockout")
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, delivery := newTestService(nil)
	svc.Send("jane@example.com", "", PurposeVerification)

	svc.now = func() time.Time { return time.Now().Add(TTL + time.Minute) }
	if err := svc.Verify("jane@example.com", delivery.code, PurposeVerification); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestSendLoginRequiresAccount(t *testing.T) {
	svc, _ := newTestService(nil)
	if err := svc.Send("ghost@example.com", "", PurposeLogin); err != user.ErrNotFound {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestSendRejectsUnknownPurpose(t *testing.T) {
	svc, _ := newTestService(nil)
	if err := svc.Send("jane@example.com", "", "teleport"); err != ErrInvalidPurpose {
		t.Fatalf("expected ErrInvalidPurpose, got %v", err)
	}
}

func TestVerifyAccountMarksUser(t *testing.T) {
	svc, delivery := newTestService([]user.User{{ID: 1, Name: "Jane", Email: "jane@example.com"}})

	svc.Send("jane@example.com", "", PurposeVerification)
	u, err := svc.VerifyAccount("jane@example.com", delivery.code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.Verified {
		t.Fatal("expected the account to be flagged verified")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	users := user.NewService(user.NewInMemoryRepository(nil))
	registered, err := users.Register(user.User{Name: "Jane", Email: "jane@example.com", Password: "oldpassword"})
	if err != nil {
		t.Fatal(err)
	}

	delivery := &capturedDelivery{}
	svc := NewService(NewInMemoryRepository(), users, delivery)

	if err := svc.Send(registered.Email, "", PurposeReset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ResetPassword(registered.Email, delivery.code, "brandnewpass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := users.Authenticate(registered.Email, "brandnewpass"); err != nil {
		t.Fatalf("new password should authenticate, got %v", err)
	}
	if _, err := users.Authenticate(registered.Email, "oldpassword"); err == nil {
		t.Fatal("old password should be rejected")
	}
}
