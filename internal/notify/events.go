package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JananiSriSK/varu-knit-store/internal/order"
	"github.com/JananiSriSK/varu-knit-store/internal/user"
)

// Users resolves the recipient of an order notification.
type Users interface {
	GetByID(id int) (user.User, error)
}

// OrderEvents turns order lifecycle events into in-app notifications and
// emails. It satisfies order.Events.
type OrderEvents struct {
	repo       Repository
	dispatcher *Dispatcher
	users      Users
	adminEmail string
	logger     *zap.Logger
}

func NewOrderEvents(repo Repository, dispatcher *Dispatcher, users Users, adminEmail string, logger *zap.Logger) *OrderEvents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderEvents{repo: repo, dispatcher: dispatcher, users: users, adminEmail: adminEmail, logger: logger}
}

func (e *OrderEvents) OrderCreated(ord order.Order) {
	title := fmt.Sprintf("Order #%d placed", ord.ID)
	body := fmt.Sprintf("Your order of %d item(s) totalling %.2f was received and is awaiting payment verification.", len(ord.Items), ord.TotalPrice)
	e.record(ord.UserID, TypeOrderPlaced, title, body)

	if u, err := e.users.GetByID(ord.UserID); err == nil {
		e.dispatcher.EnqueueEmail(u.Email, title, body)
	} else {
		e.logger.Warn("order confirmation email skipped", zap.Int("userId", ord.UserID), zap.Error(err))
	}
	if e.adminEmail != "" {
		e.dispatcher.EnqueueEmail(e.adminEmail,
			fmt.Sprintf("New order #%d awaiting verification", ord.ID),
			fmt.Sprintf("Order #%d for %.2f needs its payment screenshot verified.", ord.ID, ord.TotalPrice))
	}
}

func (e *OrderEvents) OrderStatusChanged(ord order.Order) {
	title := fmt.Sprintf("Order #%d is now %s", ord.ID, ord.Status)
	body := fmt.Sprintf("The status of your order #%d changed to %q.", ord.ID, ord.Status)
	e.record(ord.UserID, TypeOrderUpdated, title, body)

	if u, err := e.users.GetByID(ord.UserID); err == nil {
		e.dispatcher.EnqueueEmail(u.Email, title, body)
	} else {
		e.logger.Warn("status email skipped", zap.Int("userId", ord.UserID), zap.Error(err))
	}
}

func (e *OrderEvents) record(userID int, typ, title, body string) {
	_, err := e.repo.Create(Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		e.logger.Error("notification write failed", zap.Int("userId", userID), zap.Error(err))
	}
}

// OTPDelivery carries one-time codes over email and, when a phone number is
// on file, SMS. It satisfies otp.Delivery.
type OTPDelivery struct {
	dispatcher *Dispatcher
}

func NewOTPDelivery(dispatcher *Dispatcher) *OTPDelivery {
	return &OTPDelivery{dispatcher: dispatcher}
}

func (d *OTPDelivery) DeliverCode(email, phone, code, purpose string) {
	subject := "Your verification code"
	body := fmt.Sprintf("Your one-time code is %s. It expires in 10 minutes.", code)
	d.dispatcher.EnqueueEmail(email, subject, body)
	if phone != "" {
		d.dispatcher.EnqueueSMS(phone, body)
	}
}
