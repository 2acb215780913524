package notify

import (
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Dispatcher pushes outbound messages through a bounded worker pool so
// request handlers never wait on a mail relay.
type Dispatcher struct {
	pool   *ants.Pool
	email  EmailSender
	sms    SMSSender
	logger *zap.Logger
}

func NewDispatcher(workers int, email EmailSender, sms SMSSender, logger *zap.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{pool: pool, email: email, sms: sms, logger: logger}, nil
}

func (d *Dispatcher) EnqueueEmail(to, subject, body string) {
	err := d.pool.Submit(func() {
		if err := d.email.SendEmail(to, subject, body); err != nil {
			d.logger.Error("email delivery failed", zap.String("to", to), zap.Error(err))
		}
	})
	if err != nil {
		d.logger.Error("email enqueue failed", zap.String("to", to), zap.Error(err))
	}
}

func (d *Dispatcher) EnqueueSMS(to, body string) {
	err := d.pool.Submit(func() {
		if err := d.sms.SendSMS(to, body); err != nil {
			d.logger.Error("sms delivery failed", zap.String("to", to), zap.Error(err))
		}
	})
	if err != nil {
		d.logger.Error("sms enqueue failed", zap.String("to", to), zap.Error(err))
	}
}

// Close releases the worker pool. Pending tasks are dropped.
func (d *Dispatcher) Close() {
	d.pool.Release()
}
