package service

import (
	"context"
	"time"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/repository"
	"stroymonitor/internal/utils"

	"github.com/sirupsen/logrus"
)

// VerificationCodeService issues and consumes the one-time 6-digit codes
// used as the second login factor and for password resets.
type VerificationCodeService struct {
	codes  repository.VerificationCodeRepository
	users  repository.UserRepository
	sender EmailSender
	clock  Clock
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewVerificationCodeService(
	codes repository.VerificationCodeRepository,
	users repository.UserRepository,
	sender EmailSender,
	clock Clock,
	ttl time.Duration,
	logger logrus.FieldLogger,
) *VerificationCodeService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VerificationCodeService{
		codes:  codes,
		users:  users,
		sender: sender,
		clock:  clock,
		ttl:    ttl,
		logger: logger,
	}
}

// Send issues a fresh code for email and delivers it. Unknown or inactive
// accounts get ErrUserNotFound before any code row is written. A delivery
// failure after the row is persisted surfaces as ErrCodeDelivery; the code
// value itself is never part of any response.
func (s *VerificationCodeService) Send(ctx context.Context, email string, purpose entity.CodePurpose) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return ErrUserNotFound
	}

	code, err := utils.GenerateNumericCode()
	if err != nil {
		return err
	}

	record := &entity.VerificationCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return err
	}

	if s.sender == nil {
		s.logger.WithField("email", email).Error("verification code sender not configured")
		return ErrCodeDelivery
	}
	if err := s.sender.SendVerificationCode(ctx, email, code, purpose); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("verification code delivery failed")
		return ErrCodeDelivery
	}
	return nil
}

// Verify atomically consumes the most recent matching code. It reports
// false for unknown, already-used and expired codes; under concurrent
// calls with the same code at most one caller sees true.
func (s *VerificationCodeService) Verify(ctx context.Context, email, code string, purpose entity.CodePurpose) (bool, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || code == "" {
		return false, ErrInvalidInput
	}
	return s.codes.Consume(ctx, email, code, purpose, s.clock.Now())
}
