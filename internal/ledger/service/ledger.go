package service

import (
	"context"
	"errors"

	"gymbook/internal/identity"
	ledgererrors "gymbook/internal/ledger/errors"
	"gymbook/internal/ledger/repository"
	"gymbook/internal/metrics"
	"gymbook/internal/notify"
	"gymbook/pkg/config"
	"gymbook/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// LedgerService is the seat reservation ledger: one booking per user per
// class, enforced by the composite booking key, with the class enrollment
// counter kept exactly in step inside one atomic transaction.
type LedgerService interface {
	Reserve(ctx context.Context, userID, classID, idToken string) (*model.ReserveResult, error)
	Cancel(ctx context.Context, userID, classID, idToken string) (*model.CancelResult, error)
	Remind(ctx context.Context, req *ReminderRequest) (*ReminderResult, error)
}

type ledgerService struct {
	repo        repository.LedgerRepository
	verifier    identity.Verifier
	directories []identity.Directory
	publisher   notify.Publisher
	cfg         *config.Config
}

func NewLedgerService(
	repo repository.LedgerRepository,
	verifier identity.Verifier,
	directories []identity.Directory,
	publisher notify.Publisher,
	cfg *config.Config,
) LedgerService {
	return &ledgerService{
		repo:        repo,
		verifier:    verifier,
		directories: directories,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// resolveIdentity applies the identity trust rule: a supplied token is
// authoritative and overrides any caller-provided userId; without a token
// the caller-provided userId is trusted as-is.
func (s *ledgerService) resolveIdentity(userID, idToken string) (string, error) {
	if idToken == "" {
		return userID, nil
	}
	if s.verifier == nil {
		return "", identity.ErrNoSigningKey
	}
	return s.verifier.Verify(idToken)
}

func (s *ledgerService) Reserve(ctx context.Context, userID, classID, idToken string) (*model.ReserveResult, error) {
	result, err := s.reserve(ctx, userID, classID, idToken)
	metrics.IncReservation(outcomeLabel(err))
	return result, err
}

func (s *ledgerService) reserve(ctx context.Context, userID, classID, idToken string) (*model.ReserveResult, error) {
	userID, err := s.resolveIdentity(userID, idToken)
	if err != nil {
		return nil, err
	}
	if userID == "" || classID == "" {
		return nil, ledgererrors.ErrMissingInput
	}

	bookingID := model.BookingID(classID, userID)

	var result *model.ReserveResult
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		cls, err := s.repo.GetClass(sessCtx, classID)
		if err != nil {
			return err
		}

		if cls.Capacity > 0 && cls.Enrolled >= cls.Capacity {
			return ledgererrors.ErrClassFull
		}

		// Pre-read for a clean error message only; the create below is
		// what actually guarantees uniqueness under concurrency.
		if _, err := s.repo.GetBooking(sessCtx, bookingID); err == nil {
			return ledgererrors.ErrAlreadyBooked
		} else if !errors.Is(err, ledgererrors.ErrNotBooked) {
			return err
		}

		email := identity.ResolveEmail(sessCtx, userID, s.directories...)

		booking := &model.Booking{
			ID:        bookingID,
			UserID:    userID,
			UserEmail: email,
			ClassID:   classID,
			ClassName: cls.Name,
			ClassTime: cls.Time,
		}
		if err := s.repo.CreateBooking(sessCtx, booking); err != nil {
			return err
		}

		if err := s.repo.IncrementEnrolled(sessCtx, classID); err != nil {
			return err
		}

		user := model.UserSnapshot{ID: userID}
		if email != "" {
			user.Email = &email
		}
		result = &model.ReserveResult{
			BookingID: bookingID,
			Class:     cls.Snapshot(),
			User:      user,
		}
		return nil
	})
	if err != nil {
		s.logOutcome("Reserve failed", bookingID, classID, userID, err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", bookingID,
		"class_id", classID,
		"user_id", userID,
	)
	return result, nil
}

func (s *ledgerService) Cancel(ctx context.Context, userID, classID, idToken string) (*model.CancelResult, error) {
	result, err := s.cancel(ctx, userID, classID, idToken)
	metrics.IncCancellation(outcomeLabel(err))
	return result, err
}

func (s *ledgerService) cancel(ctx context.Context, userID, classID, idToken string) (*model.CancelResult, error) {
	userID, err := s.resolveIdentity(userID, idToken)
	if err != nil {
		return nil, err
	}
	if userID == "" || classID == "" {
		return nil, ledgererrors.ErrMissingInput
	}

	bookingID := model.BookingID(classID, userID)

	var result *model.CancelResult
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		cls, err := s.repo.GetClass(sessCtx, classID)
		if err != nil {
			return err
		}
		if _, err := s.repo.GetBooking(sessCtx, bookingID); err != nil {
			return err
		}

		if err := s.repo.DeleteBooking(sessCtx, bookingID); err != nil {
			return err
		}

		// Clamped write rather than a raw decrement: a previously corrupted
		// negative counter must not sink further.
		next := cls.Enrolled - 1
		if next < 0 {
			next = 0
		}
		if err := s.repo.SetEnrolled(sessCtx, classID, next); err != nil {
			return err
		}

		result = &model.CancelResult{
			BookingID: bookingID,
			Class:     cls.Snapshot(),
		}
		result.User.ID = userID
		return nil
	})
	if err != nil {
		s.logOutcome("Cancel failed", bookingID, classID, userID, err)
		return nil, err
	}

	s.cfg.Log.Info("Booking cancelled",
		"booking_id", bookingID,
		"class_id", classID,
		"user_id", userID,
	)
	return result, nil
}

func (s *ledgerService) logOutcome(msg, bookingID, classID, userID string, err error) {
	if isExpected(err) {
		s.cfg.Log.Debug(msg,
			"booking_id", bookingID,
			"class_id", classID,
			"user_id", userID,
			"reason", err,
		)
		return
	}
	s.cfg.Log.Error(msg,
		"booking_id", bookingID,
		"class_id", classID,
		"user_id", userID,
		"error", err,
	)
}

func isExpected(err error) bool {
	return errors.Is(err, ledgererrors.ErrMissingInput) ||
		errors.Is(err, ledgererrors.ErrClassNotFound) ||
		errors.Is(err, ledgererrors.ErrClassFull) ||
		errors.Is(err, ledgererrors.ErrAlreadyBooked) ||
		errors.Is(err, ledgererrors.ErrNotBooked)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ledgererrors.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ledgererrors.ErrClassNotFound):
		return "class_not_found"
	case errors.Is(err, ledgererrors.ErrClassFull):
		return "class_full"
	case errors.Is(err, ledgererrors.ErrAlreadyBooked):
		return "already_booked"
	case errors.Is(err, ledgererrors.ErrNotBooked):
		return "not_booked"
	default:
		return "error"
	}
}
