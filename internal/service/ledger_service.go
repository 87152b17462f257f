package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/quote"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/validate"
)

// Portfolio is the index page view of a user's ledger.
type Portfolio struct {
	User     *domain.User
	Holdings []domain.Holding
}

// LedgerService applies buy, sell and deposit operations. Each mutating
// operation runs inside a single store transaction.
type LedgerService interface {
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)
	Buy(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error)
	Sell(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error)
	Deposit(ctx context.Context, userID int64, amount, cardNumber, securityCode string) (*domain.User, error)
	Portfolio(ctx context.Context, userID int64) (*Portfolio, error)
	History(ctx context.Context, userID int64) ([]domain.Transaction, error)
	OwnedSymbols(ctx context.Context, userID int64) ([]string, error)
}

type ledgerService struct {
	store  repository.Store
	quotes quote.Lookup
	now    func() time.Time
}

func NewLedgerService(store repository.Store, quotes quote.Lookup) LedgerService {
	return &ledgerService{
		store:  store,
		quotes: quotes,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *ledgerService) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if symbol == "" {
		return nil, inputError(ErrMissingField, "Missing Symbol")
	}
	return s.lookup(ctx, symbol)
}

func (s *ledgerService) Buy(ctx context.Context, userID int64, symbol, sharesInput string) (*domain.Transaction, error) {
	if symbol == "" || sharesInput == "" {
		return nil, inputError(ErrMissingField, "Missing Details")
	}

	q, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	shares, err := validate.ShareCount(sharesInput)
	if err != nil {
		if errors.Is(err, validate.ErrBelowMinimum) {
			return nil, inputError(ErrInvalidShareCount, "Number of Shares must be at least 1")
		}
		return nil, inputError(ErrInvalidShareCount, "Number of Shares must be an integer")
	}

	cost := q.Price.Mul(decimal.NewFromInt(shares))
	entry := &domain.Transaction{
		UserID:       userID,
		Symbol:       q.Symbol,
		Shares:       shares,
		Price:        cost,
		TransactedAt: s.now(),
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		remaining := user.Cash.Sub(cost)
		if remaining.IsNegative() {
			return inputError(ErrInsufficientFunds, "Insufficient Cash")
		}

		if _, err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}
		if err := tx.Users().UpdateBalance(ctx, userID, remaining, user.Total); err != nil {
			return err
		}

		holding, err := tx.Holdings().Get(ctx, userID, q.Symbol)
		if errors.Is(err, repository.ErrNotFound) {
			_, err = tx.Holdings().Create(ctx, &domain.Holding{
				UserID: userID,
				Symbol: q.Symbol,
				Name:   q.Name,
				Shares: shares,
				Price:  q.Price,
				Total:  cost,
			})
			return err
		}
		if err != nil {
			return err
		}

		// price stays the basis of the first purchase
		holding.Shares += shares
		holding.Total = q.Price.Mul(decimal.NewFromInt(holding.Shares))
		return tx.Holdings().Update(ctx, holding)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) Sell(ctx context.Context, userID int64, symbol, sharesInput string) (*domain.Transaction, error) {
	if symbol == "" {
		return nil, inputError(ErrMissingField, "Missing Stock")
	}

	q, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var entry *domain.Transaction
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		holding, err := tx.Holdings().Get(ctx, userID, q.Symbol)
		if errors.Is(err, repository.ErrNotFound) {
			return inputError(ErrInvalidSymbol, "Invalid Stock")
		}
		if err != nil {
			return err
		}

		if sharesInput == "" {
			return inputError(ErrMissingField, "Missing Shares")
		}
		shares, err := validate.ShareCount(sharesInput)
		if err != nil {
			if errors.Is(err, validate.ErrBelowMinimum) {
				return inputError(ErrInvalidShareCount, "Invalid Number Of Shares")
			}
			return inputError(ErrInvalidShareCount, "Number of Shares must be an integer")
		}
		if shares > holding.Shares {
			return inputError(ErrInvalidShareCount, "Too Many Shares")
		}

		proceeds := q.Price.Mul(decimal.NewFromInt(shares))
		entry = &domain.Transaction{
			UserID:       userID,
			Symbol:       q.Symbol,
			Shares:       -shares,
			Price:        proceeds,
			TransactedAt: s.now(),
		}
		if _, err := tx.Transactions().Create(ctx, entry); err != nil {
			return err
		}

		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateBalance(ctx, userID, user.Cash.Add(proceeds), user.Total); err != nil {
			return err
		}

		holding.Shares -= shares
		if holding.Shares == 0 {
			return tx.Holdings().Delete(ctx, userID, q.Symbol)
		}
		holding.Total = q.Price.Mul(decimal.NewFromInt(holding.Shares))
		return tx.Holdings().Update(ctx, holding)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) Deposit(ctx context.Context, userID int64, amountInput, cardNumber, securityCode string) (*domain.User, error) {
	if amountInput == "" || cardNumber == "" || securityCode == "" {
		return nil, inputError(ErrMissingField, "Please Fill Up All Fields")
	}

	amount, err := validate.Amount(amountInput)
	if err != nil {
		return nil, inputError(ErrInvalidAmount, "Please Enter A Valid Amount")
	}
	if !validate.ValidCard(cardNumber) {
		return nil, inputError(ErrInvalidCardNumber, "Invalid Card Number")
	}
	if !validate.ValidSecurityCode(securityCode) {
		return nil, inputError(ErrInvalidSecurityCode, "Invalid Security Code")
	}

	var updated *domain.User
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.Cash = user.Cash.Add(amount)
		user.Total = user.Total.Add(amount)
		if err := tx.Users().UpdateBalance(ctx, userID, user.Cash, user.Total); err != nil {
			return err
		}
		updated = sanitizeUser(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ledgerService) Portfolio(ctx context.Context, userID int64) (*Portfolio, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.store.Holdings().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Portfolio{User: sanitizeUser(user), Holdings: holdings}, nil
}

func (s *ledgerService) History(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.store.Transactions().ListByUser(ctx, userID)
}

func (s *ledgerService) OwnedSymbols(ctx context.Context, userID int64) ([]string, error) {
	holdings, err := s.store.Holdings().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(holdings))
	for i := range holdings {
		symbols[i] = holdings[i].Symbol
	}
	return symbols, nil
}

// lookup folds every quote failure into ErrInvalidSymbol; callers cannot tell
// an unknown ticker from an unreachable price service.
func (s *ledgerService) lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil || q == nil {
		return nil, inputError(ErrInvalidSymbol, "Invalid Symbol")
	}
	return q, nil
}
