package finance

import (
	"context"
	"time"

	"github.com/farmledger/backend/internal/domain/finance"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MovementService handles financial movements and their installment
// schedules.
type MovementService struct {
	categoryRepo    finance.CategoryRepository
	movementRepo    finance.MovementRepository
	installmentRepo finance.InstallmentRepository
	txScope         TransactionScope
}

// NewMovementService creates a new MovementService
func NewMovementService(
	categoryRepo finance.CategoryRepository,
	movementRepo finance.MovementRepository,
	installmentRepo finance.InstallmentRepository,
	txScope TransactionScope,
) *MovementService {
	return &MovementService{
		categoryRepo:    categoryRepo,
		movementRepo:    movementRepo,
		installmentRepo: installmentRepo,
		txScope:         txScope,
	}
}

// Create records a movement and generates its installment schedule. The
// movement and all installments persist in one transaction.
func (s *MovementService) Create(ctx context.Context, farmID, userID uuid.UUID, req CreateMovementRequest) (*MovementResponse, error) {
	var resp *MovementResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.CategoryRepo().FindByIDForFarm(ctx, farmID, req.CategoryID); err != nil {
			return err
		}

		movement, err := finance.NewMovement(
			farmID,
			req.CategoryID,
			req.ContactID,
			valueobject.NewMoneyBRL(req.TotalAmount),
			req.InstallmentCount,
			req.IncomeTax,
			req.Description,
			req.Date,
			userID,
		)
		if err != nil {
			return err
		}

		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		r := ToMovementResponse(movement, time.Now())
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Get retrieves a movement with its schedule
func (s *MovementService) Get(ctx context.Context, farmID, movementID uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByIDForFarm(ctx, farmID, movementID)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(movement, time.Now())
	return &resp, nil
}

// List lists a farm's movements with filtering and pagination
func (s *MovementService) List(ctx context.Context, farmID uuid.UUID, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	f := finance.MovementFilter{
		Filter:       shared.DefaultFilter(),
		CategoryID:   filter.CategoryID,
		CategoryType: filter.CategoryType,
		ContactID:    filter.ContactID,
		StartDate:    filter.StartDate,
		EndDate:      filter.EndDate,
	}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	movements, err := s.movementRepo.FindAllForFarm(ctx, farmID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.CountForFarm(ctx, farmID, f)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, ToMovementResponse(&movements[i], now))
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Update reworks a movement and regenerates its schedule. Refused once
// any installment is settled.
func (s *MovementService) Update(ctx context.Context, farmID, movementID uuid.UUID, req UpdateMovementRequest) (*MovementResponse, error) {
	var resp *MovementResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		movement, err := repos.MovementRepo().FindByIDForFarm(ctx, farmID, movementID)
		if err != nil {
			return err
		}
		if _, err := repos.CategoryRepo().FindByIDForFarm(ctx, farmID, req.CategoryID); err != nil {
			return err
		}

		if err := movement.Regenerate(valueobject.NewMoneyBRL(req.TotalAmount), req.InstallmentCount, req.Date); err != nil {
			return err
		}
		movement.CategoryID = req.CategoryID
		movement.ContactID = req.ContactID
		movement.IncomeTax = req.IncomeTax
		movement.Description = req.Description

		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		r := ToMovementResponse(movement, time.Now())
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes a movement and its installments
func (s *MovementService) Delete(ctx context.Context, farmID, movementID uuid.UUID) error {
	if _, err := s.movementRepo.FindByIDForFarm(ctx, farmID, movementID); err != nil {
		return err
	}
	return s.movementRepo.DeleteForFarm(ctx, farmID, movementID)
}

// SettleInstallment marks an installment as paid. A partial or different
// amount can be recorded; the default is the full amount due today.
func (s *MovementService) SettleInstallment(ctx context.Context, farmID, installmentID uuid.UUID, req SettleInstallmentRequest) (*InstallmentResponse, error) {
	installment, err := s.installmentRepo.FindByIDForFarm(ctx, farmID, installmentID)
	if err != nil {
		return nil, err
	}

	if err := installment.Settle(req.AmountPaid, req.SettledDate); err != nil {
		return nil, err
	}
	if err := s.installmentRepo.Save(ctx, installment); err != nil {
		return nil, err
	}

	resp := ToInstallmentResponse(installment, time.Now())
	return &resp, nil
}

// ReopenInstallment reverts a settlement, returning the installment to
// pending with a zero paid amount.
func (s *MovementService) ReopenInstallment(ctx context.Context, farmID, installmentID uuid.UUID) (*InstallmentResponse, error) {
	installment, err := s.installmentRepo.FindByIDForFarm(ctx, farmID, installmentID)
	if err != nil {
		return nil, err
	}

	installment.Reopen()
	if err := s.installmentRepo.Save(ctx, installment); err != nil {
		return nil, err
	}

	resp := ToInstallmentResponse(installment, time.Now())
	return &resp, nil
}

// ListPendingInstallments lists pending installments of one category
// type ordered by due date, the feed behind receivable/payable views.
func (s *MovementService) ListPendingInstallments(ctx context.Context, farmID uuid.UUID, categoryType finance.CategoryType, filter shared.Filter) ([]InstallmentResponse, error) {
	installments, err := s.installmentRepo.FindPendingByType(ctx, farmID, categoryType, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]InstallmentResponse, 0, len(installments))
	for i := range installments {
		items = append(items, ToInstallmentResponse(&installments[i], now))
	}
	return items, nil
}
