package stock

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/farmledger/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// StockService handles medication stock operations: catalog maintenance,
// incoming lots, withdrawals and expiry reporting.
type StockService struct {
	medicationRepo stock.MedicationRepository
	entryRepo      stock.StockEntryRepository
	withdrawalRepo stock.WithdrawalRepository
	txScope        TransactionScope
}

// NewStockService creates a new StockService
func NewStockService(
	medicationRepo stock.MedicationRepository,
	entryRepo stock.StockEntryRepository,
	withdrawalRepo stock.WithdrawalRepository,
	txScope TransactionScope,
) *StockService {
	return &StockService{
		medicationRepo: medicationRepo,
		entryRepo:      entryRepo,
		withdrawalRepo: withdrawalRepo,
		txScope:        txScope,
	}
}

// CreateMedication registers a medication in the farm's catalog. The
// name is unique per farm.
func (s *StockService) CreateMedication(ctx context.Context, farmID, userID uuid.UUID, req CreateMedicationRequest) (*MedicationResponse, error) {
	existing, err := s.medicationRepo.FindByNameForFarm(ctx, farmID, req.Name)
	if err != nil && !errors.Is(err, stock.ErrMedicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("MEDICATION_EXISTS", "A medication with this name already exists")
	}

	medication, err := stock.NewMedication(farmID, req.Name)
	if err != nil {
		return nil, err
	}
	medication.SetCreatedBy(userID)

	if err := s.medicationRepo.Save(ctx, medication); err != nil {
		return nil, err
	}

	resp := ToMedicationResponse(medication, time.Now())
	return &resp, nil
}

// GetMedication retrieves a medication with its stock totals
func (s *StockService) GetMedication(ctx context.Context, farmID, medicationID uuid.UUID) (*MedicationResponse, error) {
	medication, err := s.medicationRepo.FindByIDWithEntries(ctx, farmID, medicationID)
	if err != nil {
		return nil, err
	}
	resp := ToMedicationResponse(medication, time.Now())
	return &resp, nil
}

// ListMedications lists a farm's medications with pagination
func (s *StockService) ListMedications(ctx context.Context, farmID uuid.UUID, filter shared.Filter) (*shared.Paginated[MedicationResponse], error) {
	medications, err := s.medicationRepo.FindAllForFarm(ctx, farmID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.medicationRepo.CountForFarm(ctx, farmID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]MedicationResponse, 0, len(medications))
	for i := range medications {
		items = append(items, ToMedicationResponse(&medications[i], now))
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// RenameMedication changes a medication's catalog name
func (s *StockService) RenameMedication(ctx context.Context, farmID, medicationID uuid.UUID, req RenameMedicationRequest) (*MedicationResponse, error) {
	medication, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, medicationID)
	if err != nil {
		return nil, err
	}

	if medication.Name != req.Name {
		existing, err := s.medicationRepo.FindByNameForFarm(ctx, farmID, req.Name)
		if err != nil && !errors.Is(err, stock.ErrMedicationNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != medication.ID {
			return nil, shared.NewDomainError("MEDICATION_EXISTS", "A medication with this name already exists")
		}
	}

	if err := medication.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.medicationRepo.Save(ctx, medication); err != nil {
		return nil, err
	}

	resp := ToMedicationResponse(medication, time.Now())
	return &resp, nil
}

// DeleteMedication removes a medication and its lots from the catalog
func (s *StockService) DeleteMedication(ctx context.Context, farmID, medicationID uuid.UUID) error {
	if _, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, medicationID); err != nil {
		return err
	}
	return s.medicationRepo.DeleteForFarm(ctx, farmID, medicationID)
}

// AddEntry records an incoming lot for a medication. The full received
// quantity starts available.
func (s *StockService) AddEntry(ctx context.Context, farmID, medicationID, userID uuid.UUID, req AddStockEntryRequest) (*StockEntryResponse, error) {
	if _, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, medicationID); err != nil {
		return nil, err
	}

	entry, err := stock.NewStockEntry(
		medicationID,
		req.Quantity,
		req.ExpiryDate,
		valueobject.NewMoneyBRL(req.TotalValue),
		req.Note,
		userID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToStockEntryResponse(entry, time.Now())
	return &resp, nil
}

// ListEntries lists a medication's lots ordered by expiry date
func (s *StockService) ListEntries(ctx context.Context, farmID, medicationID uuid.UUID) ([]StockEntryResponse, error) {
	if _, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, medicationID); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindByMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]StockEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, ToStockEntryResponse(&entries[i], now))
	}
	return items, nil
}

// DeleteEntry removes a lot. Withdrawal history referencing the lot is
// kept; only the remaining stock disappears.
func (s *StockService) DeleteEntry(ctx context.Context, farmID, entryID uuid.UUID) error {
	if _, err := s.entryRepo.FindByIDForFarm(ctx, farmID, entryID); err != nil {
		return err
	}
	return s.entryRepo.DeleteForFarm(ctx, farmID, entryID)
}

// Withdraw deducts the requested quantity from a medication's stock,
// draining lots in expiry-date order. The plan is computed and applied
// inside one transaction with the candidate lots locked for update, so
// either every lot deduction and audit record persists or none do.
//
// When total available stock is short of the request, nothing is mutated
// and an InsufficientStockError reports requested versus available.
func (s *StockService) Withdraw(ctx context.Context, farmID, medicationID, userID uuid.UUID, req WithdrawStockRequest) (*WithdrawStockResponse, error) {
	var resp *WithdrawStockResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.MedicationRepo().FindByIDForFarm(ctx, farmID, medicationID); err != nil {
			return err
		}

		entries, err := repos.EntryRepo().FindAvailableForUpdate(ctx, medicationID)
		if err != nil {
			return err
		}

		plan, err := stock.PlanWithdrawal(entries, req.Quantity)
		if err != nil {
			return err
		}

		allocations := make([]AllocationResponse, 0, len(plan.Allocations))
		remaining := int64(0)
		for _, alloc := range plan.Allocations {
			if err := alloc.Entry.Deduct(alloc.Quantity); err != nil {
				return err
			}
			if err := repos.EntryRepo().Save(ctx, alloc.Entry); err != nil {
				return err
			}

			withdrawal, err := stock.NewWithdrawal(medicationID, alloc.Entry.ID, alloc.Quantity, req.Reason, userID)
			if err != nil {
				return err
			}
			if err := repos.WithdrawalRepo().Create(ctx, withdrawal); err != nil {
				return err
			}

			allocations = append(allocations, AllocationResponse{
				EntryID:    alloc.Entry.ID,
				ExpiryDate: alloc.Entry.ExpiryDate,
				Quantity:   alloc.Quantity,
			})
		}
		for _, e := range entries {
			remaining += e.QuantityAvailable
		}

		resp = &WithdrawStockResponse{
			MedicationID:   medicationID,
			Quantity:       plan.Total,
			Allocations:    allocations,
			TotalAvailable: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListWithdrawals lists a medication's withdrawal history, newest first
func (s *StockService) ListWithdrawals(ctx context.Context, farmID, medicationID uuid.UUID, filter shared.Filter) (*shared.Paginated[WithdrawalResponse], error) {
	if _, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, medicationID); err != nil {
		return nil, err
	}

	withdrawals, err := s.withdrawalRepo.FindByMedication(ctx, medicationID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.withdrawalRepo.CountByMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	items := make([]WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		items = append(items, ToWithdrawalResponse(&withdrawals[i]))
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ExpiryNotifications returns the alert feed: lots with available stock
// that are expired or expire within the warning window, worst first.
func (s *StockService) ExpiryNotifications(ctx context.Context, farmID uuid.UUID) ([]ExpiryAlertResponse, error) {
	now := time.Now()
	limit := now.AddDate(0, 0, 30)

	entries, err := s.entryRepo.FindExpiringForFarm(ctx, farmID, limit)
	if err != nil {
		return nil, err
	}

	names, err := s.medicationNames(ctx, farmID, entries)
	if err != nil {
		return nil, err
	}

	alerts := make([]ExpiryAlertResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		alerts = append(alerts, ExpiryAlertResponse{
			EntryID:           e.ID,
			MedicationID:      e.MedicationID,
			MedicationName:    names[e.MedicationID],
			QuantityAvailable: e.QuantityAvailable,
			ExpiryDate:        e.ExpiryDate,
			DaysToExpiry:      e.DaysToExpiry(now),
			Status:            stock.ClassifyNotification(e.ExpiryDate, now),
		})
	}
	return alerts, nil
}

// Dashboard summarizes the farm's stock position with per-medication
// expiry classification.
func (s *StockService) Dashboard(ctx context.Context, farmID uuid.UUID) (*StockDashboardResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000

	medications, err := s.medicationRepo.FindAllForFarm(ctx, farmID, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := &StockDashboardResponse{
		MedicationCount: int64(len(medications)),
		Medications:     make([]MedicationResponse, 0, len(medications)),
	}
	for i := range medications {
		item := ToMedicationResponse(&medications[i], now)
		resp.TotalAvailable += item.TotalAvailable
		switch item.ExpiryStatus {
		case stock.ExpiryStatusExpired:
			resp.ExpiredCount++
		case stock.ExpiryStatusCritical:
			resp.CriticalCount++
		case stock.ExpiryStatusAttention:
			resp.AttentionCount++
		}
		resp.Medications = append(resp.Medications, item)
	}

	// Most urgent first: nearest expiry ascending, depleted medications
	// (no expiry to track) at the end
	sort.SliceStable(resp.Medications, func(i, j int) bool {
		a, b := resp.Medications[i].NearestExpiry, resp.Medications[j].NearestExpiry
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return resp, nil
}

// medicationNames resolves display names for the medications an alert
// feed references.
func (s *StockService) medicationNames(ctx context.Context, farmID uuid.UUID, entries []stock.StockEntry) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for i := range entries {
		id := entries[i].MedicationID
		if _, ok := names[id]; ok {
			continue
		}
		medication, err := s.medicationRepo.FindByIDForFarm(ctx, farmID, id)
		if err != nil {
			if errors.Is(err, stock.ErrMedicationNotFound) {
				continue
			}
			return nil, err
		}
		names[id] = medication.Name
	}
	return names, nil
}
