package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ShoppingService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewShoppingService(store repository.Store, logger *logrus.Logger) *ShoppingService {
	return &ShoppingService{store: store, logger: logger}
}

var shoppingStatuses = map[string]bool{
	domain.ShoppingStatusDraft:        true,
	domain.ShoppingStatusReady:        true,
	domain.ShoppingStatusShopping:     true,
	domain.ShoppingStatusPostShopping: true,
	domain.ShoppingStatusCompleted:    true,
}

func validateShoppingStatus(status string) error {
	if !shoppingStatuses[status] {
		return customError.WrapValidation("unknown shopping plan status: " + status)
	}
	return nil
}

func validateNeedWant(value string) error {
	if value != domain.NeedWantNeed && value != domain.NeedWantWant {
		return customError.WrapValidation("need_want must be need or want")
	}
	return nil
}

// CreatePlan stores a plan; the status defaults to draft
func (s *ShoppingService) CreatePlan(ctx context.Context, ownerID uuid.UUID, request *domain.CreateShoppingPlanRequest) (*domain.ShoppingPlan, error) {
	planDate, err := parseDate("plan_date", request.PlanDate)
	if err != nil {
		return nil, err
	}

	status := request.Status
	if status == "" {
		status = domain.ShoppingStatusDraft
	}
	if err := validateShoppingStatus(status); err != nil {
		return nil, err
	}

	plan := &domain.ShoppingPlan{
		OwnerID:  ownerID,
		PlanDate: planDate,
		Status:   status,
	}
	if err := s.store.Repositories().Shopping.CreatePlan(ctx, plan); err != nil {
		return nil, translate(err, "Shopping plan", 0)
	}

	return plan, nil
}

// GetPlan returns the plan with its items, the summed estimates and the summed
// actual prices. Items without an actual price count as zero.
func (s *ShoppingService) GetPlan(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.ShoppingPlanWithItems, error) {
	repos := s.store.Repositories()

	plan, err := repos.Shopping.GetPlan(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Shopping plan", id)
	}

	items, err := repos.Shopping.ListItems(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var estimated int64
	actual := decimal.Zero
	for _, item := range items {
		estimated += item.EstimatePrice
		if item.ActualPrice.Valid {
			actual = actual.Add(item.ActualPrice.Decimal)
		}
	}

	return &domain.ShoppingPlanWithItems{
		ShoppingPlan:   plan,
		Items:          items,
		TotalEstimated: estimated,
		TotalActual:    actual,
	}, nil
}

func (s *ShoppingService) ListPlans(ctx context.Context, ownerID uuid.UUID, filter domain.ShoppingPlanFilter) ([]*domain.ShoppingPlan, error) {
	if filter.Status != "" {
		if err := validateShoppingStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, customError.WrapValidation("start_date must not be after end_date")
	}

	plans, err := s.store.Repositories().Shopping.ListPlans(ctx, ownerID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return plans, nil
}

func (s *ShoppingService) UpdatePlan(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingPlanRequest) (*domain.ShoppingPlan, error) {
	repos := s.store.Repositories()

	plan, err := repos.Shopping.GetPlan(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Shopping plan", id)
	}

	if request.PlanDate != nil {
		if plan.PlanDate, err = parseDate("plan_date", *request.PlanDate); err != nil {
			return nil, err
		}
	}
	if request.Status != nil {
		if err := validateShoppingStatus(*request.Status); err != nil {
			return nil, err
		}
		plan.Status = *request.Status
	}

	if err := repos.Shopping.UpdatePlan(ctx, plan); err != nil {
		return nil, translate(err, "Shopping plan", id)
	}

	return plan, nil
}

// SetPlanStatus moves a plan to any known status
func (s *ShoppingService) SetPlanStatus(ctx context.Context, ownerID uuid.UUID, id int64, status string) (*domain.ShoppingPlan, error) {
	if err := validateShoppingStatus(status); err != nil {
		return nil, err
	}

	repos := s.store.Repositories()
	plan, err := repos.Shopping.GetPlan(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Shopping plan", id)
	}

	previous := plan.Status
	plan.Status = status
	if err := repos.Shopping.UpdatePlan(ctx, plan); err != nil {
		return nil, translate(err, "Shopping plan", id)
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"plan_id":  id,
		"from":     previous,
		"to":       status,
	}).Debug("shopping plan status changed")

	return plan, nil
}

// DeletePlan removes the plan together with its items
func (s *ShoppingService) DeletePlan(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return translate(s.store.Repositories().Shopping.DeletePlan(ctx, ownerID, id), "Shopping plan", id)
}

func (s *ShoppingService) AddItem(ctx context.Context, ownerID uuid.UUID, planID int64, request *domain.CreateShoppingItemRequest) (*domain.ShoppingItem, error) {
	if err := validateName(request.Name); err != nil {
		return nil, err
	}
	if !request.Quantity.IsPositive() {
		return nil, customError.WrapValidation("quantity must be greater than 0")
	}
	if request.EstimatePrice <= 0 {
		return nil, customError.WrapValidation("estimate price must be greater than 0")
	}
	if err := validateNeedWant(request.NeedWant); err != nil {
		return nil, err
	}

	var item *domain.ShoppingItem
	err := s.store.WithTx(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Shopping.GetPlan(ctx, ownerID, planID); err != nil {
			return translate(err, "Shopping plan", planID)
		}

		item = &domain.ShoppingItem{
			PlanID:        planID,
			Name:          request.Name,
			Quantity:      request.Quantity,
			UOM:           request.UOM,
			NeedWant:      request.NeedWant,
			EstimatePrice: request.EstimatePrice,
		}
		return translate(repos.Shopping.CreateItem(ctx, item), "Shopping item", 0)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem applies the present fields. Purchase flags and the actual price
// are only settable here.
func (s *ShoppingService) UpdateItem(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateShoppingItemRequest) (*domain.ShoppingItem, error) {
	repos := s.store.Repositories()

	item, err := repos.Shopping.GetItem(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Shopping item", id)
	}

	if request.Name != nil {
		if err := validateName(*request.Name); err != nil {
			return nil, err
		}
		item.Name = *request.Name
	}
	if request.Quantity != nil {
		if !request.Quantity.IsPositive() {
			return nil, customError.WrapValidation("quantity must be greater than 0")
		}
		item.Quantity = *request.Quantity
	}
	if request.UOM != nil {
		item.UOM = request.UOM
	}
	if request.NeedWant != nil {
		if err := validateNeedWant(*request.NeedWant); err != nil {
			return nil, err
		}
		item.NeedWant = *request.NeedWant
	}
	if request.EstimatePrice != nil {
		if *request.EstimatePrice <= 0 {
			return nil, customError.WrapValidation("estimate price must be greater than 0")
		}
		item.EstimatePrice = *request.EstimatePrice
	}
	if request.ActualPrice != nil {
		if request.ActualPrice.IsNegative() {
			return nil, customError.WrapValidation("actual price must not be negative")
		}
		item.ActualPrice = decimal.NewNullDecimal(*request.ActualPrice)
	}
	if request.IsPurchased != nil {
		item.IsPurchased = *request.IsPurchased
	}
	if request.IsMovedToNext != nil {
		item.IsMovedToNext = *request.IsMovedToNext
	}
	if request.IsOutOfPlan != nil {
		item.IsOutOfPlan = *request.IsOutOfPlan
	}

	if err := repos.Shopping.UpdateItem(ctx, item); err != nil {
		return nil, translate(err, "Shopping item", id)
	}

	return item, nil
}

func (s *ShoppingService) DeleteItem(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return translate(s.store.Repositories().Shopping.DeleteItem(ctx, ownerID, id), "Shopping item", id)
}
