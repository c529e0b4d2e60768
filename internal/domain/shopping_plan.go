package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shopping plan statuses
const (
	ShoppingStatusDraft        = "draft"
	ShoppingStatusReady        = "ready"
	ShoppingStatusShopping     = "shopping"
	ShoppingStatusPostShopping = "post_shopping"
	ShoppingStatusCompleted    = "completed"
)

// Item priorities
const (
	NeedWantNeed = "need"
	NeedWantWant = "want"
)

// ShoppingPlan is a dated list of items an owner intends to buy
type ShoppingPlan struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	PlanDate  time.Time `json:"plan_date" db:"plan_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ShoppingItem is one line of a plan. The estimate is in minor units; quantity
// and the actual price paid are fixed-point decimals.
type ShoppingItem struct {
	ID            int64               `json:"id" db:"id"`
	PlanID        int64               `json:"plan_id" db:"plan_id"`
	Name          string              `json:"name" db:"name"`
	Quantity      decimal.Decimal     `json:"quantity" db:"quantity"`
	UOM           *string             `json:"uom" db:"uom"`
	NeedWant      string              `json:"need_want" db:"need_want"`
	EstimatePrice int64               `json:"estimate_price" db:"estimate_price"`
	ActualPrice   decimal.NullDecimal `json:"actual_price" db:"actual_price"`
	IsPurchased   bool                `json:"is_purchased" db:"is_purchased"`
	IsMovedToNext bool                `json:"is_moved_to_next" db:"is_moved_to_next"`
	IsOutOfPlan   bool                `json:"is_out_of_plan" db:"is_out_of_plan"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
}

type ShoppingPlanWithItems struct {
	*ShoppingPlan
	Items          []*ShoppingItem `json:"items"`
	TotalEstimated int64           `json:"total_estimated"`
	TotalActual    decimal.Decimal `json:"total_actual"`
}

type CreateShoppingPlanRequest struct {
	PlanDate string `json:"plan_date" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"omitempty,oneof=draft ready shopping post_shopping completed"`
}

type UpdateShoppingPlanRequest struct {
	PlanDate *string `json:"plan_date" validate:"omitempty,datetime=2006-01-02"`
	Status   *string `json:"status" validate:"omitempty,oneof=draft ready shopping post_shopping completed"`
}

type ShoppingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft ready shopping post_shopping completed"`
}

type CreateShoppingItemRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gt=0"`
	UOM           *string         `json:"uom" validate:"omitempty,max=50"`
	NeedWant      string          `json:"need_want" validate:"required,oneof=need want"`
	EstimatePrice int64           `json:"estimate_price" validate:"required,gt=0"`
}

type UpdateShoppingItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	UOM           *string          `json:"uom" validate:"omitempty,max=50"`
	NeedWant      *string          `json:"need_want" validate:"omitempty,oneof=need want"`
	EstimatePrice *int64           `json:"estimate_price" validate:"omitempty,gt=0"`
	ActualPrice   *decimal.Decimal `json:"actual_price" validate:"omitempty,gte=0"`
	IsPurchased   *bool            `json:"is_purchased"`
	IsMovedToNext *bool            `json:"is_moved_to_next"`
	IsOutOfPlan   *bool            `json:"is_out_of_plan"`
}

// ShoppingPlanFilter narrows ListPlans; zero values mean "any"
type ShoppingPlanFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}
