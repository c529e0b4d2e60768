package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
)

type TagService struct {
	store repository.Store
}

func NewTagService(store repository.Store) *TagService {
	return &TagService{store: store}
}

func tagConflict(name string) error {
	return customError.WrapConflict(fmt.Sprintf("Tag with name '%s' already exists", name))
}

// CreateTag stores a tag. Names are unique per owner.
func (s *TagService) CreateTag(ctx context.Context, ownerID uuid.UUID, request *domain.CreateTagRequest) (*domain.Tag, error) {
	tag := &domain.Tag{
		OwnerID:     ownerID,
		Name:        request.Name,
		Color:       request.Color,
		Description: request.Description,
	}

	if err := s.store.Repositories().Tags.Create(ctx, tag); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, tagConflict(tag.Name)
		}
		return nil, translate(err, "Tag", 0)
	}

	return tag, nil
}

// GetTag returns the tag with how many incomes and expenses carry it, their
// totals and the budgets of those expenses
func (s *TagService) GetTag(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.TagWithStats, error) {
	repos := s.store.Repositories()

	tag, err := repos.Tags.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Tag", id)
	}

	usage, err := repos.Tags.Usage(ctx, ownerID, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if usage.BudgetsUsedIn == nil {
		usage.BudgetsUsedIn = []int64{}
	}

	return &domain.TagWithStats{Tag: tag, TagUsage: usage}, nil
}

var tagUsageFilters = map[string]bool{
	"":                         true,
	domain.TagUsedWithExpenses: true,
	domain.TagUsedWithIncomes:  true,
	domain.TagUsedWithBoth:     true,
}

func (s *TagService) ListTags(ctx context.Context, ownerID uuid.UUID, filter domain.TagFilter) ([]*domain.Tag, error) {
	if !tagUsageFilters[filter.UsedWith] {
		return nil, customError.WrapValidation("used_with must be one of expenses, incomes, both")
	}

	tags, err := s.store.Repositories().Tags.List(ctx, ownerID, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tags, nil
}

func (s *TagService) UpdateTag(ctx context.Context, ownerID uuid.UUID, id int64, request *domain.UpdateTagRequest) (*domain.Tag, error) {
	repos := s.store.Repositories()

	tag, err := repos.Tags.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "Tag", id)
	}

	if request.Name != nil {
		tag.Name = *request.Name
	}
	if request.Color != nil {
		tag.Color = request.Color
	}
	if request.Description != nil {
		tag.Description = request.Description
	}

	if err := repos.Tags.Update(ctx, tag); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, tagConflict(tag.Name)
		}
		return nil, translate(err, "Tag", id)
	}

	return tag, nil
}

// DeleteTag removes the tag; incomes and expenses referencing it keep no tag
func (s *TagService) DeleteTag(ctx context.Context, ownerID uuid.UUID, id int64) error {
	return translate(s.store.Repositories().Tags.Delete(ctx, ownerID, id), "Tag", id)
}
