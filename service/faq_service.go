package service

import (
	"context"
	"time"

	"github.com/hametuha/hamelp-be/repository"
	"github.com/hametuha/hamelp-be/types"
)

// FaqService is the editorial surface over the corpus store. Every
// mutation schedules a catalog rebuild so the AI context catches up
// without slowing the editorial request itself.
type FaqService interface {
	CreateFaq(ctx context.Context, faq *types.FaqDocument) error
	GetFaq(ctx context.Context, id string) (*types.FaqDocument, error)
	ListPublished(ctx context.Context) ([]*types.FaqDocument, error)
	UpdateFaq(ctx context.Context, id string, faq *types.FaqDocument) error
	DeleteFaq(ctx context.Context, id string) error
}

type faqService struct {
	repo    repository.FaqRepo
	catalog CatalogService
}

func NewFaqService(repo repository.FaqRepo, catalog CatalogService) FaqService {
	return &faqService{
		repo:    repo,
		catalog: catalog,
	}
}

func (s *faqService) CreateFaq(ctx context.Context, faq *types.FaqDocument) error {
	faq.CreatedAt = time.Now().Unix()
	faq.UpdatedAt = time.Now().Unix()
	if faq.Status == "" {
		faq.Status = types.FAQ_STATUS_DRAFT
	}

	if err := s.repo.CreateFaq(ctx, faq); err != nil {
		return err
	}
	s.catalog.ScheduleRebuild()
	return nil
}

func (s *faqService) GetFaq(ctx context.Context, id string) (*types.FaqDocument, error) {
	return s.repo.GetFaq(ctx, id)
}

func (s *faqService) ListPublished(ctx context.Context) ([]*types.FaqDocument, error) {
	return s.repo.ListPublished(ctx)
}

func (s *faqService) UpdateFaq(ctx context.Context, id string, faq *types.FaqDocument) error {
	dbFaq, err := s.repo.GetFaq(ctx, id)
	if err != nil {
		return err
	}
	if faq.Title != "" {
		dbFaq.Title = faq.Title
	}
	if faq.Slug != "" {
		dbFaq.Slug = faq.Slug
	}
	if faq.Body != "" {
		dbFaq.Body = faq.Body
	}
	if faq.Category != "" {
		dbFaq.Category = faq.Category
	}
	if faq.Status != "" {
		dbFaq.Status = faq.Status
	}
	dbFaq.Access = faq.Access
	dbFaq.UpdatedAt = time.Now().Unix()

	if err := s.repo.UpdateFaq(ctx, id, dbFaq); err != nil {
		return err
	}
	s.catalog.ScheduleRebuild()
	return nil
}

func (s *faqService) DeleteFaq(ctx context.Context, id string) error {
	if err := s.repo.DeleteFaq(ctx, id); err != nil {
		return err
	}
	s.catalog.ScheduleRebuild()
	return nil
}
