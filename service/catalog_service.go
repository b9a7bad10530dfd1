package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/repository"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
)

// CatalogStore persists the catalog snapshot. Save must replace the
// snapshot atomically.
type CatalogStore interface {
	Save(ctx context.Context, catalog *types.Catalog) error
	Load(ctx context.Context) (*types.Catalog, error)
}

type CatalogService interface {
	Rebuild(ctx context.Context) (*types.Catalog, error)
	GetCatalog(ctx context.Context) (*types.Catalog, error)
	GetAccessibleCatalog(ctx context.Context, viewerRole string) (*types.Catalog, error)
	ScheduleRebuild()
	GetLastUpdated(ctx context.Context) (int64, error)
	RunRebuildWorker(ctx context.Context)
}

type catalogService struct {
	repo     repository.FaqRepo
	store    CatalogStore
	siteURL  string
	cfg      config.CatalogConfig
	triggers chan struct{}
}

func NewCatalogService(repo repository.FaqRepo, store CatalogStore, siteURL string, cfg config.CatalogConfig) CatalogService {
	return &catalogService{
		repo:    repo,
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
		cfg:     cfg,
		// Buffer of one: overlapping triggers collapse into a single
		// pending rebuild.
		triggers: make(chan struct{}, 1),
	}
}

// Rebuild reads every published FAQ and replaces the stored snapshot.
// If the corpus store is unavailable the previous snapshot stays intact.
func (s *catalogService) Rebuild(ctx context.Context) (*types.Catalog, error) {
	faqs, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]types.CatalogEntry, 0, len(faqs))
	for _, faq := range faqs {
		content := utils.StripTags(faq.Body)
		entries = append(entries, types.CatalogEntry{
			ID:       faq.ID,
			Title:    faq.Title,
			Category: faq.Category,
			Excerpt:  utils.TruncateRunes(content, s.cfg.ExcerptLength),
			Content:  utils.TruncateRunes(content, s.cfg.ContentLength),
			URL:      s.faqURL(faq),
			Access:   faq.Access,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Title < entries[j].Title
	})

	catalog := &types.Catalog{
		Entries: entries,
		BuiltAt: time.Now().Unix(),
	}
	if err := s.store.Save(ctx, catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *catalogService) GetCatalog(ctx context.Context) (*types.Catalog, error) {
	return s.store.Load(ctx)
}

// GetAccessibleCatalog filters the snapshot down to entries the viewer
// may see. Anonymous viewers pass an empty role.
func (s *catalogService) GetAccessibleCatalog(ctx context.Context, viewerRole string) (*types.Catalog, error) {
	catalog, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]types.CatalogEntry, 0, len(catalog.Entries))
	for _, entry := range catalog.Entries {
		if types.RoleSatisfies(viewerRole, entry.Access) {
			entries = append(entries, entry)
		}
	}
	return &types.Catalog{
		Entries: entries,
		BuiltAt: catalog.BuiltAt,
	}, nil
}

// ScheduleRebuild requests an asynchronous rebuild. Safe to call from
// request handlers; never blocks.
func (s *catalogService) ScheduleRebuild() {
	select {
	case s.triggers <- struct{}{}:
	default:
		// A rebuild is already pending.
	}
}

func (s *catalogService) GetLastUpdated(ctx context.Context) (int64, error) {
	catalog, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return catalog.BuiltAt, nil
}

// RunRebuildWorker consumes scheduled triggers until ctx is cancelled.
// Run it in its own goroutine next to the HTTP server.
func (s *catalogService) RunRebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.triggers:
			if _, err := s.Rebuild(ctx); err != nil {
				log.Printf("catalog rebuild failed, keeping previous snapshot: %v", err)
			}
		}
	}
}

func (s *catalogService) faqURL(faq *types.FaqDocument) string {
	slug := faq.Slug
	if slug == "" {
		slug = faq.ID
	}
	return s.siteURL + "/faq/" + slug
}
