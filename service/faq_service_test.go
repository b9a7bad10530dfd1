package service

import (
	"context"
	"testing"

	"github.com/hametuha/hamelp-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaqMutationsScheduleRebuild(t *testing.T) {
	repo := &stubFaqRepo{}
	catalog := NewCatalogService(repo, &fakeCatalogStore{}, "https://example.com", defaultCatalogConfig()).(*catalogService)
	svc := NewFaqService(repo, catalog)
	ctx := context.Background()

	faq := &types.FaqDocument{Title: "New question", Body: "<p>Answer</p>"}
	require.NoError(t, svc.CreateFaq(ctx, faq))
	assert.Len(t, catalog.triggers, 1, "create must schedule a rebuild")
	assert.Equal(t, types.FAQ_STATUS_DRAFT, faq.Status)
	assert.Greater(t, faq.CreatedAt, int64(0))

	// A second mutation while a rebuild is pending does not queue another.
	require.NoError(t, svc.DeleteFaq(ctx, "some-id"))
	assert.Len(t, catalog.triggers, 1)
}
