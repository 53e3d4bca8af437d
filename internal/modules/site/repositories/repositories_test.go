package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/shared/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.GORM
}

func TestPricingRepoListsByOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPricingRepo(newTestDB(t))

	for _, p := range []models.PricingPlan{
		{Name: "Enterprise", Tagline: "t", Price: "Custom", Order: 3},
		{Name: "Starter", Tagline: "t", Price: "$99", Order: 1},
		{Name: "Growth", Tagline: "t", Price: "$299", Order: 2, Features: datatypes.JSONSlice[string]{"a", "b"}},
	} {
		plan := p
		require.NoError(t, repo.Create(ctx, &plan))
	}

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "Starter", plans[0].Name)
	assert.Equal(t, "Growth", plans[1].Name)
	assert.Equal(t, []string{"a", "b"}, []string(plans[1].Features))
	assert.Equal(t, "Get Started", plans[0].CTA)
}

func TestPricingRepoMissingAndMalformedIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewPricingRepo(newTestDB(t))

	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, "8f14e45f-ceea-467f-a0e6-1b0c2f3a4d5e")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, "8f14e45f-ceea-467f-a0e6-1b0c2f3a4d5e")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestServiceRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewServiceRepo(newTestDB(t))

	svc := &models.ServiceOffering{Icon: "🚀", Title: "Custom SaaS", Description: "d", Image: "saas.png"}
	require.NoError(t, repo.Create(ctx, svc))

	got, err := repo.GetByID(ctx, svc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Custom SaaS", got.Title)

	got.Title = "Custom SaaS Development"
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Custom SaaS Development", list[0].Title)

	require.NoError(t, repo.Delete(ctx, svc.ID.String()))
	_, err = repo.GetByID(ctx, svc.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContentRepoUpsertKeepsOneRowPerSection(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepo(newTestDB(t))

	first, err := repo.Upsert(ctx, models.SectionHero, func(c *models.ContentSection) {
		c.Title = "VedixLab"
	})
	require.NoError(t, err)
	assert.False(t, first.HasContent())

	second, err := repo.Upsert(ctx, models.SectionHero, func(c *models.ContentSection) {
		c.Subtitle = "AI that ships"
		c.Content = datatypes.JSON(`{"cta":"Book a call"}`)
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "VedixLab", second.Title)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, `{"cta":"Book a call"}`, list[0].ContentString())

	_, err = repo.GetBySection(ctx, models.SectionAbout)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLeadRepoStatusAndRetention(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewLeadRepo(db)

	old := &models.Lead{Name: "A", Email: "a@x.io", ProjectType: "AI", BudgetRange: "$5k", Message: "m", Status: models.LeadStatusLost}
	fresh := &models.Lead{Name: "B", Email: "b@x.io", ProjectType: "Web", BudgetRange: "$1k", Message: "m"}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))
	assert.Equal(t, models.LeadStatusNew, fresh.Status)

	require.NoError(t, db.Model(&models.Lead{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().AddDate(0, 0, -90)).Error)

	updated, err := repo.UpdateStatus(ctx, fresh.ID.String(), models.LeadStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, updated.Status)

	lost, err := repo.List(ctx, models.LeadFilter{Status: models.LeadStatusLost})
	require.NoError(t, err)
	require.Len(t, lost, 1)

	n, err := repo.DeleteOlderThan(ctx, time.Now().AddDate(0, 0, -30),
		[]models.LeadStatus{models.LeadStatusLost, models.LeadStatusConverted})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	all, err := repo.List(ctx, models.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].Name)
}
