package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	attrs := &domain.RiskProfile{Age: 30, Occupation: "technology", Smoker: true}
	p, err := s.CreateProfile(ctx, "alice", attrs)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	loaded, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Customer)
	assert.Equal(t, 30, loaded.Attrs.Age)
	assert.True(t, loaded.Attrs.Smoker)
}

func TestCreateProfileRejectsInvalidAttributes(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateProfile(context.Background(), "bob", &domain.RiskProfile{CreditScore: 200})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateProfileSupersedesInPlace(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProfile(ctx, "alice", &domain.RiskProfile{Age: 30})
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, p.ID, &domain.RiskProfile{Age: 31, Smoker: true})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID, "update keeps the same identity")
	assert.Equal(t, 31, updated.Attrs.Age)
	assert.True(t, updated.Attrs.Smoker)

	// Still exactly one profile for the customer: edits overwrite.
	profiles, err := s.ListProfiles(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestUpdateMissingProfile(t *testing.T) {
	s := openTestStore(t)

	_, err := s.UpdateProfile(context.Background(), "no-such-id", &domain.RiskProfile{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetMissingProfile(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetProfile(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAuditTrail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProfile(ctx, "alice", &domain.RiskProfile{Age: 30})
	require.NoError(t, err)
	_, err = s.UpdateProfile(ctx, p.ID, &domain.RiskProfile{Age: 30, Smoker: true})
	require.NoError(t, err)

	engine := calculation.NewEngine()
	loaded, err := s.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	_, quote, err := engine.Estimate(&loaded.Attrs, domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)
	s.RecordQuote(ctx, p.ID, quote)

	entries, err := s.ListAudit(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ActionProfileCreated, entries[0].Action)
	assert.Equal(t, ActionProfileUpdated, entries[1].Action)
	assert.Equal(t, ActionQuoteComputed, entries[2].Action)
	assert.Contains(t, entries[2].Detail, "life")
}
