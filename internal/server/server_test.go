package server

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/domain"
	"github.com/assurelab/riskquote/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(&store.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(catalog.MustDefault(), st, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		ctx.Request.SetBody(data)
	}
	s.HandleRequest(&ctx)
	return &ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(t, s, fasthttp.MethodGet, "/healthz", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "ok", string(ctx.Response.Body()))
}

func TestEstimate(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/v1/estimate", estimateRequest{
		Profile: domain.RiskProfile{Age: 30, Occupation: "technology"},
		Policy: domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(100000),
		},
	})
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp estimateResponse
	decodeBody(t, ctx, &resp)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, "1200", resp.Quote.FinalPremium.String())
	assert.Equal(t, 44, resp.Assessment.Score)
	assert.Equal(t, domain.BandModerate, resp.Assessment.Band)
}

func TestEstimateRejectsBadBody(t *testing.T) {
	s := newTestServer(t)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/v1/estimate")
	ctx.Request.SetBodyString("{not json")
	s.HandleRequest(&ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestEstimateRejectsInvalidPricing(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/v1/estimate", estimateRequest{
		Profile: domain.RiskProfile{Age: 30},
		Policy: domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.Zero,
		},
	})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var resp errorResponse
	decodeBody(t, ctx, &resp)
	assert.Contains(t, resp.Message, "coverage amount")
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestServer(t)

	created := doRequest(t, s, fasthttp.MethodPost, "/v1/profiles", createProfileRequest{
		Customer: "alice",
		Profile:  domain.RiskProfile{Age: 30, Occupation: "technology"},
	})
	require.Equal(t, fasthttp.StatusCreated, created.Response.StatusCode())

	var p store.Profile
	decodeBody(t, created, &p)
	require.NotEmpty(t, p.ID)

	got := doRequest(t, s, fasthttp.MethodGet, "/v1/profiles/"+p.ID, nil)
	require.Equal(t, fasthttp.StatusOK, got.Response.StatusCode())
	var loaded store.Profile
	decodeBody(t, got, &loaded)
	assert.Equal(t, "alice", loaded.Customer)
	assert.Equal(t, 30, loaded.Attrs.Age)

	updated := doRequest(t, s, fasthttp.MethodPut, "/v1/profiles/"+p.ID,
		domain.RiskProfile{Age: 31, Smoker: true})
	require.Equal(t, fasthttp.StatusOK, updated.Response.StatusCode())
	decodeBody(t, updated, &loaded)
	assert.Equal(t, 31, loaded.Attrs.Age)
	assert.True(t, loaded.Attrs.Smoker)
}

func TestCreateProfileRequiresCustomer(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(t, s, fasthttp.MethodPost, "/v1/profiles", createProfileRequest{
		Profile: domain.RiskProfile{Age: 30},
	})
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestGetMissingProfile(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(t, s, fasthttp.MethodGet, "/v1/profiles/no-such-id", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestProfileQuoteRecordsAudit(t *testing.T) {
	s := newTestServer(t)

	created := doRequest(t, s, fasthttp.MethodPost, "/v1/profiles", createProfileRequest{
		Customer: "alice",
		Profile:  domain.RiskProfile{Age: 30, Occupation: "technology"},
	})
	require.Equal(t, fasthttp.StatusCreated, created.Response.StatusCode())
	var p store.Profile
	decodeBody(t, created, &p)

	quoted := doRequest(t, s, fasthttp.MethodPost, "/v1/profiles/"+p.ID+"/quote",
		domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(100000),
		})
	require.Equal(t, fasthttp.StatusOK, quoted.Response.StatusCode())
	var resp estimateResponse
	decodeBody(t, quoted, &resp)
	assert.Equal(t, "1200", resp.Quote.FinalPremium.String())

	audit := doRequest(t, s, fasthttp.MethodGet, "/v1/profiles/"+p.ID+"/audit", nil)
	require.Equal(t, fasthttp.StatusOK, audit.Response.StatusCode())
	var entries []*store.AuditEntry
	decodeBody(t, audit, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, store.ActionProfileCreated, entries[0].Action)
	assert.Equal(t, store.ActionQuoteComputed, entries[1].Action)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	ctx := doRequest(t, s, fasthttp.MethodGet, "/v1/nope", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestSwapCatalogChangesEstimates(t *testing.T) {
	s := newTestServer(t)

	req := estimateRequest{
		Profile: domain.RiskProfile{Age: 30, Smoker: true},
		Policy: domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(100000),
		},
	}
	before := doRequest(t, s, fasthttp.MethodPost, "/v1/estimate", req)
	require.Equal(t, fasthttp.StatusOK, before.Response.StatusCode())
	var first estimateResponse
	decodeBody(t, before, &first)

	// A harsher smoker loading must raise the quote after the swap.
	harsher, err := catalog.MustDefault().WithMultiplier("smoker", decimal.NewFromFloat(2.5))
	require.NoError(t, err)
	s.SwapCatalog(harsher)

	after := doRequest(t, s, fasthttp.MethodPost, "/v1/estimate", req)
	require.Equal(t, fasthttp.StatusOK, after.Response.StatusCode())
	var second estimateResponse
	decodeBody(t, after, &second)

	assert.True(t, second.Quote.FinalPremium.GreaterThan(first.Quote.FinalPremium),
		"expected %s > %s", second.Quote.FinalPremium, first.Quote.FinalPremium)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	doRequest(t, s, fasthttp.MethodPost, "/v1/estimate", estimateRequest{
		Policy: domain.PolicyPricingInput{
			PolicyType:     domain.PolicyAuto,
			CoverageAmount: decimal.NewFromInt(20000),
		},
	})

	ctx := doRequest(t, s, fasthttp.MethodGet, "/metrics", nil)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "riskquote_quotes_total")
}
