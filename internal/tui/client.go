package tui

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/assurelab/riskquote/internal/domain"
)

// RemoteClient asks the quote service for an estimate, so an interactive
// preview can be reconciled against the authoritative answer on demand.
type RemoteClient struct {
	baseURL string
	client  *fasthttp.Client
}

// NewRemoteClient creates a client for a quote service at baseURL, e.g.
// "http://localhost:8080".
func NewRemoteClient(baseURL string) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		client: &fasthttp.Client{
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

type remoteEstimateRequest struct {
	Profile domain.RiskProfile        `json:"profile"`
	Policy  domain.PolicyPricingInput `json:"policy"`
}

type remoteEstimateResponse struct {
	Assessment *domain.CompositeRiskAssessment `json:"assessment"`
	Quote      *domain.PremiumQuote            `json:"quote"`
}

// Estimate posts the inputs to the service's estimate endpoint.
func (c *RemoteClient) Estimate(profile domain.RiskProfile, pricing domain.PolicyPricingInput) (*domain.CompositeRiskAssessment, *domain.PremiumQuote, error) {
	body, err := json.Marshal(remoteEstimateRequest{Profile: profile, Policy: pricing})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode estimate request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/v1/estimate")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.client.Do(req, resp); err != nil {
		return nil, nil, fmt.Errorf("estimate request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, nil, fmt.Errorf("quote service returned %d: %s", resp.StatusCode(), resp.Body())
	}

	var out remoteEstimateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, nil, fmt.Errorf("failed to decode estimate response: %w", err)
	}
	return out.Assessment, out.Quote, nil
}
