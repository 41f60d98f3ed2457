package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"cryptodash/src/config"
	"cryptodash/src/utils"
	"cryptodash/src/utils/requests"
)

type MarketDataClientI interface {
	GetRanking(ctx context.Context, limit int) ([]Quote, error)
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}

type MarketDataClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
}

// NewClient creates a new instance of MarketDataClient
func NewClient(cfg *config.Config) *MarketDataClient {
	api := requests.NewExternalAPIService()
	return &MarketDataClient{
		API:     api,
		BaseURL: cfg.ExternalClients.MarketData.BaseURL,
		APIKey:  cfg.ExternalClients.MarketData.APIKey,
	}
}

// GetRanking fetches the top-N priced instruments from the provider.
func (c *MarketDataClient) GetRanking(ctx context.Context, limit int) ([]Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/crypto/prices", c.BaseURL)

	params := url.Values{}
	params.Add("limit", strconv.Itoa(limit))

	resp, err := c.API.Get(ctx, endpoint, c.APIKey, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rankingResponse GetRankingResponse
	if err := json.Unmarshal(responseBody, &rankingResponse); err != nil {
		return nil, err
	}

	return rankingResponse.Results, nil
}

// GetQuote fetches the latest quote for a single symbol.
func (c *MarketDataClient) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/crypto/prices/%s", c.BaseURL, symbol)

	resp, err := c.API.Get(ctx, endpoint, c.APIKey, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quote Quote
	if err := json.Unmarshal(responseBody, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
