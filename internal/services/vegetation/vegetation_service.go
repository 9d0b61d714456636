package vegetation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carbonx/backend/internal/config"
	"github.com/go-redis/redis/v8"
)

const analyzeEndpoint = "/analyze"

// cacheTTL bounds how long a cached analysis stays valid. Satellite indices
// for a fixed window do not change, but tile URLs expire server-side.
const cacheTTL = 6 * time.Hour

// AnalysisRequest is a bounding box in signed decimal degrees plus an
// optional year range. Zero is a legal coordinate (equator, prime meridian),
// so no field carries a required binding; a degenerate box is the analysis
// service's call to reject.
type AnalysisRequest struct {
	North     float64 `json:"north"`
	South     float64 `json:"south"`
	East      float64 `json:"east"`
	West      float64 `json:"west"`
	StartYear int     `json:"startYear,omitempty"`
	EndYear   int     `json:"endYear,omitempty"`
}

// AnalysisResult is the NDVI summary returned by the analysis service. It is
// consumed for display only and never enters workflow state.
type AnalysisResult struct {
	NDVIMean         float64 `json:"ndvi_mean,omitempty"`
	NDVIStdDev       float64 `json:"ndvi_stddev,omitempty"`
	StartNDVI        float64 `json:"start_ndvi,omitempty"`
	EndNDVI          float64 `json:"end_ndvi,omitempty"`
	NDVIChange       float64 `json:"ndvi_change,omitempty"`
	VegetationStatus string  `json:"vegetation_status,omitempty"`
	VegetationChange string  `json:"vegetation_change,omitempty"`
	TimePeriod       string  `json:"time_period,omitempty"`
	AreaHectares     float64 `json:"area_hectares,omitempty"`
	ImageURL         string  `json:"ndvi_image_url,omitempty"`
	StartImageURL    string  `json:"start_image_url,omitempty"`
	EndImageURL      string  `json:"end_image_url,omitempty"`
	DiffImageURL     string  `json:"diff_image_url,omitempty"`
	Bounds           struct {
		North float64 `json:"north"`
		South float64 `json:"south"`
		East  float64 `json:"east"`
		West  float64 `json:"west"`
	} `json:"bounds"`
}

// VegetationService is a client for the stateless NDVI analysis service.
// Results are cached in Redis when a cache is configured; the analysis for
// a fixed bounding box and year range is deterministic and slow to compute.
type VegetationService struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
}

// NewVegetationService creates a new analysis client. cache may be nil.
func NewVegetationService(cfg config.VegetationConfig, cache *redis.Client) *VegetationService {
	return &VegetationService{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cache:      cache,
	}
}

// Analyze runs an NDVI analysis for the given bounding box and year range.
func (s *VegetationService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	key := cacheKey(req)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var result AnalysisResult
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+analyzeEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("vegetation analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("vegetation analysis failed: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("vegetation analysis failed with status %d", resp.StatusCode)
	}

	var result AnalysisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	if s.cache != nil {
		// Cache failures are invisible to the caller
		s.cache.Set(ctx, key, respBody, cacheTTL)
	}

	return &result, nil
}

func cacheKey(req AnalysisRequest) string {
	return fmt.Sprintf("ndvi:%.4f:%.4f:%.4f:%.4f:%d:%d",
		req.North, req.South, req.East, req.West, req.StartYear, req.EndYear)
}
