package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openmuse/gallery/domain"
)

const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// Client wraps HTTP calls to the external artwork catalog. It carries no
// retry policy; throttling and backoff live in the fetch pipeline.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.ArtworkCatalog = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type searchResponse struct {
	Total     int64   `json:"total"`
	ObjectIDs []int64 `json:"objectIDs"`
}

type departmentsResponse struct {
	Departments []domain.Department `json:"departments"`
}

func (c *Client) SearchIDs(ctx context.Context, query string, imagesOnly bool) ([]int64, error) {
	q := url.Values{}
	q.Set("q", query)
	if imagesOnly {
		q.Set("hasImages", "true")
	}

	var res searchResponse
	if err := c.getJSON(ctx, "/search?"+q.Encode(), &res); err != nil {
		return nil, err
	}
	// The catalog reports zero matches with a null objectIDs field.
	if res.ObjectIDs == nil {
		return []int64{}, nil
	}
	return res.ObjectIDs, nil
}

func (c *Client) GetObject(ctx context.Context, id int64) (domain.Artwork, error) {
	var res domain.Artwork
	if err := c.getJSON(ctx, "/objects/"+strconv.FormatInt(id, 10), &res); err != nil {
		return domain.Artwork{}, err
	}
	return res, nil
}

func (c *Client) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var res departmentsResponse
	if err := c.getJSON(ctx, "/departments", &res); err != nil {
		return nil, err
	}
	return res.Departments, nil
}

func (c *Client) ObjectIDsByDepartment(ctx context.Context, departmentID int64) ([]int64, error) {
	q := url.Values{}
	q.Set("departmentIds", strconv.FormatInt(departmentID, 10))

	var res searchResponse
	if err := c.getJSON(ctx, "/objects?"+q.Encode(), &res); err != nil {
		return nil, err
	}
	if res.ObjectIDs == nil {
		return []int64{}, nil
	}
	return res.ObjectIDs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: catalog returned %d for %s", domain.ErrNetwork, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrNetwork, err)
	}
	return nil
}
