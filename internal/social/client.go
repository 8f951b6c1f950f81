package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// Client talks to the likes/comments backend.
//
// The backend signals creation success with HTTP 201, which some transport
// stacks route through their error handler. Both POST methods therefore
// accept 201 unconditionally, and when its body cannot be decoded they fall
// back to echoing the request payload as the success value.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.SocialGateway = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) GetLikes(ctx context.Context, itemID string) (domain.Like, error) {
	q := url.Values{}
	q.Set("item_id", itemID)

	resp, err := c.get(ctx, "/likes?"+q.Encode())
	if err != nil {
		return domain.Like{}, err
	}
	defer resp.Body.Close()

	// An item nobody liked yet is not an error, just a zero count.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return domain.Like{ItemID: itemID}, nil
	}
	if resp.StatusCode >= 400 {
		return domain.Like{}, fmt.Errorf("%w: social backend returned %d", domain.ErrNetwork, resp.StatusCode)
	}

	var res domain.Like
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return domain.Like{}, fmt.Errorf("%w: decode likes: %v", domain.ErrNetwork, err)
	}
	if res.ItemID == "" {
		res.ItemID = itemID
	}
	return res, nil
}

func (c *Client) PostLike(ctx context.Context, like domain.Like) (domain.Like, error) {
	var res domain.Like
	if err := c.postJSON(ctx, "/likes", like, &res, like); err != nil {
		return domain.Like{}, err
	}
	return res, nil
}

func (c *Client) GetComments(ctx context.Context, itemID string) ([]domain.Comment, error) {
	q := url.Values{}
	q.Set("item_id", itemID)

	resp, err := c.get(ctx, "/comments?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The backend answers 400 for items without comments. Treat as empty.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return []domain.Comment{}, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: social backend returned %d", domain.ErrNetwork, resp.StatusCode)
	}

	var res []domain.Comment
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decode comments: %v", domain.ErrNetwork, err)
	}
	if res == nil {
		res = []domain.Comment{}
	}
	return res, nil
}

func (c *Client) PostComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	var res domain.Comment
	if err := c.postJSON(ctx, "/comments", comment, &res, comment); err != nil {
		return domain.Comment{}, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	return resp, nil
}

// postJSON posts the payload and decodes the response into out. fallback is
// used as the result for a 201 whose body does not decode.
func (c *Client) postJSON(ctx context.Context, path string, payload, out, fallback any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		data, err := io.ReadAll(resp.Body)
		if err == nil {
			err = json.Unmarshal(data, out)
		}
		if err != nil {
			// 201 is a success even with an unusable body; reuse the
			// request payload as the server state.
			logrus.Warnf("social backend returned 201 with undecodable body for %s: %v", path, err)
			data, err := json.Marshal(fallback)
			if err != nil {
				return fmt.Errorf("%w: encode fallback: %v", domain.ErrNetwork, err)
			}
			return json.Unmarshal(data, out)
		}
		return nil
	case resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode: %v", domain.ErrNetwork, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: social backend returned %d for %s", domain.ErrNetwork, resp.StatusCode, path)
	}
}
