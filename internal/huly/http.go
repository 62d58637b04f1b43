package huly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultTimeout bounds a single HTTP request to the workspace.
const DefaultTimeout = 30 * time.Second

// maxElapsed bounds the total retry window for one API call. Retries are
// a transport concern: the engine above never retries, so a call that
// exhausts this window fails for good.
const maxElapsed = 2 * time.Minute

// HTTPClient talks to a Huly workspace over its JSON document API.
type HTTPClient struct {
	baseURL   string
	workspace string
	token     string
	http      *http.Client
}

// NewHTTPClient creates a client for one workspace. baseURL is the
// platform endpoint (no trailing slash), token a bearer token for it.
func NewHTTPClient(baseURL, workspace, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:   baseURL,
		workspace: workspace,
		token:     token,
		http:      &http.Client{Timeout: timeout},
	}
}

// apiRequest is the wire shape of every document API call.
type apiRequest struct {
	Class           string `json:"class,omitempty"`
	Space           string `json:"space,omitempty"`
	ID              string `json:"id,omitempty"`
	Query           Query  `json:"query,omitempty"`
	Attributes      Attrs  `json:"attributes,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	AttachedTo      string `json:"attachedTo,omitempty"`
	AttachedToClass string `json:"attachedToClass,omitempty"`
	Collection      string `json:"collection,omitempty"`
}

// call POSTs one API method and returns the raw response body. 429 and
// 5xx responses are retried with exponential backoff; everything else is
// permanent.
func (c *HTTPClient) call(ctx context.Context, method string, req apiRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}
	url := fmt.Sprintf("%s/api/v1/%s/%s", c.baseURL, c.workspace, method)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	return backoff.RetryWithData(func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("build %s request: %w", method, err))
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(httpReq)
		if err != nil {
			// Network-level failures are worth a retry.
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: read response: %w", method, err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, fmt.Errorf("%s: status %d", method, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, backoff.Permanent(fmt.Errorf("%s: %s (status %d)", method, bytes.TrimSpace(body), resp.StatusCode))
		}
		return body, nil
	}, backoff.WithContext(b, ctx))
}

// FindOne implements Client. A missing document is (nil, nil).
func (c *HTTPClient) FindOne(ctx context.Context, class string, query Query) (Doc, error) {
	body, err := c.call(ctx, "findOne", apiRequest{Class: class, Query: query})
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}
	var doc Doc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("findOne: parse response: %w", err)
	}
	return doc, nil
}

// FindAll implements Client.
func (c *HTTPClient) FindAll(ctx context.Context, class string, query Query, opts *FindOptions) ([]Doc, error) {
	req := apiRequest{Class: class, Query: query}
	if opts != nil {
		req.Limit = opts.Limit
	}
	body, err := c.call(ctx, "findAll", req)
	if err != nil {
		return nil, err
	}
	var docs []Doc
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("findAll: parse response: %w", err)
	}
	return docs, nil
}

// CreateDoc implements Client.
func (c *HTTPClient) CreateDoc(ctx context.Context, class, space string, attrs Attrs) (string, error) {
	body, err := c.call(ctx, "createDoc", apiRequest{Class: class, Space: space, Attributes: attrs})
	if err != nil {
		return "", err
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("createDoc: parse response: %w", err)
	}
	return resp.ID, nil
}

// UpdateDoc implements Client.
func (c *HTTPClient) UpdateDoc(ctx context.Context, doc Doc, attrs Attrs) error {
	_, err := c.call(ctx, "updateDoc", apiRequest{
		Class:      doc.Class(),
		Space:      doc.Space(),
		ID:         doc.ID(),
		Attributes: attrs,
	})
	return err
}

// RemoveDoc implements Client.
func (c *HTTPClient) RemoveDoc(ctx context.Context, class, space, id string) error {
	_, err := c.call(ctx, "removeDoc", apiRequest{Class: class, Space: space, ID: id})
	return err
}

// AddCollection implements Client.
func (c *HTTPClient) AddCollection(ctx context.Context, class, space, attachedTo, attachedToClass, collection string, attrs Attrs) (string, error) {
	body, err := c.call(ctx, "addCollection", apiRequest{
		Class:           class,
		Space:           space,
		AttachedTo:      attachedTo,
		AttachedToClass: attachedToClass,
		Collection:      collection,
		Attributes:      attrs,
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("addCollection: parse response: %w", err)
	}
	return resp.ID, nil
}

// RemoveCollection implements Client.
func (c *HTTPClient) RemoveCollection(ctx context.Context, class, space, id string) error {
	_, err := c.call(ctx, "removeCollection", apiRequest{Class: class, Space: space, ID: id})
	return err
}
