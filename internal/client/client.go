package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alovak/cardcheck/validator"
)

// ErrNotFound is returned when the server does not know the requested card type.
var ErrNotFound = errors.New("not found")

// Client talks to a running cardcheck HTTP API.
type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *Client) Validate(ctx context.Context, number, cardType string) (validator.ValidateResponse, error) {
	out := validator.ValidateResponse{}

	b, err := json.Marshal(validator.ValidateRequest{Number: number, CardType: cardType})
	if err != nil {
		return out, fmt.Errorf("encode validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/validate", strings.NewReader(string(b)))
	if err != nil {
		return out, fmt.Errorf("build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, &out); err != nil {
		return out, fmt.Errorf("validate: %w", err)
	}
	return out, nil
}

func (c *Client) CardTypes(ctx context.Context) ([]validator.CardTypeResponse, error) {
	var out []validator.CardTypeResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/card-types/", nil)
	if err != nil {
		return nil, fmt.Errorf("build card types request: %w", err)
	}

	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("card types: %w", err)
	}
	return out, nil
}

func (c *Client) CardType(ctx context.Context, id string) (validator.CardTypeResponse, error) {
	out := validator.CardTypeResponse{}

	target := c.Base + "/card-types/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return out, fmt.Errorf("build card type request: %w", err)
	}

	if err := c.do(req, &out); err != nil {
		return out, fmt.Errorf("card type %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
