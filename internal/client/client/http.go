package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/common"
)

const maxMessageLen = 200

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	authHeader string
	authScheme string
	observer   Observer
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
		tokens:     TokenFunc(func() string { return "" }),
		authHeader: common.DefaultAuthHeader,
		authScheme: common.DefaultAuthScheme,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return c.authenticate(ctx, "login", "/login", creds)
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return c.authenticate(ctx, "register", "/register", creds)
}

func (c *HTTPClient) authenticate(ctx context.Context, op, path string, creds models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, op, http.MethodPost, path, creds, &resp, false)
	if err == nil && resp.Token == "" {
		err = fmt.Errorf("%s: %w: no token", op, ErrMalformedResponse)
	}
	if err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) AddMeal(ctx context.Context, meal models.Meal) (models.MealResponse, error) {
	var resp models.MealResponse
	if err := c.do(ctx, "add_meal", http.MethodPost, "/meal", meal, &resp, true); err != nil {
		return models.MealResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) GetMeals(ctx context.Context) ([]models.Meal, error) {
	var meals []models.Meal
	if err := c.do(ctx, "get_meals", http.MethodGet, "/meal", nil, &meals, true); err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

func (c *HTTPClient) GetMeal(ctx context.Context, id int) (models.Meal, error) {
	var meal models.Meal
	if err := c.do(ctx, "get_meal", http.MethodGet, mealPath(id), nil, &meal, false); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

func (c *HTTPClient) DeleteMeal(ctx context.Context, id int) (models.MealResponse, error) {
	var resp models.MealResponse
	if err := c.do(ctx, "delete_meal", http.MethodDelete, mealPath(id), nil, &resp, true); err != nil {
		return models.MealResponse{}, err
	}
	return resp, nil
}

func mealPath(id int) string {
	return "/meal/" + strconv.Itoa(id)
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, in, out any, emptyOK bool) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, path, in, out, emptyOK)
	c.observer.ObserveRequest(op, outcome(err), time.Since(start))
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, op, method, path string, in, out any, emptyOK bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" && c.authHeader != "" {
		v := token
		if c.authScheme != "" {
			v = c.authScheme + " " + token
		}
		req.Header.Set(c.authHeader, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(ctx, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if emptyOK {
			return nil
		}
		return fmt.Errorf("%s: %w: empty body", op, ErrMalformedResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
	}

	return nil
}

func transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// errorMessage pulls a human readable reason out of an error body.
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"message", "error"} {
			if r := gjson.GetBytes(body, key); r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	} else if s := strings.TrimSpace(string(body)); s != "" && len(s) <= maxMessageLen {
		return s
	}
	return http.StatusText(status)
}
