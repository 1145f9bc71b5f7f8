package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swoga/tplink-exporter/model"
)

// Options describes how to reach the router admin interface.
type Options struct {
	Host      string
	Username  string
	Password  string
	HTTPS     bool
	VerifySSL bool
}

// Client speaks the router's JSON admin interface. The per-scrape context
// deadline bounds every call; the client-level timeout is only a safety net.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	log      zerolog.Logger
}

func New(opts Options, logger zerolog.Logger) *Client {
	scheme := "http"
	if opts.HTTPS {
		scheme = "https"
	}
	return &Client{
		baseURL:  fmt.Sprintf("%s://%s/api/v1", scheme, opts.Host),
		username: opts.Username,
		password: opts.Password,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 5,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: !opts.VerifySSL},
			},
			Timeout: 5 * time.Minute,
		},
		log: logger,
	}
}

func (c *Client) request(ctx context.Context, token, method, path string, payload interface{}) (*http.Response, error) {
	var buf io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(body)
	}

	url := c.baseURL + path
	c.log.Debug().Str("method", method).Str("url", url).Msg("send request")

	req, err := http.NewRequestWithContext(ctx, method, url, buf)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch res.StatusCode {
	case http.StatusOK:
		return res, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, &AuthError{Message: strings.TrimSpace(string(body))}
	default:
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		c.log.Error().Int("status", res.StatusCode).Str("response", string(body)).Msg("unexpected response from router")
		return nil, &ProtocolError{StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected status %d", res.StatusCode)}
	}
}

func decode(res *http.Response, v interface{}) error {
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return &ProtocolError{StatusCode: res.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// Login authenticates and returns the session token from the X-Auth-Token
// response header. The router also reports rejected credentials as a 200
// with a non-zero error code in the body.
func (c *Client) Login(ctx context.Context) (string, error) {
	res, err := c.request(ctx, "", http.MethodPost, "/login", &model.LoginRequest{
		Username: c.username,
		Password: c.password,
	})
	if err != nil {
		return "", err
	}

	token := res.Header.Get("X-Auth-Token")

	var data model.LoginResponse
	if err := decode(res, &data); err != nil {
		return "", err
	}
	if data.Error != 0 {
		return "", &AuthError{Code: data.Error, Message: data.Message}
	}
	if token == "" {
		return "", &ProtocolError{StatusCode: res.StatusCode, Err: errors.New("login response missing X-Auth-Token header")}
	}

	c.log.Debug().Msg("login successful")
	return token, nil
}

// Logout releases the router's single admin session slot.
func (c *Client) Logout(ctx context.Context, token string) error {
	res, err := c.request(ctx, token, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	res.Body.Close()
	return nil
}

func (c *Client) Status(ctx context.Context, token string) (*model.RouterStatus, error) {
	res, err := c.request(ctx, token, http.MethodGet, "/status", nil)
	if err != nil {
		return nil, err
	}

	var data model.RouterStatus
	if err := decode(res, &data); err != nil {
		return nil, err
	}
	data.Normalize()
	return &data, nil
}

func (c *Client) Clients(ctx context.Context, token string) ([]model.Device, error) {
	res, err := c.request(ctx, token, http.MethodGet, "/clients", nil)
	if err != nil {
		return nil, err
	}

	var data []model.Device
	if err := decode(res, &data); err != nil {
		return nil, err
	}
	return data, nil
}
