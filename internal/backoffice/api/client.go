package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client é o único ponto de saída para o backend REST; todas as telas passam por ele
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// OnCall recebe método, status (0 = erro de transporte) e latência
	OnCall func(method string, status int, took time.Duration)
}

func New(base string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Error é uma resposta não-2xx; Detail vem do payload {detail: "..."} do backend
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend http %d: %s", e.Status, e.Detail)
}

// DetailOf extrai a mensagem que vai para o usuário, com fallback genérico
func DetailOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// RequestOption ajusta a requisição antes do envio
type RequestOption func(*http.Request)

// IfMatch envia o token de versão da linha para backends que suportam escrita condicional
func IfMatch(version string) RequestOption {
	return func(r *http.Request) {
		if version != "" {
			r.Header.Set("If-Match", `"`+version+`"`)
		}
	}
}

func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out, opts...)
}

// Ping considera o backend saudável se ele responder qualquer coisa abaixo de 500
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 500 {
		return fmt.Errorf("backend http %d", res.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any, opts ...RequestOption) error {
	target := c.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	c.observe(method, res.StatusCode, start)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if res.StatusCode >= 300 {
		return &Error{Status: res.StatusCode, Detail: errorDetail(raw, res.StatusCode)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.OnCall != nil {
		c.OnCall(method, status, time.Since(start))
	}
}

// errorDetail segue a ordem detail (string) -> message -> detail estruturado -> status
func errorDetail(raw []byte, status int) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err == nil {
		var s string
		if d, ok := payload["detail"]; ok && json.Unmarshal(d, &s) == nil && s != "" {
			return s
		}
		if m, ok := payload["message"]; ok && json.Unmarshal(m, &s) == nil && s != "" {
			return s
		}
		if d, ok := payload["detail"]; ok {
			var buf bytes.Buffer
			if json.Compact(&buf, d) == nil {
				return buf.String()
			}
		}
	}
	return http.StatusText(status)
}
