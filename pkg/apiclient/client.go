package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HeaderRequestID 每個請求帶一個 request id，方便對照 server log
const HeaderRequestID = "X-Request-Id"

// Ack 後端通用回應 {success, message?}
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StatusError 非 2xx 回應
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// StatusCode errprocess.StatusCoder
func (e *StatusError) StatusCode() int { return e.Status }

// ServerMessage errprocess.StatusCoder
func (e *StatusError) ServerMessage() string { return e.Message }

// Client JSON-over-HTTP client
type Client struct {
	baseURL string
	timeout time.Duration
}

// New 建立 client
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// BaseURL 後端位置
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON GET path 並解析回應到 out
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, fiber.MethodGet, path, nil, out)
}

// PostJSON POST body (nil 表示無 body) 並解析回應到 out
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, fiber.MethodPost, path, body, out)
}

// PostAck POST 並回傳 {success, message}
func (c *Client) PostAck(ctx context.Context, path string, body any) (Ack, error) {
	var ack Ack
	err := c.PostJSON(ctx, path, body, &ack)
	return ack, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remain := time.Until(deadline); remain < timeout {
			timeout = remain
		}
	}

	requestID := uuid.New().String()
	var agent *fiber.Agent
	if method == fiber.MethodGet {
		agent = fiber.Get(c.baseURL + path)
	} else {
		agent = fiber.Post(c.baseURL + path)
	}
	agent.Set(HeaderRequestID, requestID).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).Timeout(timeout)
	if body != nil {
		agent.JSON(body)
	}

	start := time.Now()
	status, respBody, errs := agent.Bytes()
	metrics.ObserveAPIRequest(method, path, status, time.Since(start))

	logger.Log.Debug("api request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "%s %s", method, path)
	}

	if status < 200 || status > 299 {
		return &StatusError{Method: method, Path: path, Status: status, Message: serverMessage(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// serverMessage 非 2xx 時盡量取出 body 裡的 message / error
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
