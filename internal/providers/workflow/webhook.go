package workflow

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// WebhookClient posts commands to an n8n-style webhook endpoint, retrying on
// transport errors and 5xx answers.
type WebhookClient struct {
	rc *resty.Client
}

func NewWebhookClient(opts Options) *WebhookClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &WebhookClient{rc: rc}
}

func (c *WebhookClient) Trigger(ctx context.Context, method, hook string, payload any) (*Result, error) {
	req := c.rc.R().SetContext(ctx)
	if payload != nil {
		req = req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	resp, err := req.Execute(method, "/"+strings.TrimLeft(hook, "/"))

	res := &Result{}
	if resp != nil {
		res.StatusCode = resp.StatusCode()
		res.Body = resp.Body()
		if resp.Request != nil {
			res.Attempts = resp.Request.Attempt
		}
	}
	if err != nil {
		return res, err
	}
	if resp.IsError() {
		return res, &StatusError{StatusCode: resp.StatusCode(), Body: truncate(string(resp.Body()), 512)}
	}
	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
