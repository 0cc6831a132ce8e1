package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/bayescalc/internal/errors"
)

const csrfTokenField = "csrf_token"

// Client is an HTTP client with a cookie jar that knows how to fill in the CSRF token of the server's forms.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		req, err := c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil)
		if err != nil {
			return errors.Wrap(err, "create request")
		}
		var resp *http.Response
		if resp, err = c.client.Do(req); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready", slog.String("path", urlPath))
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	return c.do(req)
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return readDocument(resp)
}

// SubmitForm fetches the page at formURLPath, fills the CSRF token of the form posting to formActionURLPath and
// submits it with values. Redirects are followed and the final response is returned as a document.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	return c.submitForm(ctx, formURLPath, formActionURLPath, values, nil)
}

// SubmitFormHTMX submits the form like [Client.SubmitForm] but as htmx does, so the response is a fragment.
func (c *Client) SubmitFormHTMX(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	return c.submitForm(ctx, formURLPath, formActionURLPath, values, http.Header{"Hx-Request": {"true"}})
}

func (c *Client) submitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
	header http.Header,
) (*goquery.Document, error) {
	csrfToken, err := c.formCSRFToken(ctx, formURLPath, formActionURLPath)
	if err != nil {
		return nil, err
	}
	formData := neturl.Values{}
	for k, v := range values {
		formData[k] = v
	}
	formData.Set(csrfTokenField, csrfToken)

	var req *http.Request
	if req, err = c.newRequestWithContext(
		ctx,
		http.MethodPost,
		formActionURLPath,
		strings.NewReader(formData.Encode()),
	); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.do(req); err != nil {
		return nil, err
	}
	return readDocument(resp)
}

// UploadFile submits the multipart form posting to formActionURLPath with a single file field.
func (c *Client) UploadFile(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	fieldName string,
	fileName string,
	content []byte,
) (*goquery.Document, error) {
	csrfToken, err := c.formCSRFToken(ctx, formURLPath, formActionURLPath)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err = mw.WriteField(csrfTokenField, csrfToken); err != nil {
		return nil, errors.Wrap(err, "write csrf token field")
	}
	var part io.Writer
	if part, err = mw.CreateFormFile(fieldName, fileName); err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err = part.Write(content); err != nil {
		return nil, errors.Wrap(err, "write form file")
	}
	if err = mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, &body); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var resp *http.Response
	if resp, err = c.do(req); err != nil {
		return nil, err
	}
	return readDocument(resp)
}

// PostJSON posts in as JSON to urlPath and returns the response. The caller closes the body.
func (c *Client) PostJSON(ctx context.Context, urlPath string, in any) (*http.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request body")
	}
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, urlPath, bytes.NewReader(body)); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) formCSRFToken(ctx context.Context, formURLPath, formActionURLPath string) (string, error) {
	doc, err := c.GetDoc(ctx, formURLPath)
	if err != nil {
		return "", errors.Wrap(err, "get document")
	}
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	csrfToken, ok := doc.Find(formSelector).Find("input[name=" + csrfTokenField + "]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("action", formActionURLPath))
	}
	return csrfToken, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request", slog.String("path", req.URL.Path))
	}
	return resp, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}

func readDocument(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}
