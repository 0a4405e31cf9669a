// Package runtime is the execution engine generated clients call into. It
// serializes bound arguments, extracts file uploads, issues the HTTP request
// (JSON or GraphQL multipart) and classifies failures.
package runtime

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
)

// BaseClient executes GraphQL operations against a single endpoint.
// Generated clients embed it. Concurrent calls share no mutable state beyond
// the transport handle, whose thread-safety is the transport's concern.
type BaseClient struct {
	url        string
	headers    http.Header
	httpClient *http.Client
	owned      bool
}

// NewBaseClient returns a client for url. headers are applied to every
// request. A nil httpClient makes the base client own a fresh transport,
// released by Close; an injected httpClient is never closed by this layer.
func NewBaseClient(url string, headers http.Header, httpClient *http.Client) *BaseClient {
	owned := false
	if httpClient == nil {
		httpClient = &http.Client{}
		owned = true
	}
	return &BaseClient{
		url:        url,
		headers:    headers,
		httpClient: httpClient,
		owned:      owned,
	}
}

// Close releases the transport the client owns. Injected transports are
// left untouched. Close is safe to defer on every exit path.
func (c *BaseClient) Close() {
	if c.owned {
		c.httpClient.CloseIdleConnections()
	}
}

// operationPayload is the GraphQL-over-HTTP POST body.
type operationPayload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Execute normalizes variables and issues exactly one HTTP request: a
// multipart request when any file upload is referenced, a plain JSON POST
// otherwise. The unparsed transport response is returned for GetData to
// inspect. There is no retry and no timeout logic at this layer.
func (c *BaseClient) Execute(ctx context.Context, query string, variables map[string]any) (*http.Response, error) {
	normalized := serializeMap(variables)

	files := newFileMap()
	nulled := extractFiles("variables", normalized, files)

	if !files.empty() {
		payload := operationPayload{Query: query, Variables: nulled.(map[string]any)}
		return c.executeMultipart(ctx, payload, files)
	}
	return c.executeJSON(ctx, operationPayload{Query: query, Variables: normalized})
}

// GetData classifies the transport response. A non-success status yields
// *HTTPError without any attempt to parse the body. A body that is not a
// JSON object with a "data" key yields *InvalidResponseError. A non-empty
// "errors" array yields *GraphQLMultiError carrying the (possibly partial)
// data. Otherwise the data mapping is returned.
func (c *BaseClient) GetData(resp *http.Response) (map[string]any, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Response: body}
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, &InvalidResponseError{}
		}
		defer func() { _ = gr.Close() }()
		reader = gr
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &InvalidResponseError{Response: body}
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &InvalidResponseError{Response: body}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &InvalidResponseError{Response: body}
	}
	rawData, ok := obj["data"]
	if !ok {
		return nil, &InvalidResponseError{Response: body}
	}

	data, _ := rawData.(map[string]any)
	if entries, ok := obj["errors"].([]any); ok && len(entries) > 0 {
		return nil, newGraphQLMultiError(entries, data)
	}
	return data, nil
}

func (c *BaseClient) executeJSON(ctx context.Context, payload operationPayload) (*http.Response, error) {
	if payload.Variables == nil {
		payload.Variables = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("graphql: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req)
	// Some transports cannot infer a content type from a raw byte body.
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// executeMultipart implements the GraphQL multipart request specification:
// an "operations" field with the file-nulled payload, a "map" field from
// file index to the dotted paths where that file occurs, and one file part
// per distinct upload under its index key.
func (c *BaseClient) executeMultipart(ctx context.Context, payload operationPayload, files *fileMap) (*http.Response, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	operations, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("graphql: encoding operations: %w", err)
	}
	if err := w.WriteField("operations", string(operations)); err != nil {
		return nil, err
	}

	pathsByIndex, err := json.Marshal(files.indexPaths())
	if err != nil {
		return nil, fmt.Errorf("graphql: encoding file map: %w", err)
	}
	if err := w.WriteField("map", string(pathsByIndex)); err != nil {
		return nil, err
	}

	for i, upload := range files.order {
		if upload.File == nil {
			return nil, fmt.Errorf("graphql: upload %d has no file reader", i)
		}
		part, err := createFilePart(w, strconv.Itoa(i), upload)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, upload.File); err != nil {
			return nil, fmt.Errorf("graphql: reading upload %d: %w", i, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.httpClient.Do(req)
}

func createFilePart(w *multipart.Writer, index string, upload *Upload) (io.Writer, error) {
	filename := upload.Filename
	if filename == "" {
		filename = index
	}
	if upload.ContentType == "" {
		return w.CreateFormFile(index, filename)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, index, filename))
	header.Set("Content-Type", upload.ContentType)
	return w.CreatePart(header)
}

func (c *BaseClient) applyHeaders(req *http.Request) {
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
