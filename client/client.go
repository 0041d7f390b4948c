// Package client talks to an asset gateway and to the signed URLs it hands
// out.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultServer is used when no server address is configured.
const DefaultServer = "http://localhost"

// StatusError is returned for unexpected HTTP statuses.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
}

// Asset is the answer to a create request.
type Asset struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

// Client is an asset gateway client.
type Client struct {
	Server string
	HTTP   *http.Client
}

// New returns a client for server.
func New(server string) *Client {
	if server == "" {
		server = DefaultServer
	}
	return &Client{Server: server, HTTP: cleanhttp.DefaultClient()}
}

// Create asks the gateway for a new asset and its upload URL.
func (c *Client) Create(ctx context.Context) (Asset, error) {
	var a Asset
	err := c.doJSON(ctx, "create", "POST", c.Server+"/asset", http.StatusCreated, &a)
	if err == nil && (a.ID == "" || a.UploadURL == "") {
		err = fmt.Errorf("create: incomplete response %+v", a)
	}
	return a, err
}

// Confirm asks the gateway whether id has been uploaded.
func (c *Client) Confirm(ctx context.Context, id string) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, "confirm", "PUT", c.Server+"/asset/"+id, http.StatusOK, &status); err != nil {
		return err
	}
	if status.Status != "uploaded" {
		return fmt.Errorf("confirm: unexpected status %q", status.Status)
	}
	return nil
}

// DownloadURL asks the gateway for a download URL. A timeout of zero leaves
// the gateway default in place.
func (c *Client) DownloadURL(ctx context.Context, id string, timeout int) (string, error) {
	target := c.Server + "/asset/" + id
	if timeout > 0 {
		target += "?timeout=" + strconv.Itoa(timeout)
	}
	var body struct {
		DownloadURL string `json:"download_url"`
	}
	err := c.doJSON(ctx, "download url", "GET", target, http.StatusOK, &body)
	return body.DownloadURL, err
}

// Put uploads data to a signed upload URL.
func (c *Client) Put(ctx context.Context, url string, data []byte) error {
	req, err := http.NewRequest("PUT", url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expect("upload", resp, http.StatusOK)
}

// Get fetches the content behind a signed download URL.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := expect("download", resp, http.StatusOK); err != nil {
		return nil, err
	}
	return ioutil.ReadAll(resp.Body)
}

// Upload runs the whole upload flow for data and returns the asset id.
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	a, err := c.Create(ctx)
	if err != nil {
		return "", err
	}
	if err := c.Put(ctx, a.UploadURL, data); err != nil {
		return "", err
	}
	if err := c.Confirm(ctx, a.ID); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Download fetches the content of asset id.
func (c *Client) Download(ctx context.Context, id string, timeout int) ([]byte, error) {
	url, err := c.DownloadURL(ctx, id, timeout)
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, url)
}

func (c *Client) doJSON(ctx context.Context, op, method, url string, code int, v interface{}) error {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expect(op, resp, code); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func expect(op string, resp *http.Response, code int) error {
	if resp.StatusCode == code {
		return nil
	}
	body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Op: op, Code: resp.StatusCode, Body: string(body)}
}
