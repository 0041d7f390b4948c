package client

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ReconfigureIO/asset-gateway/routes"
	"github.com/ReconfigureIO/asset-gateway/service/assets"
	"github.com/ReconfigureIO/asset-gateway/service/storage/s3"
	"github.com/gin-gonic/gin"
	"gotest.tools/assert"
)

// memS3 is a path-style S3 stand-in that honours presigned expiry.
type memS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	offset  time.Duration
}

func (m *memS3) advance(d time.Duration) {
	m.mu.Lock()
	m.offset += d
	m.mu.Unlock()
}

func (m *memS3) expired(q url.Values) bool {
	if q.Get("X-Amz-Date") == "" {
		return false
	}
	signed, err := time.Parse("20060102T150405Z", q.Get("X-Amz-Date"))
	if err != nil {
		return true
	}
	seconds, err := strconv.Atoi(q.Get("X-Amz-Expires"))
	if err != nil {
		return true
	}
	return time.Now().Add(m.offset).After(signed.Add(time.Duration(seconds) * time.Second))
}

// missingSignedHeader returns the first signed header, other than host, that
// the request does not carry.
func missingSignedHeader(r *http.Request) string {
	signed := r.URL.Query().Get("X-Amz-SignedHeaders")
	if signed == "" {
		return ""
	}
	for _, h := range strings.Split(signed, ";") {
		if h != "host" && r.Header.Get(h) == "" {
			return h
		}
	}
	return ""
}

func (m *memS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/assets/")
	if r.Method != http.MethodHead && m.expired(r.URL.Query()) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<Error><Code>AccessDenied</Code><Message>Request has expired</Message></Error>"))
		return
	}
	if h := missingSignedHeader(r); h != "" {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<Error><Code>SignatureDoesNotMatch</Code><Message>missing signed header " + h + "</Message></Error>"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, _ := ioutil.ReadAll(r.Body)
		m.objects[key] = body
	case http.MethodHead:
		if _, ok := m.objects[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
		}
	case http.MethodGet:
		body, ok := m.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newGateway(t *testing.T, storageURL string) *httptest.Server {
	gin.SetMode(gin.TestMode)

	var gw *assets.Gateway
	if storageURL == "" {
		gw = assets.New(nil)
	} else {
		provider, err := s3.New(s3.ServiceConfig{
			Bucket:          "assets",
			Region:          "eu-west-1",
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
			Endpoint:        storageURL,
			ForcePathStyle:  true,
		})
		assert.NilError(t, err)
		gw = assets.New(provider)
	}

	r := routes.NewEngine(nil)
	routes.SetupRoutes(r, gw)
	return httptest.NewServer(r)
}

func TestUploadAndDownload(t *testing.T) {
	bucket := &memS3{objects: map[string][]byte{}}
	storageServer := httptest.NewServer(bucket)
	defer storageServer.Close()
	gateway := newGateway(t, storageServer.URL)
	defer gateway.Close()

	ctx := context.Background()
	c := New(gateway.URL)

	a, err := c.Create(ctx)
	assert.NilError(t, err)
	assert.Equal(t, len(a.ID), 32)
	u, err := url.Parse(a.UploadURL)
	assert.NilError(t, err)
	assert.Equal(t, u.Scheme+"://"+u.Host, storageServer.URL)

	// Not uploaded yet.
	err = c.Confirm(ctx, a.ID)
	assert.Equal(t, err.(*StatusError).Code, http.StatusNotFound)

	assert.Equal(t, u.Query().Get("X-Amz-SignedHeaders"), "host")
	assert.Equal(t, u.Query().Get("x-amz-acl"), "public-read-write")

	content := []byte("Test content for asset ID " + a.ID)
	assert.NilError(t, c.Put(ctx, a.UploadURL, content))
	assert.NilError(t, c.Confirm(ctx, a.ID))
	assert.NilError(t, c.Confirm(ctx, a.ID))

	got, err := c.Download(ctx, a.ID, 0)
	assert.NilError(t, err)
	assert.Equal(t, string(got), string(content))

	short, err := c.DownloadURL(ctx, a.ID, 1)
	assert.NilError(t, err)
	su, err := url.Parse(short)
	assert.NilError(t, err)
	assert.Equal(t, su.Query().Get("X-Amz-Expires"), "1")

	bucket.advance(2 * time.Second)
	_, err = c.Get(ctx, short)
	serr, ok := err.(*StatusError)
	assert.Assert(t, ok, "got %v", err)
	assert.Equal(t, serr.Code, http.StatusForbidden)
	assert.Assert(t, strings.Contains(serr.Body, "Request has expired"))
}

func TestUploadFlow(t *testing.T) {
	storageServer := httptest.NewServer(&memS3{objects: map[string][]byte{}})
	defer storageServer.Close()
	gateway := newGateway(t, storageServer.URL)
	defer gateway.Close()

	ctx := context.Background()
	c := New(gateway.URL)

	id, err := c.Upload(ctx, []byte("hello"))
	assert.NilError(t, err)
	got, err := c.Download(ctx, id, 30)
	assert.NilError(t, err)
	assert.Equal(t, string(got), "hello")
}

func TestUploadRejectsExtraSignedHeaders(t *testing.T) {
	bucket := &memS3{objects: map[string][]byte{}}
	storageServer := httptest.NewServer(bucket)
	defer storageServer.Close()

	target := storageServer.URL + "/assets/0123456789abcdef0123456789abcdef?X-Amz-SignedHeaders=host%3Bx-amz-acl"
	err := New(storageServer.URL).Put(context.Background(), target, []byte("data"))
	serr, ok := err.(*StatusError)
	assert.Assert(t, ok, "got %v", err)
	assert.Equal(t, serr.Code, http.StatusForbidden)
	assert.Assert(t, strings.Contains(serr.Body, "SignatureDoesNotMatch"))
	assert.Equal(t, len(bucket.objects), 0)
}

func TestNonexistentAsset(t *testing.T) {
	storageServer := httptest.NewServer(&memS3{objects: map[string][]byte{}})
	defer storageServer.Close()
	gateway := newGateway(t, storageServer.URL)
	defer gateway.Close()

	ctx := context.Background()
	c := New(gateway.URL)
	const id = "12345678901234567890123456789012"

	err := c.Confirm(ctx, id)
	assert.Equal(t, err.(*StatusError).Code, http.StatusNotFound)

	_, err = c.DownloadURL(ctx, id, 0)
	assert.Equal(t, err.(*StatusError).Code, http.StatusNotFound)
}

func TestUnavailableGateway(t *testing.T) {
	gateway := newGateway(t, "")
	defer gateway.Close()

	_, err := New(gateway.URL).Create(context.Background())
	serr, ok := err.(*StatusError)
	assert.Assert(t, ok, "got %v", err)
	assert.Equal(t, serr.Code, http.StatusForbidden)
	assert.Assert(t, strings.Contains(serr.Body, "Invalid AWS credentials."))
}
