// Package assets brokers upload and download access to stored assets.
//
// The gateway never stores anything itself. It generates identifiers, asks
// the storage provider for signed URLs or existence checks, and maps every
// outcome to one of four results.
package assets

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/ReconfigureIO/asset-gateway/models"
	"github.com/ReconfigureIO/asset-gateway/service/storage"
	metrics "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultDownloadExpiry is used when no usable timeout was requested.
	DefaultDownloadExpiry = 60 * time.Second

	// UploadExpiry is the lifetime of upload URLs.
	UploadExpiry = time.Hour

	// UploadPermission is applied to every object written via an upload URL.
	UploadPermission = storage.PermissionPublicReadWrite

	// maxExpiry is the longest whole-second time.Duration.
	maxExpiry = time.Duration(math.MaxInt64/int64(time.Second)) * time.Second

	// StatusUploaded is reported by ConfirmUpload.
	StatusUploaded = "uploaded"
)

// Outcome is the category of a gateway result.
type Outcome int

const (
	// OK maps to 200.
	OK Outcome = iota
	// Created maps to 201.
	Created
	// Forbidden maps to 403. Returned only when no provider is available.
	Forbidden
	// NotFound maps to 404.
	NotFound
)

var outcomeNames = map[Outcome]string{
	OK:        "ok",
	Created:   "created",
	Forbidden: "forbidden",
	NotFound:  "not_found",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Result is the outcome of an operation plus its JSON body for OK and Created.
type Result struct {
	Outcome Outcome
	Body    interface{}
}

// NewAsset is the body returned by CreateAsset.
type NewAsset struct {
	ID        models.AssetID `json:"id"`
	UploadURL string         `json:"upload_url"`
}

// UploadStatus is the body returned by ConfirmUpload.
type UploadStatus struct {
	Status string `json:"status"`
}

// Download is the body returned by DownloadURL.
type Download struct {
	DownloadURL string `json:"download_url"`
}

// Gateway maps asset operations onto a storage provider.
type Gateway struct {
	// Storage is nil when the provider could not be constructed.
	Storage storage.Provider
	// NewID generates asset identifiers.
	NewID func() models.AssetID
	// Metrics receives one counter increment per operation outcome.
	Metrics metrics.Registry
}

// New creates a gateway over p. A nil p yields a gateway that answers
// Forbidden to everything.
func New(p storage.Provider) *Gateway {
	return &Gateway{
		Storage: p,
		NewID:   models.NewAssetID,
		Metrics: metrics.NewRegistry(),
	}
}

// Available reports whether a storage provider is configured.
func (g *Gateway) Available() bool {
	return g.Storage != nil
}

// CreateAsset reserves a new identifier and signs an upload URL for it.
// No object is created until the client uploads.
func (g *Gateway) CreateAsset(ctx context.Context) Result {
	const op = "create"
	if !g.Available() {
		return g.finish(op, Result{Outcome: Forbidden})
	}

	id := g.NewID()
	url, err := g.Storage.SignURL(ctx, storage.SignRequest{
		Key:        id.Key(),
		Verb:       storage.VerbPut,
		Permission: UploadPermission,
		Expiry:     UploadExpiry,
	})
	if err != nil {
		g.logFailure(op, id, err)
		return g.finish(op, Result{Outcome: NotFound})
	}

	return g.finish(op, Result{
		Outcome: Created,
		Body:    NewAsset{ID: id, UploadURL: url},
	})
}

// ConfirmUpload reports whether the object for id exists. It never mutates
// storage, so repeated calls give the same answer.
func (g *Gateway) ConfirmUpload(ctx context.Context, id models.AssetID) Result {
	const op = "confirm"
	if !g.Available() {
		return g.finish(op, Result{Outcome: Forbidden})
	}

	if err := g.Storage.CheckExists(ctx, id.Key()); err != nil {
		g.logFailure(op, id, err)
		return g.finish(op, Result{Outcome: NotFound})
	}

	return g.finish(op, Result{
		Outcome: OK,
		Body:    UploadStatus{Status: StatusUploaded},
	})
}

// DownloadURL signs a download URL valid for expiry, provided the object
// exists.
func (g *Gateway) DownloadURL(ctx context.Context, id models.AssetID, expiry time.Duration) Result {
	const op = "download"
	if !g.Available() {
		return g.finish(op, Result{Outcome: Forbidden})
	}

	if err := g.Storage.CheckExists(ctx, id.Key()); err != nil {
		g.logFailure(op, id, err)
		return g.finish(op, Result{Outcome: NotFound})
	}

	url, err := g.Storage.SignURL(ctx, storage.SignRequest{
		Key:    id.Key(),
		Verb:   storage.VerbGet,
		Expiry: expiry,
	})
	if err != nil {
		g.logFailure(op, id, err)
		return g.finish(op, Result{Outcome: NotFound})
	}

	return g.finish(op, Result{
		Outcome: OK,
		Body:    Download{DownloadURL: url},
	})
}

// ParseTimeout turns a timeout query value (seconds) into an expiry.
// Anything but a positive decimal integer gives DefaultDownloadExpiry;
// values too large for a time.Duration are capped.
func ParseTimeout(value string) time.Duration {
	if value == "" {
		return DefaultDownloadExpiry
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return DefaultDownloadExpiry
		}
	}
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil && err.(*strconv.NumError).Err == strconv.ErrRange {
		return maxExpiry
	}
	if err != nil || seconds <= 0 {
		return DefaultDownloadExpiry
	}
	if seconds > int64(maxExpiry/time.Second) {
		return maxExpiry
	}
	return time.Duration(seconds) * time.Second
}

func (g *Gateway) finish(op string, r Result) Result {
	if g.Metrics != nil {
		metrics.GetOrRegisterCounter("assets."+op+"."+r.Outcome.String(), g.Metrics).Inc(1)
	}
	return r
}

func (g *Gateway) logFailure(op string, id models.AssetID, err error) {
	entry := log.WithFields(log.Fields{
		"op":       op,
		"asset_id": id.String(),
	}).WithError(err)
	if storage.IsNotFound(err) {
		entry.Info("asset not found")
		return
	}
	// Provider failures also surface as NotFound.
	entry.Error("storage provider error")
}
