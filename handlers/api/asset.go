package api

import (
	"github.com/ReconfigureIO/asset-gateway/models"
	"github.com/ReconfigureIO/asset-gateway/service/assets"
	"github.com/gin-gonic/gin"
)

// Asset handles requests for assets.
type Asset struct {
	Gateway *assets.Gateway
}

// Create reserves an asset id and returns its upload URL.
func (a Asset) Create(c *gin.Context) {
	respond(c, a.Gateway.CreateAsset(c.Request.Context()))
}

// Confirm reports whether the asset has been uploaded.
func (a Asset) Confirm(c *gin.Context) {
	var id models.AssetID
	if !bindAssetID(c, &id) {
		return
	}
	respond(c, a.Gateway.ConfirmUpload(c.Request.Context(), id))
}

// Get returns a download URL, valid for ?timeout seconds (default 60).
func (a Asset) Get(c *gin.Context) {
	var id models.AssetID
	if !bindAssetID(c, &id) {
		return
	}
	expiry := assets.ParseTimeout(c.Query("timeout"))
	respond(c, a.Gateway.DownloadURL(c.Request.Context(), id, expiry))
}
