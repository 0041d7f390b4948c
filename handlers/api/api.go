package api

import (
	"net/http"

	"github.com/ReconfigureIO/asset-gateway/models"
	"github.com/ReconfigureIO/asset-gateway/service/assets"
	"github.com/ReconfigureIO/asset-gateway/sugar"
	"github.com/gin-gonic/gin"
)

// bindAssetID reads the :id path parameter. Malformed ids are answered like
// an unrouted path.
func bindAssetID(c *gin.Context, id *models.AssetID) bool {
	parsed, err := models.ParseAssetID(c.Param("id"))
	if err != nil {
		sugar.NotFound(c)
		return false
	}
	*id = parsed
	return true
}

// respond writes a gateway result.
func respond(c *gin.Context, r assets.Result) {
	switch r.Outcome {
	case assets.OK:
		sugar.SuccessResponse(c, http.StatusOK, r.Body)
	case assets.Created:
		sugar.SuccessResponse(c, http.StatusCreated, r.Body)
	case assets.Forbidden:
		sugar.Forbidden(c)
	default:
		sugar.NotFound(c)
	}
}
