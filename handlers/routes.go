package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes は /emissions と /health のルートを登録します。
func RegisterRoutes(router *gin.Engine, ec *EmissionsController) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	emissions := router.Group("/emissions")
	{
		emissions.GET("/bylocations/best", ec.GetBestEmissionsDataForLocationsByTime)
		emissions.GET("/bylocations", ec.GetEmissionsDataForLocationsByTime)
		emissions.GET("/bylocation", ec.GetEmissionsDataForLocationByTime)
	}
}
