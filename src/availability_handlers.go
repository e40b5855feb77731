package main

import (
	"gbs/src/types"
	"gbs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/availability", func(ctx *gin.Context) {
			var query types.AvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			result, err := utils.CheckAvailability(&query)
			if err != nil {
				ctx.JSON(domainErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})
	return g
}
