package main

import (
	"errors"
	"gbs/src/db"
	"gbs/src/models"
	"gbs/src/types"
	"gbs/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := utils.CreateReservation(&body)
			if err != nil {
				log.Printf("Could not create reservation: %s\n", err.Error())
				ctx.JSON(domainErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": reservation})
		}).
		GET("/reservations/:code", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var reservation models.Reservation
			err := db.
				Model(&models.Reservation{}).
				Where(&models.Reservation{Code: params.Code}).
				Preload("Property").
				Preload("Items").
				Preload("Items.Room").
				First(&reservation).
				Error
			if err != nil {
				err := errors.New("reservation not found")
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		})
	return g
}
