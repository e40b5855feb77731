package main

import (
	"errors"
	"gbs/src/config"
	"gbs/src/db"
	"gbs/src/lib"
	"gbs/src/models"
	"gbs/src/types"
	"gbs/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/properties", func(ctx *gin.Context) {
			var body types.CreatePropertyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			property := models.Property{
				Name:               body.Name,
				Slug:               slug.Make(body.Name),
				BasePricePerPerson: body.BasePricePerPerson,
				Currency:           body.Currency,
			}
			db := db.GetDb()
			if err := db.Create(&property).Error; err != nil {
				log.Printf("Could not create property: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": property})
		}).
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var property models.Property
			if err := db.Where(&models.Property{ID: body.PropertyID}).First(&property).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrPropertyNotFound.Error()})
				return
			}
			room := models.Room{
				PropertyID: property.ID,
				Name:       body.Name,
				Capacity:   body.Capacity,
			}
			if err := db.Create(&room).Error; err != nil {
				log.Printf("Could not create room: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		POST("/blocks", func(ctx *gin.Context) {
			var body types.CreateRoomBlockRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date, err := time.Parse(config.DATE_PARSE_FORMAT, body.Date)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.Where(&models.Room{ID: body.RoomID}).First(&room).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrRoomNotFound.Error()})
				return
			}
			block := models.RoomBlock{
				RoomID: room.ID,
				Date:   lib.CanonicalInstant(date),
				Reason: body.Reason,
			}
			if err := db.Create(&block).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "room is already blocked for this date"})
					return
				}
				log.Printf("Could not create block: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": block})
		}).
		DELETE("/blocks/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			result := db.Unscoped().Delete(&models.RoomBlock{}, params.ID)
			if result.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Error.Error()})
				return
			}
			if result.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/reservations", func(ctx *gin.Context) {
			db := db.GetDb()
			var reservations []models.Reservation
			err := db.
				Model(&models.Reservation{}).
				Preload("Items").
				Order("created_at DESC").
				Limit(100).
				Find(&reservations).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		PUT("/reservations/:code/status", func(ctx *gin.Context) {
			var params types.CodeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateReservationStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := utils.UpdateReservationStatus(params.Code, body.Status)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		})
	return g
}
