package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/config"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/geocode"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/handler"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/service"
	"github.com/ohmegaloceros-boop/freefoodfinder/internal/store"
)

// @title		Free Food Finder API
// @version	1.0
// @description	Map-based directory of free food resources.
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Storage backend
	var (
		locations   service.LocationStore
		submissions service.SubmissionStore
	)
	switch config.StoreBackend {
	case "postgres":
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()
		pg := store.NewPostgresStore(conn)
		locations, submissions = pg, pg
	default:
		fs, err := store.NewFileStore(config.LocationsFile, config.SubmissionsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load location data")
		}
		locations, submissions = fs, fs
	}

	// Initialize layers
	geocoder := geocode.NewClient(config.GeocoderBaseURL, config.GeocoderTimeout)

	locationService := service.NewLocationService(locations)
	submissionService := service.NewSubmissionService(submissions)
	geocodeService := service.NewGeocodeService(geocoder)

	locationHandler := handler.NewLocationHandler(locationService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	geocodeHandler := handler.NewGeocodeHandler(geocodeService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	api.GET("/locations", locationHandler.List)
	api.GET("/locations/:id", locationHandler.Get)
	api.POST("/submissions", submissionHandler.Create)
	api.GET("/geocode", geocodeHandler.Search)
	api.GET("/reverse-geocode", geocodeHandler.Reverse)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Run(config.ServerAddress)
}
