package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	OCR      *OCRHandler
	Telegram *TelegramWebhook // nil disables the webhook
	Gatherer prometheus.Gatherer
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	router.Use(requestid.New())
	// Allow CORS for all origins
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
	}))

	router.GET("/", HealthCheck)
	if r.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{})))
	}

	router.POST("/ocr/records", r.OCR.CreateRecord)
	router.GET("/ocr/records/*objectKey", r.OCR.GetRecord)
	router.POST("/ocr/perform", r.OCR.PerformOcr)

	if r.Telegram != nil {
		router.POST("/telegram/webhook", r.Telegram.TelegramWebhook)
	}

	return router
}
