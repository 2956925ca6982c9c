package handler

import (
	"log"
	"net/http"

	"backend/internal/insight"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InsightHandler serves the product-insights microservice endpoints. It holds
// no state: every request is validated, computed, and answered independently.
type InsightHandler struct{}

func NewInsightHandler() *InsightHandler {
	return &InsightHandler{}
}

// NewInsightEngine assembles the full insights service router: health check,
// the insights endpoint, a JSON 404 for everything else, and a recovery
// handler that logs panics server-side and answers with a generic 500.
func NewInsightEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Unhandled error on %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "An unexpected error occurred.",
		})
	}))
	engine.Use(cors.Default())

	h := NewInsightHandler()
	engine.GET("/health", h.Health)
	engine.POST("/insights", h.Analyze)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return engine
}

// Health responds to liveness probes
// @Summary      Health check
// @Tags         insights
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *InsightHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze validates the posted product list and returns computed insights
// @Summary      Analyze products
// @Description  Computes aggregate statistics and a natural-language summary over the posted product list
// @Tags         insights
// @Accept       json
// @Produce      json
// @Param        payload  body      object  true  "Object with a products array"
// @Success      200      {object}  insight.Response
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /insights [post]
func (h *InsightHandler) Analyze(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": `Invalid request body. Expected an object with a "products" array.`,
		})
		return
	}

	products, verr := insight.DecodeRequest(body)
	if verr != nil {
		if verr.Details != "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   verr.Message,
				"details": verr.Details,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	c.JSON(http.StatusOK, insight.Calculate(products))
}
