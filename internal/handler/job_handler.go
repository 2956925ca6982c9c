package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobService service.JobService
}

func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	automation := router.Group("/api/automation")
	{
		automation.POST("/scrape-products", h.TriggerScrape)
		automation.GET("/jobs", h.ListJobs)
		automation.GET("/jobs/:id", h.GetJob)
	}
}

// TriggerScrape queues a catalog sync job
// @Summary      Trigger product scraping
// @Description  Creates an automation job that syncs the catalog from the configured source and runs it in the background
// @Tags         automation
// @Produce      json
// @Success      201  {object}  response.Response{data=service.TriggerJobResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/automation/scrape-products [post]
func (h *JobHandler) TriggerScrape(c *gin.Context) {
	res, err := h.jobService.TriggerScrapeProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to queue scraping job: "+err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}

// ListJobs returns the most recent automation jobs
// @Summary      List automation jobs
// @Description  Returns the last 20 automation jobs ordered by creation time, newest first
// @Tags         automation
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.JobResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/automation/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.ListJobs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve jobs: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, jobs))
}

// GetJob returns one automation job by ID
// @Summary      Get automation job
// @Tags         automation
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=service.JobResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/automation/jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Job not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}
