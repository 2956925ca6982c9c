package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"backend/internal/catalog"
	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type JobResponse struct {
	ID           string  `json:"id"`
	JobType      string  `json:"job_type"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
	FinishedAt   *string `json:"finished_at"`
}

type TriggerJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

var ErrJobNotFound = errors.New("job not found")

type JobService interface {
	TriggerScrapeProducts(ctx context.Context) (TriggerJobResponse, error)
	GetJob(ctx context.Context, id string) (JobResponse, error)
	ListJobs(ctx context.Context) ([]JobResponse, error)
}

type jobService struct {
	jobRepo     repository.JobRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	source      catalog.Source
	hub         *ws.Hub
}

func NewJobService(
	jobRepo repository.JobRepository,
	productRepo repository.ProductRepository,
	txManager repository.TransactionManager,
	source catalog.Source,
	hub *ws.Hub,
) JobService {
	return &jobService{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		txManager:   txManager,
		source:      source,
		hub:         hub,
	}
}

func mapJob(job *model.AutomationJob) JobResponse {
	res := JobResponse{
		ID:           job.ID.String(),
		JobType:      job.JobType,
		Status:       job.Status,
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if job.FinishedAt != nil {
		finished := job.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
		res.FinishedAt = &finished
	}
	return res
}

// TriggerScrapeProducts creates a queued catalog-sync job and runs it in the
// background. The returned response carries the job id so the dashboard can
// poll or subscribe for status updates.
func (s *jobService) TriggerScrapeProducts(ctx context.Context) (TriggerJobResponse, error) {
	job := model.AutomationJob{
		JobType: model.JobTypeScrapeProducts,
		Status:  model.JobStatusQueued,
	}

	if err := s.jobRepo.Create(ctx, &job); err != nil {
		return TriggerJobResponse{}, fmt.Errorf("failed to queue scraping job: %w", err)
	}

	go s.runScrapeJob(job.ID)

	return TriggerJobResponse{JobID: job.ID.String(), Status: job.Status}, nil
}

func (s *jobService) GetJob(ctx context.Context, id string) (JobResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return JobResponse{}, ErrJobNotFound
	}

	job, err := s.jobRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobResponse{}, ErrJobNotFound
		}
		return JobResponse{}, err
	}

	return mapJob(job), nil
}

// ListJobs returns the 20 most recent automation jobs, newest first.
func (s *jobService) ListJobs(ctx context.Context) ([]JobResponse, error) {
	jobs, err := s.jobRepo.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}

	res := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		res = append(res, mapJob(&jobs[i]))
	}
	return res, nil
}

// runScrapeJob drives one job through running -> completed/failed, persisting
// each transition and broadcasting it over the hub. Runs detached from the
// request context since the job outlives the triggering request.
func (s *jobService) runScrapeJob(jobID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		log.Printf("Scrape job %s not found: %v", jobID, err)
		return
	}

	s.transition(ctx, job, model.JobStatusRunning, "")

	products, err := s.source.Fetch(ctx)
	if err != nil {
		s.finish(ctx, job, model.JobStatusFailed, err.Error())
		return
	}

	if err := s.syncProducts(ctx, products); err != nil {
		s.finish(ctx, job, model.JobStatusFailed, err.Error())
		return
	}

	s.finish(ctx, job, model.JobStatusCompleted, "")
	log.Printf("Scrape job %s completed: %d products synced", jobID, len(products))
}

// syncProducts upserts scraped records by product name in one transaction,
// mirroring what the dashboard expects: prices, ratings, stock and URLs
// refreshed, last_synced_at stamped.
func (s *jobService) syncProducts(ctx context.Context, records []catalog.SourceProduct) error {
	now := time.Now()

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, rec := range records {
			price, err := decimal.NewFromString(rec.Price)
			if err != nil {
				return fmt.Errorf("invalid price %q for product %q: %w", rec.Price, rec.Name, err)
			}

			rating := rec.Rating
			existing, err := s.productRepo.FindByName(txCtx, rec.Name)
			switch {
			case err == nil:
				existing.Price = price
				existing.Stock = rec.Stock
				existing.Rating = &rating
				existing.ImageURL = rec.ImageURL
				existing.SourceURL = rec.SourceURL
				existing.URL = rec.SourceURL
				existing.LastSyncedAt = &now
				if err := s.productRepo.Update(txCtx, existing); err != nil {
					return fmt.Errorf("failed to update product %q: %w", rec.Name, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				product := model.Product{
					Name:         rec.Name,
					Price:        price,
					Stock:        rec.Stock,
					Rating:       &rating,
					ImageURL:     rec.ImageURL,
					SourceURL:    rec.SourceURL,
					URL:          rec.SourceURL,
					LastSyncedAt: &now,
				}
				if err := s.productRepo.Create(txCtx, &product); err != nil {
					return fmt.Errorf("failed to create product %q: %w", rec.Name, err)
				}
			default:
				return fmt.Errorf("failed to look up product %q: %w", rec.Name, err)
			}
		}
		return nil
	})
}

func (s *jobService) transition(ctx context.Context, job *model.AutomationJob, status, errMsg string) {
	job.Status = status
	job.ErrorMessage = errMsg
	if err := s.jobRepo.Update(ctx, job); err != nil {
		log.Printf("Failed to update job %s status to %s: %v", job.ID, status, err)
		return
	}
	s.broadcast(job)
}

func (s *jobService) finish(ctx context.Context, job *model.AutomationJob, status, errMsg string) {
	now := time.Now()
	job.FinishedAt = &now
	s.transition(ctx, job, status, errMsg)
	if errMsg != "" {
		log.Printf("Scrape job %s failed: %s", job.ID, errMsg)
	}
}

func (s *jobService) broadcast(job *model.AutomationJob) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastJobEvent(ws.JobEvent{
		Event: "job.updated",
		Data:  mapJob(job),
	})
}
