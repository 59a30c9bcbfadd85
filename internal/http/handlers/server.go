package handlers

import (
	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/auth"
	"github.com/ditservices/asset-tracker/internal/jobs"
	"github.com/ditservices/asset-tracker/internal/redissvc"
	repo "github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/storage"
	"github.com/ditservices/asset-tracker/internal/ws"
)

var (
	productRepo    repo.ProductRepository
	saleRepo       repo.SaleRepository
	userRepo       repo.UserRepository
	metricsRepo    repo.MetricsRepository
	activityRepo   repo.ActivityLogRepository
	attachmentRepo repo.AttachmentRepository

	authService *auth.Service
	auditLog    *activity.Logger
	cache       *redissvc.RedisService
	diskStore   *storage.DiskStore
	jobQueue    *jobs.Queue
	alertsHub   *ws.Hub
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetActivityLogRepo(r repo.ActivityLogRepository) {
	activityRepo = r
	auditLog = activity.NewLogger(r)
}

func SetAttachmentRepo(r repo.AttachmentRepository) {
	attachmentRepo = r
}

func SetAuthService(s *auth.Service) {
	authService = s
}

func SetRedisService(rs *redissvc.RedisService) {
	cache = rs
}

func SetDiskStore(s *storage.DiskStore) {
	diskStore = s
}

func SetJobQueue(q *jobs.Queue) {
	jobQueue = q
}

func SetAlertsHub(h *ws.Hub) {
	alertsHub = h
}
