// Package scheduler owns the recurring maintenance work: purging expired
// credential blacklist rows and announcing assets whose next service date is
// coming up.
package scheduler

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/config"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/ws"
)

type Scheduler struct {
	cron     *cron.Cron
	products repo.ProductRepository
	tokens   repo.TokenRepository
	hub      *ws.Hub
	cfg      config.Config
}

func New(products repo.ProductRepository, tokens repo.TokenRepository, hub *ws.Hub, cfg config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		products: products,
		tokens:   tokens,
		hub:      hub,
		cfg:      cfg,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.PurgeBlacklist); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.SendServiceReminders); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// PurgeBlacklist removes blacklist rows whose token has expired on its own.
func (s *Scheduler) PurgeBlacklist() {
	purged, err := s.tokens.PurgeExpired(time.Now())
	if err != nil {
		zap.L().Error("blacklist purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		zap.L().Info("purged expired blacklist entries", zap.Int("count", purged))
	}
}

// SendServiceReminders finds assets due for service within the configured
// window, broadcasts an alert and mails a summary.
func (s *Scheduler) SendServiceReminders() {
	from := time.Now()
	to := from.AddDate(0, 0, s.cfg.ServiceDueAhead)

	due, err := s.products.ServiceDueBetween(from, to)
	if err != nil {
		zap.L().Error("service reminder lookup failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	s.hub.Broadcast(ws.Alert{
		Event:   "service.due",
		Message: fmt.Sprintf("%d asset(s) due for service by %s", len(due), to.Format("2006-01-02")),
		Data:    dueSummaries(due),
	})

	if s.cfg.SMTPServer != "" {
		s.mailSummary(due, to)
	}
}

type dueSummary struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Location       string `json:"location,omitempty"`
	NextServiceDue string `json:"next_service_due"`
}

func dueSummaries(due []models.Product) []dueSummary {
	out := make([]dueSummary, 0, len(due))
	for _, p := range due {
		s := dueSummary{ID: p.ID, Name: p.Name, SKU: p.SKU, Location: p.Location}
		if p.NextServiceDue != nil {
			s.NextServiceDue = p.NextServiceDue.Format("2006-01-02")
		}
		out = append(out, s)
	}
	return out
}

func (s *Scheduler) mailSummary(due []models.Product, to time.Time) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d asset(s) due for service by %s:\n\n", len(due), to.Format("2006-01-02")))
	for _, p := range due {
		when := ""
		if p.NextServiceDue != nil {
			when = p.NextServiceDue.Format("2006-01-02")
		}
		sb.WriteString(fmt.Sprintf("- %s (%s) at %s, due %s\n", p.Name, p.SKU, p.Location, when))
	}

	subject := fmt.Sprintf("Service reminder: %d asset(s) due", len(due))
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.AlertFrom, s.cfg.AlertTo, subject, sb.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPServer, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPServer)

	go func() {
		if err := smtp.SendMail(addr, auth, s.cfg.AlertFrom, []string{s.cfg.AlertTo}, []byte(msg)); err != nil {
			zap.L().Warn("service reminder mail failed", zap.Error(err))
		}
	}()
}
