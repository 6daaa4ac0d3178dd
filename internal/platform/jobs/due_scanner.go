package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// DueScanner periodically collects pending entries whose due date falls
// within the configured horizon and emails a per-organization digest to that
// organization's admins.
type DueScanner struct {
	cfg          *config.Config
	entryRepo    portsrepo.EntryRepositoryWithTx
	orgRepo      portsrepo.OrganizationRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	digestSender portssvc.DigestSender
	logger       *slog.Logger
	cron         *cron.Cron
}

// NewDueScanner creates a scanner from the repository provider and sender.
func NewDueScanner(cfg *config.Config, repos portsrepo.RepositoryProvider, sender portssvc.DigestSender, logger *slog.Logger) *DueScanner {
	return &DueScanner{
		cfg:          cfg,
		entryRepo:    repos.EntryRepo,
		orgRepo:      repos.OrganizationRepo,
		userRepo:     repos.UserRepo,
		digestSender: sender,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start schedules the scan with the configured cron expression and launches
// the scheduler. It returns an error if the expression does not parse.
func (s *DueScanner) Start() error {
	_, err := s.cron.AddFunc(s.cfg.DueScannerSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Due scanner started", slog.String("schedule", s.cfg.DueScannerSchedule), slog.Duration("horizon", s.cfg.DueScannerHorizon))
	return nil
}

// Stop halts the scheduler and waits for any running scan to finish.
func (s *DueScanner) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

// RunOnce performs a single scan. Overdue entries are included by scanning
// from the zero time, so a forgotten entry keeps appearing until it is
// settled or rescheduled.
func (s *DueScanner) RunOnce(ctx context.Context) {
	now := time.Now().UTC()
	horizon := now.Add(s.cfg.DueScannerHorizon)

	entries, err := s.entryRepo.FindEntriesDueBetween(ctx, time.Time{}, horizon)
	if err != nil {
		s.logger.Error("Due scan failed to fetch entries", slog.String("error", err.Error()))
		return
	}
	if len(entries) == 0 {
		return
	}

	byOrganization := make(map[string][]domain.DueEntry)
	for _, e := range entries {
		byOrganization[e.OrganizationID] = append(byOrganization[e.OrganizationID], domain.DueEntry{
			EntryID:        e.EntryID,
			OrganizationID: e.OrganizationID,
			Description:    e.Description,
			Amount:         e.Amount,
			Nature:         e.Nature,
			DueDate:        e.DueDate,
			Overdue:        e.DueDate.Before(now),
		})
	}

	for organizationID, dueEntries := range byOrganization {
		s.notifyOrganization(ctx, organizationID, dueEntries)
	}

	s.logger.Info("Due scan completed", slog.Int("entries", len(entries)), slog.Int("organizations", len(byOrganization)))
}

// notifyOrganization emails the digest to every admin of the organization
// that has an email address on file.
func (s *DueScanner) notifyOrganization(ctx context.Context, organizationID string, dueEntries []domain.DueEntry) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		s.logger.Error("Due scan failed to load organization", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return
	}
	if !org.IsActive {
		return
	}

	members, err := s.orgRepo.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		s.logger.Error("Due scan failed to list members", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return
	}

	for _, member := range members {
		if member.Role != domain.RoleAdmin {
			continue
		}
		user, err := s.userRepo.FindUserByID(ctx, member.UserID)
		if err != nil || user.Email == "" || user.DeletedAt != nil {
			continue
		}
		if err := s.digestSender.SendDueDigest(ctx, user.Email, org.Name, dueEntries); err != nil {
			s.logger.Error("Failed to send due digest", slog.String("organization_id", organizationID), slog.String("user_id", member.UserID), slog.String("error", err.Error()))
		}
	}
}
