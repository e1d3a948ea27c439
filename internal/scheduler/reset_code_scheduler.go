package scheduler

import (
	"github.com/adhivedhanlr-maker/ecommerce-backend/internal/app/service"
	"github.com/adhivedhanlr-maker/ecommerce-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetCodeScheduler periodically purges expired password reset codes
type ResetCodeScheduler struct {
	cron                 *cron.Cron
	passwordResetService service.PasswordResetService
}

func NewResetCodeScheduler(passwordResetService service.PasswordResetService) *ResetCodeScheduler {
	return &ResetCodeScheduler{
		cron:                 cron.New(),
		passwordResetService: passwordResetService,
	}
}

func (s *ResetCodeScheduler) Start() error {
	// Hourly, on the hour
	_, err := s.cron.AddFunc("0 * * * *", func() {
		removed, err := s.passwordResetService.PurgeExpired()
		if err != nil {
			logger.Error("Scheduled reset code purge failed", err, nil)
			return
		}
		logger.Debug("Scheduled reset code purge finished", map[string]interface{}{
			"removed": removed,
		})
	})
	if err != nil {
		logger.Error("Failed to register reset code purge job", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Reset code scheduler started (hourly)", nil)
	return nil
}

func (s *ResetCodeScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Reset code scheduler stopped", nil)
}
