package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wyllersu/ai-fleet-mate/repositories"
	"github.com/wyllersu/ai-fleet-mate/services"
)

// AlertScanJob periodically re-runs the maintenance due-date scan and
// emails a digest of the results to the fleet manager.
type AlertScanJob struct {
	alertService *services.AlertService
	emailService *services.EmailService
	recipient    string
	ticker       *time.Ticker
	done         chan bool
}

func NewAlertScanJob(db *gorm.DB, emailService *services.EmailService, recipient string, interval time.Duration) *AlertScanJob {
	maintenanceRepo := repositories.NewMaintenanceRepository(db)

	return &AlertScanJob{
		alertService: services.NewAlertService(maintenanceRepo),
		emailService: emailService,
		recipient:    recipient,
		ticker:       time.NewTicker(interval),
		done:         make(chan bool),
	}
}

// Start begins the scan job.
func (j *AlertScanJob) Start() {
	fmt.Println("Alert scan job started")

	go func() {
		// Run immediately on start
		j.scan()

		for {
			select {
			case <-j.ticker.C:
				j.scan()
			case <-j.done:
				fmt.Println("Alert scan job stopped")
				return
			}
		}
	}()
}

// Stop stops the scan job.
func (j *AlertScanJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *AlertScanJob) scan() {
	fmt.Println("Running maintenance alert scan...")

	alerts, err := j.alertService.GetAlerts()
	if err != nil {
		fmt.Printf("Error during alert scan: %v\n", err)
		return
	}

	if len(alerts) == 0 {
		fmt.Println("Alert scan completed, nothing due")
		return
	}

	if err := j.emailService.SendAlertDigest(j.recipient, alerts); err != nil {
		fmt.Printf("Error sending alert digest: %v\n", err)
		return
	}

	fmt.Printf("Alert scan completed, %d alert(s) reported\n", len(alerts))
}
