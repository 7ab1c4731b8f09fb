package server

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// nightly, at 02:00 local time
const backupSchedule = "0 2 * * *"

// Backup writes a dated export of the book to a directory every night.
// It is a safety net against a lost remote store, not a sync mechanism.
type Backup struct {
	cron    *cron.Cron
	session *accounting.Session
	dir     string
	logger  *zap.Logger
}

// NewBackup creates a nightly backup of session exports under dir.
func NewBackup(session *accounting.Session, dir string, logger *zap.Logger) *Backup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backup{
		cron:    cron.New(),
		session: session,
		dir:     dir,
		logger:  logger,
	}
}

// Start schedules the nightly run.
func (b *Backup) Start() {
	if _, err := b.cron.AddFunc(backupSchedule, b.run); err != nil {
		b.logger.Error("failed to schedule backup", zap.Error(err))
		return
	}
	b.cron.Start()
	b.logger.Info("nightly backup scheduled", zap.String("dir", b.dir))
}

// Stop halts the schedule. A run already started finishes.
func (b *Backup) Stop() {
	b.cron.Stop()
}

func (b *Backup) run() {
	if err := b.writeExport(time.Now()); err != nil {
		b.logger.Error("backup failed", zap.Error(err))
		return
	}
	b.logger.Info("backup written", zap.String("dir", b.dir))
}

// writeExport exports the book to {dir}/farmbook-YYYY-MM-DD.json.
func (b *Backup) writeExport(now time.Time) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return err
	}
	name := filepath.Join(b.dir, "farmbook-"+now.Format("2006-01-02")+".json")
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.session.Export(f)
}
