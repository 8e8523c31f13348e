package usecase

import (
	"time"

	"o365-calendar/internal/normalize"
	"o365-calendar/internal/schedule"
	pkgLog "o365-calendar/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	transport schedule.Transport
	directory normalize.Directory
	now       func() time.Time
}

// New creates a new schedule UseCase. directory may be nil, in which case
// contact and group attendees cannot be resolved.
func New(l pkgLog.Logger, transport schedule.Transport, directory normalize.Directory) schedule.UseCase {
	return &implUseCase{
		l:         l,
		transport: transport,
		directory: directory,
		now:       time.Now,
	}
}
