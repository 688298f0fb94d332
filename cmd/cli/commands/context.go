package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/internal/config"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/services"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/db"
)

// AppContext holds the application dependencies shared across all commands.
// It is created empty before the command tree is built and populated by the
// root command's PersistentPreRunE.
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Stats    *services.Statistics
	Logger   *zap.Logger
	Ctx      context.Context
}
