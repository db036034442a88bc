// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratafolio/internal/app/resources"
	"github.com/dalemusser/stratafolio/internal/app/system/inputval"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// The sample projects are the only data the API can serve with MongoDB down,
// so a broken embedded file aborts startup here instead of failing the first
// fallback request.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	samples, err := resources.SampleProjects()
	if err != nil {
		logger.Error("failed to load sample projects", zap.Error(err))
		return err
	}
	for _, p := range samples {
		if res := inputval.ValidateProject(p); res.HasErrors() {
			return fmt.Errorf("sample project %q is invalid: %s", p.Title, res.All())
		}
	}

	timeouts.Configure(timeouts.Config{
		Read:   appCfg.ReadTimeout,
		Write:  appCfg.WriteTimeout,
		Upload: appCfg.UploadTimeout,
	})

	logger.Info("startup complete",
		zap.String("env", coreCfg.Env),
		zap.Int("sample_projects", len(samples)),
		zap.String("store", storehealth.State(ctx, deps.Health)),
		zap.Bool("api_key_set", appCfg.APIKey != ""),
		zap.Duration("timeout_read", timeouts.Read()),
		zap.Duration("timeout_write", timeouts.Write()),
		zap.Strings("cors_allowed_origins", appCfg.CORSAllowedOrigins),
	)
	return nil
}
