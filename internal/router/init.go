package router

import (
	"github.com/patientpal/patientpal-server/internal/application"
	"github.com/patientpal/patientpal-server/internal/container"
	"github.com/patientpal/patientpal-server/internal/infrastructure/postgres"
	handlers "github.com/patientpal/patientpal-server/internal/interface/http"
	"github.com/patientpal/patientpal-server/internal/router/modules"
)

// InitModules builds every feature module from the container singletons
// and registers it. Called once at startup, after the container is
// populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	members := postgres.NewMemberRepository(pool)
	patients := postgres.NewPatientRepository(pool)
	caregivers := postgres.NewCaregiverRepository(pool)
	matches := postgres.NewMatchRepository(pool)
	posts := postgres.NewPostRepository(pool)

	authSvc := application.NewAuthService(members, container.GetJWT(), container.GetRedis(), logger, container.GetRabbitPub())
	patientSvc := application.NewPatientService(members, patients, container.GetRedis(), logger, container.GetRabbitPub(), cfg.ProfileCacheTTL)
	caregiverSvc := application.NewCaregiverService(
		members,
		caregivers,
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESCaregiversIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		cfg.ProfileCacheTTL,
	)
	matchSvc := application.NewMatchService(patients, caregivers, matches, logger)
	postSvc := application.NewPostService(posts, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewPatientModule(handlers.NewPatientHandler(patientSvc, logger), handlers.NewMatchHandler(matchSvc, logger), jwt))
	r.Add(modules.NewCaregiverModule(handlers.NewCaregiverHandler(caregiverSvc, logger), jwt))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
}
