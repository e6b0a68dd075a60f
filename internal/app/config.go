package app

import (
	"time"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/utils"
)

type Config struct {
	Port string
	Mode string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	PartnerOrigin  string
	UniversityID   string
	UniversityName string

	// StoreBackend selects the recommendation store: memory, redis or
	// gorm.
	StoreBackend string
	DemoFixtures bool

	PartnerEmbedderURL string
	PartnerOpenerURL   string

	TracingEnabled  bool
	RedisBusEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	ttlMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60, log)
	return Config{
		Port: utils.GetEnv("PORT", "8080", log),
		Mode: utils.GetEnv("MODE", "debug", log),

		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "dev-only-secret", log),
		AccessTokenTTL: time.Duration(ttlMinutes) * time.Minute,

		PartnerOrigin:  utils.GetEnv("PARTNER_ORIGIN", "https://stellarrec.netlify.app", log),
		UniversityID:   utils.GetEnv("UNIVERSITY_ID", "mocku", log),
		UniversityName: utils.GetEnv("UNIVERSITY_NAME", "MockUniversity", log),

		StoreBackend: utils.GetEnv("STORE_BACKEND", "memory", log),
		DemoFixtures: utils.GetEnvAsBool("DEMO_FIXTURES", false, log),

		PartnerEmbedderURL: utils.GetEnv("PARTNER_EMBEDDER_URL", "", log),
		PartnerOpenerURL:   utils.GetEnv("PARTNER_OPENER_URL", "", log),

		TracingEnabled:  utils.GetEnvAsBool("OTEL_ENABLED", false, log),
		RedisBusEnabled: utils.GetEnvAsBool("REDIS_BUS_ENABLED", false, log),
	}
}
