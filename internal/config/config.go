package config

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT,default=8080"`
	Env      string `env:"ENV,default=development"`

	DB        DBConfig        `env:",prefix=DB_"`
	Notify    NotifyConfig    `env:",prefix=NOTIFY_"`
	RateLimit RateLimitConfig `env:",prefix=RATE_LIMIT_"`
	Draw      DrawConfig      `env:",prefix=DRAW_"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
}

type DBConfig struct {
	Driver          string        `env:"DRIVER,default=postgres"`
	DSN             string        `env:"DSN"`
	Host            string        `env:"HOST,default=localhost"`
	Port            string        `env:"PORT,default=5432"`
	User            string        `env:"USER,default=postgres"`
	Password        string        `env:"PASSWORD,default=postgres"`
	Name            string        `env:"NAME,default=secret_santa"`
	SSLMode         string        `env:"SSLMODE,default=disable"`
	TimeZone        string        `env:"TIMEZONE,default=UTC"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS,default=10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME,default=30m"`
}

type NotifyConfig struct {
	// Driver selects the outbound notifier: log, smtp or nats.
	Driver      string `env:"DRIVER,default=log"`
	FromAddress string `env:"FROM_ADDRESS,default=santa@localhost"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`

	NATSURL     string `env:"NATS_URL,default=nats://localhost:4222"`
	NATSSubject string `env:"NATS_SUBJECT,default=santa.notifications"`
}

type RateLimitConfig struct {
	Enabled  bool          `env:"ENABLED,default=true"`
	Requests int           `env:"REQUESTS,default=100"`
	Window   time.Duration `env:"WINDOW,default=1m"`
}

type DrawConfig struct {
	// ShuffleAttempts bounds the derangement retry loop before the
	// rotation fallback kicks in.
	ShuffleAttempts  int           `env:"SHUFFLE_ATTEMPTS,default=10"`
	CodeTTL          time.Duration `env:"VERIFICATION_CODE_TTL,default=24h"`
	SnapshotCacheTTL time.Duration `env:"SNAPSHOT_CACHE_TTL,default=1m"`
}

func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
