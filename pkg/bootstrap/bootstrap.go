package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/infrastructure/database"
	"github.com/bucketlist/server/pkg/infrastructure/identity"
	infrapubsub "github.com/bucketlist/server/pkg/infrastructure/pubsub"
	"github.com/bucketlist/server/pkg/infrastructure/sentry"
	infrastorage "github.com/bucketlist/server/pkg/infrastructure/storage"
)

// Config holds standard configuration for all services
type Config struct {
	ProjectID       string
	AppID           string
	EnablePublish   bool
	ImageBucket     string
	SentryDSN       string
	Environment     string
	CredentialsFile string
}

// Service holds initialized dependencies
type Service struct {
	DB    shared.Database
	Store shared.BlobStore
	Pub   shared.Publisher
	// Identity is nil when the auth backend could not be initialized.
	Identity shared.IdentityVerifier
	Config   *Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = shared.ProjectID // Fallback
	}
	appID := os.Getenv("APP_ID")
	if appID == "" {
		appID = shared.AppID
	}
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &Config{
		ProjectID:       projectID,
		AppID:           appID,
		EnablePublish:   os.Getenv("ENABLE_PUBLISH") == "true",
		ImageBucket:     os.Getenv("IMAGE_BUCKET"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		Environment:     env,
		CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
	}
}

func (c *Config) clientOptions() []option.ClientOption {
	if c.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			newComp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: newComp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false
		}
		return true
	})

	if comp != "" {
		newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", comp, r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			newRecord.AddAttrs(a)
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// LevelFromEnv reads LOG_LEVEL, defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger configures structured logging with Cloud Logging compatible keys
func InitLogger() {
	handler := slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(LevelFromEnv()))
	slog.SetDefault(slog.New(&ComponentHandler{Handler: handler}))
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(LevelFromEnv()))
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// NewService initializes all standard dependencies. A Firestore or Storage
// failure is an ErrInitialization; an auth failure only disables token
// verification.
func NewService(ctx context.Context) (*Service, error) {
	InitLogger()
	cfg := LoadConfig()
	opts := cfg.clientOptions()

	slog.Info("Initializing service", "project_id", cfg.ProjectID, "app_id", cfg.AppID)

	if err := sentry.Init(sentry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		ServerName:       "bucketlist",
		TracesSampleRate: 0.1,
	}, slog.Default()); err != nil {
		// Error tracking is optional.
		slog.Warn("Continuing without Sentry", "error", err)
	}

	// Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		slog.Error("Firestore init failed", "error", err)
		return nil, fmt.Errorf("%w: firestore: %v", shared.ErrInitialization, err)
	}

	// Firebase Auth
	var verifier shared.IdentityVerifier
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err == nil {
		authClient, authErr := app.Auth(ctx)
		if authErr == nil {
			verifier = &identity.FirebaseVerifier{Client: authClient}
		}
		err = authErr
	}
	if err != nil {
		slog.Warn("Firebase Auth unavailable, tokens will not be verified", "error", err)
	}

	// Pub/Sub
	var pubAdapter shared.Publisher
	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			slog.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("%w: pubsub: %v", shared.ErrInitialization, err)
		}
		pubAdapter = &infrapubsub.PubSubAdapter{Client: psClient}
		slog.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		pubAdapter = &infrapubsub.LogPublisher{}
		slog.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	// Storage
	gcsClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		slog.Error("Storage init failed", "error", err)
		return nil, fmt.Errorf("%w: storage: %v", shared.ErrInitialization, err)
	}

	return &Service{
		DB:       database.NewFirestoreAdapter(fsClient, cfg.AppID),
		Pub:      pubAdapter,
		Store:    &infrastorage.StorageAdapter{Client: gcsClient},
		Identity: verifier,
		Config:   cfg,
	}, nil
}

// NewMemoryService wires an in-process store for local runs and tests. There
// is no image bucket and no token verification.
func NewMemoryService(cfg *Config) *Service {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return &Service{
		DB:     database.NewMemoryAdapter(),
		Pub:    &infrapubsub.LogPublisher{},
		Config: cfg,
	}
}
