package cli

import (
	"context"
	"fmt"

	"github.com/martijn/garage/internal/core/repository"
	"github.com/martijn/garage/internal/core/service"
	"github.com/martijn/garage/internal/infrastructure/awsutil"
	"github.com/martijn/garage/internal/infrastructure/content/local"
	s3content "github.com/martijn/garage/internal/infrastructure/content/s3"
	"github.com/martijn/garage/internal/infrastructure/sqlite"
	"github.com/martijn/garage/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config

	// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
	Version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "garage",
	Short: "Garage - client records for a vehicle-service garage",
	Long: `Garage keeps the client records of a vehicle-service garage.

It provides:
- Client contact details with a vehicle profile, a quote (devis) and preferences
- Partial updates that merge nested objects field by field
- One attached document per client (JPEG, PNG or PDF)
- REST API for the front office`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "garage", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/garage/config.yml)")
	rootCmd.AddCommand(versionCmd)
}

// Services holds all initialized services
type Services struct {
	DB                *sqlite.DB
	ClientRepo        repository.ClientRepository
	ContentStore      repository.ContentStore
	ClientService     *service.ClientService
	AttachmentService *service.AttachmentService
}

// initServices opens the record store and the content area
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	contentStore, err := newContentStore(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize content store: %w", err)
	}

	clientRepo := sqlite.NewClientRepository(db)
	clientService := service.NewClientService(clientRepo)
	attachmentService := service.NewAttachmentService(clientService, contentStore, cfg.AllowedMediaTypes)

	return &Services{
		DB:                db,
		ClientRepo:        clientRepo,
		ContentStore:      contentStore,
		ClientService:     clientService,
		AttachmentService: attachmentService,
	}, nil
}

func newContentStore(ctx context.Context, cfg *config.Config) (repository.ContentStore, error) {
	if cfg.ContentBackend == config.ContentBackendS3 {
		client, err := awsutil.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		return s3content.New(client, cfg.S3Bucket, cfg.S3Prefix), nil
	}
	return local.New(cfg.ContentDir)
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
