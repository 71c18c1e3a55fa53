package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foto-orders-service/internal/app"
	"foto-orders-service/internal/config"
	"foto-orders-service/internal/domain"
	"foto-orders-service/internal/infra/memory"
	pgstore "foto-orders-service/internal/infra/postgres"
	redisstore "foto-orders-service/internal/infra/redis"
	transport "foto-orders-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the order service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	catalogID := cfg.Catalog.ID
	if catalogID == "" {
		catalogID = "default"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(sampleCatalogs(catalogID))
	if pool != nil {
		loader = pgstore.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalogRepo app.CatalogRepository
	if redisClient != nil {
		catalogRepo = redisstore.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalogRepo = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var drafts app.DraftRepository
	if redisClient != nil {
		drafts = redisstore.NewDraftStore(redisClient, redisTTL)
	} else {
		drafts = memory.NewDraftStore()
	}

	var orders app.OrderRepository = memory.NewOrderRepository()
	if pool != nil {
		orders = pgstore.NewOrderRepository(pool)
	}

	service := app.NewOrderService(drafts, catalogRepo, orders)
	wsHandler := transport.NewWSHandler(service, catalogID)
	restHandler := transport.NewRESTHandler(service, catalogID)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/services", restHandler.Services)
	mux.HandleFunc("/questions", restHandler.Questions)
	mux.HandleFunc("/orders", restHandler.CreateOrder)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting order service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCatalogs provides demo catalog data; the Postgres loader replaces it in production.
func sampleCatalogs(catalogID string) map[string]domain.Catalog {
	return map[string]domain.Catalog{
		catalogID: {
			ID: catalogID,
			Services: []domain.Service{
				{ID: "fotografia", Name: "Fotografía", Description: "Sesión de fotos profesional del inmueble", BasePrice: 8000},
				{ID: "plano-2d", Name: "Plano 2D", Description: "Digitalización del plano de la propiedad", BasePrice: 5000},
				{ID: "video", Name: "Video recorrido", Description: "Recorrido filmado y editado", BasePrice: 12000},
			},
			Questions: []domain.Question{
				{
					ID:             "q-m2",
					Text:           "Cantidad de metros cuadrados",
					InputKind:      domain.InputNumber,
					IsRequired:     true,
					ServiceID:      "fotografia",
					DisplayOrder:   1,
					DisplaySection: "servicio",
					Pricing:        &domain.TieredPricing{BaseUnits: 80, StepSize: 20, StepPrice: 1000},
				},
				{
					ID:             "q-entrega",
					Text:           "Tipo de entrega",
					InputKind:      domain.InputRadio,
					IsRequired:     true,
					ServiceID:      "fotografia",
					DisplayOrder:   2,
					DisplaySection: "servicio",
					Options: []domain.Option{
						{ID: "opt-estandar", Label: "Estándar (72hs)", PriceModifier: 0},
						{ID: "opt-express", Label: "Express (24hs)", Description: "Entrega prioritaria", PriceModifier: 1500},
					},
				},
				{
					ID:                "q-express-horario",
					Text:              "Franja horaria preferida para la entrega express",
					InputKind:         domain.InputSelect,
					ServiceID:         "fotografia",
					DisplayOrder:      3,
					DisplaySection:    "servicio",
					DependsOnOptionID: "opt-express",
					Options: []domain.Option{
						{ID: "opt-maniana", Label: "Mañana", PriceModifier: 0},
						{ID: "opt-tarde", Label: "Tarde", PriceModifier: 0},
					},
				},
				{
					ID:             "q-comentarios",
					Text:           "Comentarios para el fotógrafo",
					InputKind:      domain.InputText,
					DisplayOrder:   1,
					DisplaySection: "general",
				},
			},
		},
	}
}
