package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/config"
	"github.com/fitstack/clubledger/internal/invoice"
	invoicedomain "github.com/fitstack/clubledger/internal/invoice/domain"
	"github.com/fitstack/clubledger/internal/observability/metrics"
	"github.com/fitstack/clubledger/internal/receivable"
	receivabledomain "github.com/fitstack/clubledger/internal/receivable/domain"
	"github.com/fitstack/clubledger/internal/report"
	reportdomain "github.com/fitstack/clubledger/internal/report/domain"
	"github.com/fitstack/clubledger/internal/user"
	userdomain "github.com/fitstack/clubledger/internal/user/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	user.Module,
	receivable.Module,
	invoice.Module,
	report.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, reg *prometheus.Registry) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	userSvc       userdomain.Service
	receivableSvc receivabledomain.Service
	invoiceSvc    invoicedomain.Service
	reportSvc     reportdomain.Service
	metrics       *metrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	UserSvc       userdomain.Service
	ReceivableSvc receivabledomain.Service
	InvoiceSvc    invoicedomain.Service
	ReportSvc     reportdomain.Service
	Metrics       *metrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		userSvc:       p.UserSvc,
		receivableSvc: p.ReceivableSvc,
		invoiceSvc:    p.InvoiceSvc,
		reportSvc:     p.ReportSvc,
		metrics:       p.Metrics,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	users := v1.Group("/users")
	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/:id", s.GetUser)
	users.PUT("/:id/fee-status", s.SetUserFeeStatus)

	receivables := v1.Group("/receivables")
	receivables.POST("", s.CreateReceivable)
	receivables.GET("/by-source", s.GetReceivableBySource)
	receivables.GET("/overdue", s.ListOverdueReceivables)
	receivables.GET("/:id/balance", s.GetReceivableBalance)
	receivables.GET("/:id/breakdown", s.GetReceivableBreakdown)
	receivables.POST("/:id/transactions", s.RecordTransactions)
	receivables.POST("/:id/recompute", s.RecomputeReceivableStatus)

	v1.DELETE("/transactions/:id", s.ReverseTransaction)

	invoices := v1.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("/:id", s.GetInvoice)
	invoices.POST("/:id/pay", s.PayInvoice)
	invoices.POST("/:id/reject", s.RejectInvoice)

	reports := v1.Group("/reports")
	reports.GET("/invoices", s.ReportInvoicesInRange)
	reports.GET("/summary", s.ReportSummaryInRange)
	reports.GET("/custom", s.ReportCustomRange)
	reports.GET("/month", s.ReportMonth)
	reports.GET("/quarter", s.ReportQuarter)
	reports.GET("/half", s.ReportHalfYear)
	reports.GET("/year", s.ReportYear)
	reports.GET("/collections/daily", s.ReportDailyCollections)
	reports.GET("/collections", s.ReportCollectionSummary)
	reports.GET("/methods", s.ReportMethodBreakdown)
	reports.GET("/outstanding", s.ReportOutstanding)
	reports.GET("/aging", s.ReportAging)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
