package migration

import (
	"github.com/fitstack/clubledger/internal/config"
	invoicedomain "github.com/fitstack/clubledger/internal/invoice/domain"
	receivabledomain "github.com/fitstack/clubledger/internal/receivable/domain"
	userdomain "github.com/fitstack/clubledger/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite and mysql installs are dev/test setups; the gorm
			// schema keeps them in sync without the versioned SQL.
			return conn.AutoMigrate(
				&userdomain.User{},
				&receivabledomain.Receivable{},
				&receivabledomain.Transaction{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
