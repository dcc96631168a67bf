package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportConfig holds the tunables of the reporting aggregator. Values are
// injected into services rather than read from package globals so the
// aggregator stays testable in isolation.
type ReportConfig struct {
	// MaxRangeDays caps custom date ranges. Ranges wider than this are
	// rejected outright with no partial result.
	MaxRangeDays int `mapstructure:"maxRangeDays"`
	// MaxRows bounds itemized listings. A safety ceiling, not a
	// correctness requirement.
	MaxRows int `mapstructure:"maxRows"`
	// AgingBucketDays are the cutoffs (in days past due) between aging
	// buckets, ascending.
	AgingBucketDays []int `mapstructure:"agingBucketDays"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		MaxRangeDays:    730,
		MaxRows:         500,
		AgingBucketDays: []int{30, 60, 90},
	}
}

type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/clubledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CLUBLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultReportConfig()
		v.SetDefault("report.maxRangeDays", defaults.MaxRangeDays)
		v.SetDefault("report.maxRows", defaults.MaxRows)
		v.SetDefault("report.agingBucketDays", defaults.AgingBucketDays)
	}

	var cfg ReportConfig
	if err := v.UnmarshalKey("report", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportConfig
		if err := v.UnmarshalKey("report", &updated); err != nil {
			log.Printf("[report-config] reload failed: %v", err)
			return
		}
		if err := validateReportConfig(updated); err != nil {
			log.Printf("[report-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[report-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticReportConfigHolder returns a holder pinned to cfg, with no
// config file watching.
func NewStaticReportConfigHolder(cfg ReportConfig) *ReportConfigHolder {
	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportConfigHolder) Get() ReportConfig {
	return h.current.Load().(ReportConfig)
}

func validateReportConfig(cfg ReportConfig) error {
	if cfg.MaxRangeDays <= 0 {
		return errors.New("report.maxRangeDays must be positive")
	}
	if cfg.MaxRows <= 0 {
		return errors.New("report.maxRows must be positive")
	}
	if len(cfg.AgingBucketDays) == 0 {
		return errors.New("report.agingBucketDays cannot be empty")
	}
	last := 0
	for _, days := range cfg.AgingBucketDays {
		if days <= last {
			return errors.New("report.agingBucketDays must be ascending and positive")
		}
		last = days
	}
	return nil
}
