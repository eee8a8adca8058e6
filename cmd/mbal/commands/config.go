package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"massbal"
)

// Settings is the resolved CLI configuration. Precedence, highest first:
// flags, MBAL_ environment variables (a .env file included), mbal.yaml,
// defaults.
type Settings struct {
	LogLevel string
	Color    bool
	Workers  int

	Annotate       int
	PivotThreshold float64
	PrinterWidth   int
}

var (
	settings = Settings{LogLevel: "warn", Color: true, Workers: 1, PivotThreshold: massbal.PIVOT_THRESHOLD, PrinterWidth: massbal.DEFAULT_PRINTER_WIDTH}
	logger   = logrus.New()
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("output.color", true)
	v.SetDefault("run.workers", runtime.NumCPU())

	v.SetDefault("solver.annotate", massbal.ANNOTATE_NONE)
	v.SetDefault("solver.pivot_threshold", massbal.PIVOT_THRESHOLD)
	v.SetDefault("solver.printer_width", massbal.DEFAULT_PRINTER_WIDTH)
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()

	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("solver.annotate", flags.Lookup("annotate")); err != nil {
		return err
	}
	if noColor {
		v.Set("output.color", false)
	}

	s, err := loadSettings(v, envFile, cfgFile)
	if err != nil {
		return err
	}
	settings = s

	setupLogger(logger, settings.LogLevel)
	if settings.Annotate > massbal.ANNOTATE_NONE {
		// solver annotations are written at debug level
		logger.SetLevel(logrus.DebugLevel)
	}
	color.NoColor = color.NoColor || !settings.Color
	logger.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"config":  v.ConfigFileUsed(),
		"workers": settings.Workers,
	}).Debug("configuration loaded")
	return nil
}

func loadSettings(v *viper.Viper, envFile, cfgFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	setDefaults(v)
	v.SetEnvPrefix("MBAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("mbal")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	s := Settings{
		LogLevel:       v.GetString("log.level"),
		Color:          v.GetBool("output.color"),
		Workers:        v.GetInt("run.workers"),
		Annotate:       v.GetInt("solver.annotate"),
		PivotThreshold: v.GetFloat64("solver.pivot_threshold"),
		PrinterWidth:   v.GetInt("solver.printer_width"),
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	if s.PivotThreshold <= 0 {
		return Settings{}, fmt.Errorf("solver.pivot_threshold must be positive, got %g", s.PivotThreshold)
	}
	return s, nil
}

func setupLogger(l *logrus.Logger, level string) {
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
}

// solverConfig builds the library configuration from the settings.
func (s Settings) solverConfig() *massbal.Configuration {
	return &massbal.Configuration{
		PivotThreshold: s.PivotThreshold,
		PrinterWidth:   s.PrinterWidth,
		Annotate:       s.Annotate,
		Logger:         logger,
	}
}
