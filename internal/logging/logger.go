package logging

import (
	"os"
	"strings"

	"github.com/2beens/bodycomp/pkg"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the package level logrus logger.
// With no log file set, logs only go to stdout.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	log.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		log.SetOutput(os.Stdout)
		log.Println("writing logs only to STDOUT")
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // false -> use UTC
		Compress:  true,
		// assessments logs are kept for a year, measurement disputes come up late
		MaxAge: 365, // days
	}

	if params.LogToStdout {
		log.SetOutput(pkg.NewCombinedWriter(os.Stdout, lumberJackLogger))
		log.Println("writing logs to file and STDOUT")
	} else {
		log.SetOutput(lumberJackLogger)
	}
}

func setupSentry(params LoggerSetupParams) {
	if params.SentryDSN == "" {
		log.Warnln("sentry enabled, but DSN not set, skipping")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		log.Errorf("sentry.Init: %s", err)
		return
	}

	log.AddHook(NewSentryHook([]log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	}))

	log.Infoln("Sentry set up successfully")
}

func GetLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	case "info":
		return log.InfoLevel
	case "trace":
		return log.TraceLevel
	case "warn", "warning":
		return log.WarnLevel
	default:
		return log.InfoLevel
	}
}
