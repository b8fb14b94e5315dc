// Package cli holds the global command-line options and logger setup shared
// by the aim commands.
package cli

import (
	"fmt"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/kvnxiao/aim/adb"
	"github.com/kvnxiao/aim/output"
	"github.com/kvnxiao/aim/progress"
	"github.com/sirupsen/logrus"
)

const (
	defaultLogLevel = logrus.WarnLevel
)

// GlobalConfig carries the flags shared by every subcommand.
type GlobalConfig struct {
	Host    string
	Port    int
	Output  string
	Timeout time.Duration
	Quiet   bool

	LogLevel string
	verbose  bool

	Logger *logrus.Logger
}

// RegisterFlags attaches the global flags to app. Defaults defer to the
// ADB_SERVER_* environment variables, which the adb client consults when a
// flag is left at its zero value.
func RegisterFlags(app *kingpin.Application) *GlobalConfig {
	c := &GlobalConfig{}

	app.HelpFlag.Short('h')
	app.Flag("host", "Hostname of the adb server.").StringVar(&c.Host)
	app.Flag("port", "Port of the adb server.").Short('p').IntVar(&c.Port)
	app.Flag("output", "Output format: table, json or plain.").Short('o').Default(string(output.FormatTable)).EnumVar(&c.Output, "table", "json", "plain")
	app.Flag("timeout", "Socket timeout for server requests.").Default("2s").DurationVar(&c.Timeout)
	app.Flag("quiet", "Suppress progress display.").Short('q').BoolVar(&c.Quiet)

	logLevels := []string{
		logrus.ErrorLevel.String(),
		logrus.WarnLevel.String(),
		logrus.InfoLevel.String(),
		logrus.DebugLevel.String(),
	}
	app.Flag("log", fmt.Sprintf("Detail of logs to show. Options are: %v", logLevels)).Default(defaultLogLevel.String()).EnumVar(&c.LogLevel, logLevels...)
	app.Flag("verbose", "Alias for --log=debug.").Short('v').BoolVar(&c.verbose)

	return c
}

// InitLogger configures the standard logrus logger from the parsed flags.
// Must be called after kingpin parsing, before any command runs.
func (c *GlobalConfig) InitLogger() {
	log := logrus.StandardLogger()
	c.Logger = log

	if c.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			// Flag enum validation makes this unreachable.
			level = defaultLogLevel
		}
		log.SetLevel(level)
	}
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.StampMilli,
	})
}

// ClientConfig builds the adb client configuration from the flags.
func (c *GlobalConfig) ClientConfig() adb.ServerConfig {
	return adb.ServerConfig{
		Host:        c.Host,
		Port:        c.Port,
		DialTimeout: c.Timeout,
	}
}

// Format returns the parsed output format.
func (c *GlobalConfig) Format() output.Format {
	f, err := output.ParseFormat(c.Output)
	if err != nil {
		return output.FormatTable
	}
	return f
}

// ProgressSink returns the transfer progress sink implied by the flags: a
// terminal bar normally, a no-op when quiet or emitting JSON.
func (c *GlobalConfig) ProgressSink() progress.Sink {
	if c.Quiet || c.Format() == output.FormatJson {
		return progress.Noop{}
	}
	return progress.NewBar()
}
