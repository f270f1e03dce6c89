package output

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the CLI logger. The default level is warn; verbose lowers
// it to debug. Colours follow IsColorEnabled for w.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	color := IsColorEnabled(w)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      color,
		DisableColors:    !color,
		DisableTimestamp: true,
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
