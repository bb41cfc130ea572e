package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/pipeline"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps. Debug lines,
// which include one per negotiation pass, are dimmed.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(colorDim)
	styles.Keys["pass"] = StyleHighlight
	l.SetStyles(styles)
	return l
}

// progress times one command run.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered sales.toml (12ms)",
// and the pipeline's stage timings at debug level.
func (p *progress) done(msg string, st pipeline.Stats) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
	p.logger.Debug("stage timings",
		"load", st.LoadTime.Round(time.Microsecond),
		"layout", st.LayoutTime.Round(time.Microsecond),
		"render", st.RenderTime.Round(time.Microsecond))
}
