package main

import (
	"fmt"
	"strings"

	"github.com/justyntemme/fxroute/pkg/dsp/gain"
	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/monitor"
)

// summary is what fxrender reports after a render.
type summary struct {
	Source   string
	Output   string
	Dispatch string
	Blocks   uint64
	Ducked   uint64
	Stats    debug.AnalysisResult
	CPULoad  float64
	Overruns int
	Drops    uint64
	Display  *monitor.Reading
}

func formatDB(linear float32) string {
	db := gain.LinearToDb32(linear)
	if db <= gain.MinDB {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

func (s summary) render() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("fxrender"))
	sb.WriteString("\n")

	lines := []string{
		keyValue("Source", s.Source),
		keyValue("Output", s.Output),
		keyValue("Dispatch", s.Dispatch),
		keyValue("Blocks", fmt.Sprintf("%d (%d ducked)", s.Blocks, s.Ducked)),
		keyValue("Peak", formatDB(s.Stats.Peak)),
		keyValue("RMS", formatDB(s.Stats.RMS)),
		keyValue("CPU load", fmt.Sprintf("%.2f%%", s.CPULoad)),
	}
	if s.Overruns > 0 {
		lines = append(lines, KeyStyle.Render("Overruns")+WarnStyle.Render(fmt.Sprint(s.Overruns)))
	}
	if s.Stats.Clipping {
		lines = append(lines, KeyStyle.Render("Clipped")+WarnStyle.Render(fmt.Sprintf("%d samples", s.Stats.ClippedSamples)))
	}
	if s.Stats.HasNaN {
		lines = append(lines, KeyStyle.Render("NaN")+WarnStyle.Render(fmt.Sprintf("%d samples", s.Stats.NaNCount)))
	}
	if s.Display != nil {
		d := s.Display
		lines = append(lines,
			keyValue("Monitor", fmt.Sprintf("%d received, %d dropped", d.Messages, s.Drops)),
			keyValue("Held peak", fmt.Sprintf("L %.1f dB  R %.1f dB", d.HoldL, d.HoldR)),
			keyValue("Phase", fmt.Sprintf("%+.2f %s", d.Correlation, d.Phase)),
		)
	}
	sb.WriteString(BoxStyle.Render(strings.Join(lines, "\n")))
	return sb.String()
}
