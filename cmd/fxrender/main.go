// Command fxrender runs audio through the effects engine offline and writes
// the result to a WAV file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/framework/param"
	"github.com/justyntemme/fxroute/pkg/fxengine"
	"github.com/justyntemme/fxroute/pkg/monitor"
)

var version = "1.0.0"

// monitorDepth is the number of output blocks the display may lag behind.
const monitorDepth = 64

// CLI defines the command-line interface.
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	List    bool   `short:"l" help:"List the parameters and their defaults"`
	Input   string `short:"i" type:"existingfile" help:"96 kHz WAV to process. A test signal is rendered when empty."`
	Output  string `short:"o" type:"path" default:"fxroute.wav" help:"Output WAV file"`

	Tone    string  `default:"sine" enum:"sine,saw,square,triangle,noise,pink" help:"Test signal (${enum})"`
	Freq    float64 `default:"220" help:"Test tone frequency in Hz"`
	Amp     float64 `default:"0.25" help:"Test signal peak amplitude"`
	Pan     float64 `default:"0" help:"Test signal pan, -1 left to 1 right"`
	Seconds float64 `default:"2" help:"Test signal length in seconds"`
	Tail    float64 `default:"1" help:"Seconds of silence rendered after the input"`

	Set   []string `short:"s" help:"Parameter change at the first block, as name=value"`
	At    []string `help:"Parameter change at a later block, as block:name=value"`
	MIDI  []string `name:"midi" help:"Raw MIDI message at a block, as block:hex (pitch bend and mod wheel are mapped)"`
	Tempo float64  `default:"120" help:"Host tempo in beats per minute"`

	LegacyDispatch bool `help:"Re-apply the routing parameters that follow a changed slot or level"`
	NoDuck         bool `help:"Do not silence the first blocks after activation"`
	Monitor        bool `help:"Attach the monitoring display and report its meters"`

	BitDepth int    `default:"24" help:"Output bit depth (16 or 24)"`
	LogLevel string `default:"info" enum:"debug,info,warn,error,off" help:"Log level (${enum})"`
	LogFile  string `type:"path" help:"Append logs to this file instead of stderr"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("fxrender"),
		kong.Description("Offline renderer for the fxroute effects engine"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if cli.Version {
		PrintVersion(os.Stdout, version)
		os.Exit(0)
	}
	if cli.List {
		if err := listParameters(os.Stdout); err != nil {
			PrintError(err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}
	if cli.Input == "" && cli.Seconds <= 0 {
		PrintError("no input file and no test signal length")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	if err := run(context.Background(), cli, os.Stdout); err != nil {
		PrintError(err.Error())
		os.Exit(1)
	}
}

func newLogger(cli *CLI) (*debug.Logger, io.Closer, error) {
	level, err := debug.ParseLevel(cli.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var (
		log    *debug.Logger
		closer io.Closer = io.NopCloser(nil)
	)
	if cli.LogFile != "" {
		log, closer, err = debug.NewFileLogger(cli.LogFile, "fxrender", debug.DefaultFlags)
		if err != nil {
			return nil, nil, err
		}
	} else {
		log = debug.New(os.Stderr, "fxrender", debug.FlagLevel|debug.FlagPrefix)
	}
	log.SetLevel(level)
	return log, closer, nil
}

// run renders one file and prints the summary to w.
func run(ctx context.Context, cli *CLI, w io.Writer) error {
	log, closer, err := newLogger(cli)
	if err != nil {
		return err
	}
	defer closer.Close()

	registry, err := fxengine.NewRegistry()
	if err != nil {
		return err
	}
	changes, err := parseChanges(registry, cli.Set, cli.At, cli.MIDI)
	if err != nil {
		return err
	}

	in, rate, source, err := loadInput(cli)
	if err != nil {
		return err
	}

	cfg := fxengine.DefaultConfig()
	cfg.Logger = log
	cfg.DuckOnStart = !cli.NoDuck
	if cli.LegacyDispatch {
		cfg.Dispatch = fxengine.DispatchLegacyCascade
	}

	var (
		queue   *monitor.Queue
		display *monitor.Display
		done    chan error
	)
	if cli.Monitor {
		queue, err = monitor.Open(monitor.DefaultName, monitorDepth)
		if err != nil {
			return err
		}
		defer queue.Close()
		cfg.Monitor = queue
		display = monitor.NewDisplay(dsp.SampleRate)
		done = make(chan error, 1)
		go func() { done <- display.Run(ctx, queue) }()
	}

	eng, err := fxengine.New(cfg)
	if err != nil {
		return err
	}
	if err := eng.SetupProcessing(float64(rate), dsp.BlockSize); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if err := eng.SetActive(true); err != nil {
		return err
	}

	prof := debug.NewAudioProcessProfiler(dsp.SampleRate, dsp.BlockSize)
	res := render(eng, in, int(cli.Tail*dsp.SampleRate), cli.Tempo, changes, prof)
	if err := eng.SetActive(false); err != nil {
		return err
	}

	sum := summary{
		Source:   source,
		Output:   cli.Output,
		Dispatch: eng.Dispatch().String(),
		Blocks:   eng.Blocks(),
		Ducked:   eng.DuckedBlocks(),
		Stats:    res.stats,
		CPULoad:  prof.GetCPULoad(),
		Overruns: prof.Overruns(),
		Drops:    eng.MonitorDrops(),
	}
	if queue != nil {
		drain(queue, time.Second)
		if err := queue.Close(); err != nil {
			return err
		}
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		reading := display.Reading()
		sum.Display = &reading
	}

	if err := writeWAV(cli.Output, res.out, rate, cli.BitDepth); err != nil {
		return err
	}
	log.Info("wrote %s (%d frames)", cli.Output, res.out.frames())

	fmt.Fprintln(w, sum.render())
	return nil
}

// drain waits for the display to empty the queue.
func drain(q *monitor.Queue, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for q.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

// loadInput reads the input file or generates the test signal.
func loadInput(cli *CLI) (*stereo, int, string, error) {
	if cli.Input != "" {
		in, rate, err := readWAV(cli.Input)
		if err != nil {
			return nil, 0, "", err
		}
		return in, rate, cli.Input, nil
	}
	spec := toneSpec{
		kind:    cli.Tone,
		freq:    cli.Freq,
		amp:     cli.Amp,
		pan:     cli.Pan,
		seconds: cli.Seconds,
	}
	in, err := generateTone(spec)
	if err != nil {
		return nil, 0, "", err
	}
	name := fmt.Sprintf("%s %.0f Hz", spec.kind, spec.freq)
	switch spec.kind {
	case toneNoise:
		name = "white noise"
	case tonePink:
		name = "pink noise"
	}
	return in, int(dsp.SampleRate), name, nil
}

// listParameters prints every visible parameter with its default value.
func listParameters(w io.Writer) error {
	registry, err := fxengine.NewRegistry()
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Parameters"))
	sb.WriteString("\n")
	for _, p := range registry.All() {
		if p.Flags&param.IsHidden != 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n", KeyStyle.Render(p.Name), ValueStyle.Render(p.FormatValue(p.DefaultValue)))
	}
	_, err = io.WriteString(w, sb.String())
	return err
}
