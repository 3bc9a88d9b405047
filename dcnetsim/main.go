package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/dcnetsim/datacenter"
	"github.com/sarchlab/dcnetsim/delaymatrix"
	"github.com/sarchlab/dcnetsim/workload"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
	"gitlab.com/akita/akita/v3/monitoring"
	"gitlab.com/akita/akita/v3/sim"
	"gopkg.in/natefinch/lumberjack.v2"
)

var configPath = flag.String("config", "",
	"A TOML file with a [datacenter] and a [workload] section.")
var trafficPath = flag.String("traffic", "",
	"A CSV traffic trace, replacing the trace or random traffic of the config.")
var mode = flag.String("mode", "", "switch or matrix, replacing the mode of the config.")
var graphPath = flag.String("graph", "",
	"Print the delay matrix of a YAML or CSV topology graph and exit.")
var logFile = flag.String("log-file", "", "Also write the log to this file, rotated.")
var logLevel = flag.String("log-level", "info", "The log level.")
var monitor = flag.Bool("monitor", false, "Serve the akita monitor during the simulation.")

type experimentConfig struct {
	Datacenter datacenter.Config `toml:"datacenter"`
	Workload   workload.Config   `toml:"workload"`
}

func main() {
	flag.Parse()
	setupLogging()

	if *graphPath != "" {
		printDelayMatrix(*graphPath)
		exit(0)
	}

	cfg := loadConfig()

	engine := sim.NewSerialEngine()
	if *monitor {
		m := monitoring.NewMonitor()
		m.RegisterEngine(engine)
		m.StartServer()
	}

	dc, err := datacenter.Build(cfg.Datacenter, engine, engine)
	if err != nil {
		log.Fatal(err)
	}

	directory := datacenter.NewDirectory(engine, dc)
	dc.Start(engine, 0, directory)

	player := workload.NewPlayer("Player", engine, engine, dc)
	if cfg.Workload.Mode == workload.ModeMatrix {
		m, err := delaymatrix.New(dc.DelayGraph(cfg.Workload.PacketSize))
		if err != nil {
			log.Fatal(err)
		}

		player.UseDelayMatrix(m)
	}

	trace := loadTrace(cfg.Workload, len(dc.VMs))
	if err := player.Play(trace); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	if err := engine.Run(); err != nil {
		log.Fatal(err)
	}

	report(os.Stdout, player.Stats(), engine.CurrentTime(), time.Since(start))
	exit(0)
}

// exit ends the program once the atexit handlers have run.
var exit = atexit.Exit

func setupLogging() {
	if err := configureLogger(log.StandardLogger(), *logLevel, *logFile); err != nil {
		log.Fatal(err)
	}
}

// configureLogger sets up the level and format of the logger, and optionally
// a rotated log file. Fatal logs leave through the atexit handlers, so the
// log file is closed on every exit path.
func configureLogger(logger *log.Logger, level, path string) error {
	logger.ExitFunc = func(code int) {
		exit(code)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if path == "" {
		return nil
	}

	fileLogger := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 7,
		Compress:   true,
	}
	atexit.Register(func() {
		fileLogger.Close()
	})

	logger.SetOutput(io.MultiWriter(os.Stdout, fileLogger))

	return nil
}

func loadConfig() experimentConfig {
	cfg := experimentConfig{
		Datacenter: datacenter.DefaultConfig(),
		Workload:   workload.DefaultConfig(),
	}

	if *configPath != "" {
		md, err := toml.DecodeFile(*configPath, &cfg)
		if err != nil {
			log.Fatal(err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Fatalf("unknown config keys %v", undecoded)
		}
	}

	if *trafficPath != "" {
		cfg.Workload.TracePath = *trafficPath
	}

	if *mode != "" {
		cfg.Workload.Mode = workload.Mode(*mode)
	}

	cfg.Datacenter = cfg.Datacenter.WithDefaults()
	cfg.Workload = cfg.Workload.WithDefaults()

	if err := cfg.Datacenter.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := cfg.Workload.Validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

func loadTrace(cfg workload.Config, numVMs int) workload.Trace {
	if cfg.TracePath != "" {
		loader := &workload.TraceLoader{Path: cfg.TracePath}
		trace, err := loader.Load()
		if err != nil {
			log.Fatal(err)
		}

		return trace
	}

	trace, err := workload.NewGenerator(cfg.Random).Generate(numVMs)
	if err != nil {
		log.Fatal(err)
	}

	return trace
}

func printDelayMatrix(path string) {
	g, err := delaymatrix.LoadGraph(path)
	if err != nil {
		log.Fatal(err)
	}

	m, err := delaymatrix.New(g)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(m)
}

func report(
	w io.Writer,
	stats workload.Stats,
	simTime sim.VTimeInSec,
	elapsed time.Duration,
) {
	fmt.Fprintf(w, "Injected packets, %d\n", stats.Injected)
	fmt.Fprintf(w, "Delivered packets, %d\n", stats.Delivered)
	fmt.Fprintf(w, "Undelivered packets, %d\n", stats.Undelivered())
	fmt.Fprintf(w, "Injected bytes, %d\n", stats.Bytes)
	fmt.Fprintf(w, "Mean latency ms, %.10f\n", stats.MeanLatency()*1000)
	fmt.Fprintf(w, "Max latency ms, %.10f\n", stats.MaxLatency*1000)
	fmt.Fprintf(w, "Simulated time ms, %.10f\n", simTime*1000)
	fmt.Fprintf(w, "Program Execution time: %s\n", elapsed)
}
