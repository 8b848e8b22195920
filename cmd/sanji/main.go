package main

import (
	"context"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sanji/internal/chime"
	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/tui"
	"github.com/vancomm/sanji/internal/wordbank"
)

var (
	level   = flag.Int("level", 0, "stage to start from")
	words   = flag.String("words", "", "CSV word bank (default: the embedded one)")
	seed    = flag.Uint64("seed", 0, "random seed (default: random)")
	logPath = flag.String("log", "sanji.log", "log file")
	sound   = flag.Bool("sound", false, "play chimes")
	volume  = flag.Float64("volume", -1, "chime volume in halvings")
)

// setupLogging sends everything to a rotating file: the terminal belongs to
// the game.
func setupLogging() (*logrus.Logger, error) {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetLevel(logLevel)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   *logPath,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}

func newRand() *rand.Rand {
	if *seed != 0 {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func loadBank() (wordbank.Bank, error) {
	if *words != "" {
		return wordbank.LoadFile(*words)
	}
	return wordbank.Default()
}

func run(ctx context.Context, log *logrus.Logger) error {
	bank, err := loadBank()
	if err != nil {
		return err
	}
	log.WithField("words", len(bank)).Info("word bank loaded")

	var player chime.Player = chime.Nop{}
	if *sound {
		s, err := chime.NewSpeaker(*volume)
		if err != nil {
			log.WithError(err).Warn("sound disabled")
		} else {
			defer s.Close()
			player = s
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	game, err := tui.New(screen, tui.Options{
		Level: *level,
		Bank:  bank,
		Rand:  newRand(),
		Chime: player,
		Log:   log,
	})
	if err != nil {
		return err
	}
	return game.Run(ctx)
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	log, err := setupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.WithError(err).Error("game stopped")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
