package main

import (
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/solver"
)

var log = logrus.New()

var (
	width     int
	height    int
	mineCount int
	boardPath string
	startX    int
	startY    int
	stepLimit int
	maxRounds int
	attempts  int
	seed      uint64
	logPath   string
	verbose   bool
)

func init() {
	flag.IntVar(&width, "width", 9, "board width")
	flag.IntVar(&height, "height", 9, "board height")
	flag.IntVar(&mineCount, "mines", 10, "mine count")
	flag.StringVar(&boardPath, "board", "", "path to a board file to solve instead of generating one")
	flag.IntVar(&startX, "x", -1, "start cell x (simulate a run instead of searching)")
	flag.IntVar(&startY, "y", -1, "start cell y (simulate a run instead of searching)")
	flag.IntVar(&stepLimit, "step-limit", 0, "solver step limit per deduction (0 = default)")
	flag.IntVar(&maxRounds, "max-rounds", 0, "deduction rounds per simulated game (0 = default)")
	flag.IntVar(&attempts, "attempts", 0, "board generation attempts (0 = default)")
	flag.Uint64Var(&seed, "seed", 0, "rng seed (0 = random)")
	flag.StringVar(&logPath, "log", "", "log file path (rotated)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
}

func setupLogging() error {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logPath == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func createRand() *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func loadOrGenerate(opts solver.Options) (*board.Board, *board.Point, error) {
	if boardPath != "" {
		b, err := board.ParseFile(boardPath)
		return b, nil, err
	}
	b, start, err := solver.GenerateNoGuess(width, height, mineCount, createRand(), opts)
	if err != nil {
		return nil, nil, err
	}
	return b, &start, nil
}

func run() error {
	opts := solver.Options{
		StepLimit:   stepLimit,
		MaxRounds:   maxRounds,
		MaxAttempts: attempts,
	}

	b, start, err := loadOrGenerate(opts)
	if err != nil {
		return err
	}

	if start == nil && startX >= 0 && startY >= 0 {
		pt := board.Point{X: startX, Y: startY}
		result, err := solver.Simulate(b, pt, opts)
		if err != nil {
			return err
		}
		fmt.Println(b)
		fmt.Printf("start %s: %s after %d round(s)\n", pt, result.Status, result.Rounds)
		return nil
	}

	if start == nil {
		pt, result, err := solver.FindSafeStart(b, opts)
		if errors.Is(err, solver.ErrNoSafeStart) {
			fmt.Println(b)
			fmt.Println("no safe start: every opening eventually requires a guess")
			return nil
		}
		if err != nil {
			return err
		}
		start = &pt
		log.WithFields(logrus.Fields{
			"start":  pt.String(),
			"rounds": result.Rounds,
		}).Debug("found safe start")
	}

	fmt.Println(b)
	fmt.Printf("safe start: %s\n", start)
	return nil
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}
