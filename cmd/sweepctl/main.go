// Command sweepctl plays a game in the terminal. It reads protocol lines
// (o x y, f x y, n, g) from stdin and prints the board after each one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/protocol"
)

var (
	log = logrus.New()

	width    int
	height   int
	mineCnt  int
	seed     string
	board    string
	logPath  string
	logDebug bool
)

func init() {
	flag.IntVar(&width, "width", 30, "board width")
	flag.IntVar(&height, "height", 16, "board height")
	flag.IntVar(&mineCnt, "mines", 70, "number of mines")
	flag.StringVar(&board, "board", "", "board as W:H:B, overrides -width -height -mines")
	flag.StringVar(&seed, "seed", "", "replay the board for this seed phrase")
	flag.StringVar(&logPath, "log", "sweepctl.log", "log file path")
	flag.BoolVar(&logDebug, "v", false, "debug logging")
}

// setupLogging sends logrus output to a rotating file and points the core's
// slog logger at it. The returned closer ends the bridge between the two.
func setupLogging() (io.Closer, error) {
	level := logrus.InfoLevel
	if logDebug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, err
	}
	log.AddHook(hook)

	w := log.WriterLevel(logrus.DebugLevel)
	mines.Log = slog.New(slog.NewTextHandler(
		w, &slog.HandlerOptions{Level: slog.LevelDebug},
	))
	return w, nil
}

func banner(s *mines.Session) string {
	switch {
	case s.Phase() != mines.Ended:
		return ""
	case s.Won():
		return "YOU WIN! (n to play again)\n"
	default:
		return "GAME OVER (n to play again)\n"
	}
}

// play feeds lines from in to s until in runs out. Bad lines are reported
// and skipped.
func play(in io.Reader, out io.Writer, s *mines.Session) error {
	fmt.Fprint(out, protocol.Render(s.Board()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		outcome, err := protocol.Execute(s, line)
		if err != nil {
			log.WithField("line", line).WithError(err).Warn("rejected command")
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		log.WithFields(logrus.Fields{
			"line":    line,
			"changed": len(outcome.Changed),
			"phase":   outcome.Phase.String(),
		}).Debug("applied")

		fmt.Fprint(out, protocol.Render(s.Board()))
		fmt.Fprint(out, banner(s))
	}
	return scanner.Err()
}

func run() int {
	closer, err := setupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to open log file:", err)
		return 1
	}
	defer closer.Close()

	params := mines.GameParams{Width: width, Height: height, MineCount: mineCnt}
	if board != "" {
		p, err := mines.ParseSeed(board)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		params = *p
	}
	rnd := mines.NewRand()
	if seed != "" {
		rnd = mines.SeededRand(params.Seed() + "/" + seed)
	}

	s, err := mines.NewSession(params, rnd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log.WithFields(logrus.Fields{"params": params.Seed(), "seed": seed}).Info("new game")

	if err := play(os.Stdin, os.Stdout, s); err != nil {
		log.WithError(err).Error("reading stdin")
		return 1
	}
	return 0
}

func main() {
	flag.Parse()
	os.Exit(run())
}
