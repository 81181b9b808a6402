package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/dpersh/robot/arbiter"
	dmn "github.com/dpersh/robot/domain"
	"github.com/dpersh/robot/robot"
	"github.com/dpersh/robot/service/i"
	"github.com/dpersh/robot/world"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultWorldSize = 25
	defaultDensity   = 0.2

	leaderboardKeyFmt = "%s:leaderboard:%dx%d"
	runLockKeyFmt     = "%s:run:%d:%dx%d"
	defaultPrefix     = "robot"
)

var (
	ErrInvariant       = errors.New("exploration invariant violated")
	ErrReportsDisabled = errors.New("report storage is not configured")
	ErrRankingDisabled = errors.New("leaderboard is not configured")
	ErrInvalidStart    = errors.New("start position outside the explorable world")
)

var _ i.Explorer = &ExplorationService{}

// WorldFactory builds the world a run explores.
type WorldFactory func(width, height int, density float32, seed int64) (*world.World, error)

// Config wires an ExplorationService. Reports, Leaderboard and Locker are optional.
type Config struct {
	WorldFactory   WorldFactory
	Reports        i.ReportRepo
	Leaderboard    i.Leaderboard
	Locker         i.RunLocker
	Logger         logrus.FieldLogger
	Prefix         string
	DefaultWidth   int
	DefaultHeight  int
	DefaultDensity float32
}

// ExplorationService lands a robot in a freshly built world, lets it explore
// and reports the outcome.
type ExplorationService struct {
	worldFactory WorldFactory
	reports      i.ReportRepo
	leaderboard  i.Leaderboard
	locker       i.RunLocker
	logger       logrus.FieldLogger
	prefix       string
	width        int
	height       int
	density      float32
}

// NewWorld is the default WorldFactory: a randomly blocked interior with an
// occupied border, reproducible from seed.
func NewWorld(width, height int, density float32, seed int64) (*world.World, error) {
	return world.New(width, height, world.ObstacleModel{Density: density}, rand.New(rand.NewSource(seed)))
}

// NewExplorationService creates the service, filling unset configuration with defaults.
func NewExplorationService(c *Config) (*ExplorationService, error) {
	if c == nil {
		c = &Config{}
	}

	s := &ExplorationService{
		worldFactory: c.WorldFactory,
		reports:      c.Reports,
		leaderboard:  c.Leaderboard,
		locker:       c.Locker,
		logger:       c.Logger,
		prefix:       c.Prefix,
		width:        c.DefaultWidth,
		height:       c.DefaultHeight,
		density:      c.DefaultDensity,
	}

	if s.worldFactory == nil {
		s.worldFactory = NewWorld
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}
	if s.prefix == "" {
		s.prefix = defaultPrefix
	}
	if s.width <= 0 {
		s.width = defaultWorldSize
	}
	if s.height <= 0 {
		s.height = defaultWorldSize
	}
	if s.density == 0 {
		s.density = defaultDensity
	}
	if s.density < 0 || s.density > 1 {
		return nil, fmt.Errorf("invalid default density %v", s.density)
	}

	return s, nil
}

// Run explores one world. The robot lands in the middle of the world unless
// a start position is given; an occupied landing cell is cleared first.
func (s *ExplorationService) Run(ctx context.Context, p i.RunParams) (*dmn.Report, error) {
	p = s.withDefaults(p)
	id := uuid.New()
	log := s.logger.WithFields(logrus.Fields{
		"run":  id,
		"seed": p.Seed,
		"size": fmt.Sprintf("%dx%d", p.Width, p.Height),
	})

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, fmt.Sprintf(runLockKeyFmt, s.prefix, p.Seed, p.Width, p.Height))
		if err != nil {
			log.WithError(err).Error("acquiring run lock")
			return nil, fmt.Errorf("acquiring run lock: %w", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				log.WithError(err).Warn("releasing run lock")
			}
		}()
	}

	w, err := s.worldFactory(p.Width, p.Height, *p.Density, p.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	landing := w.Center()
	if p.StartRow != nil && p.StartCol != nil {
		landing = world.CellPosition{Row: *p.StartRow, Col: *p.StartCol}
	}
	if !w.InBound(landing.Row, landing.Col) || w.IsBorder(landing) {
		return nil, fmt.Errorf("%w: row %d col %d", ErrInvalidStart, landing.Row, landing.Col)
	}
	if err := w.Clear(landing); err != nil {
		return nil, err
	}

	report := &dmn.Report{
		ID:        id,
		Width:     p.Width,
		Height:    p.Height,
		Density:   *p.Density,
		Seed:      p.Seed,
		StartRow:  landing.Row,
		StartCol:  landing.Col,
		Reachable: w.Reachable(landing),
		Layout:    w.Layout(),
		StartedAt: time.Now().UTC(),
	}

	a, err := arbiter.New(w, landing, log)
	if err != nil {
		return nil, err
	}

	log.Info("exploration started")
	res, err := robot.NewExplorer(a, a, &robot.Options{Logger: log}).Explore()
	if err != nil {
		log.WithError(err).Error("exploration aborted")
		return nil, err
	}

	report.Visited = res.Stats.Visited
	report.Moves = res.Stats.Moves
	report.Scans = res.Stats.Scans
	report.MaxDepth = res.Stats.MaxDepth
	report.ReturnedHome = a.Position() == landing
	report.DurationMs = time.Since(report.StartedAt).Milliseconds()
	report.Map = w.String()

	if !report.ReturnedHome || report.Visited != report.Reachable || w.VisitedCount() != report.Reachable {
		log.WithFields(logrus.Fields{
			"visited":   report.Visited,
			"reachable": report.Reachable,
			"home":      report.ReturnedHome,
		}).Error("exploration finished in an inconsistent state")
		return report, ErrInvariant
	}

	log.WithFields(logrus.Fields{
		"visited": report.Visited,
		"moves":   report.Moves,
	}).Info("exploration finished")

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			log.WithError(err).Error("saving report")
			return report, fmt.Errorf("saving report: %w", err)
		}
	}

	if s.leaderboard != nil {
		board := s.boardKey(p.Width, p.Height)
		if err := s.leaderboard.Add(ctx, board, float64(report.Visited), id.String()); err != nil {
			log.WithError(err).Warn("ranking run")
		}
	}

	return report, nil
}

// ByID returns a stored report.
func (s *ExplorationService) ByID(ctx context.Context, id uuid.UUID) (*dmn.Report, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}
	return s.reports.ByID(ctx, id)
}

// Leaderboard returns the runs that visited the most cells in worlds of the given size.
func (s *ExplorationService) Leaderboard(ctx context.Context, width, height int, amount int64) ([]dmn.Ranked, error) {
	if s.leaderboard == nil {
		return nil, ErrRankingDisabled
	}
	if width <= 0 {
		width = s.width
	}
	if height <= 0 {
		height = s.height
	}
	return s.leaderboard.Top(ctx, s.boardKey(width, height), amount)
}

func (s *ExplorationService) withDefaults(p i.RunParams) i.RunParams {
	if p.Width <= 0 {
		p.Width = s.width
	}
	if p.Height <= 0 {
		p.Height = s.height
	}
	if p.Density == nil {
		d := s.density
		p.Density = &d
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	return p
}

func (s *ExplorationService) boardKey(width, height int) string {
	return fmt.Sprintf(leaderboardKeyFmt, s.prefix, width, height)
}
