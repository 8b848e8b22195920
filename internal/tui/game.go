package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sanji/internal/chime"
	"github.com/vancomm/sanji/internal/sanji"
)

const (
	finishedBanner = " ALL CLEAR   r: again   q: quit "
	advanceDelay   = 800 * time.Millisecond
)

// advance is posted back to the event loop once a solved stage has been on
// screen for advanceDelay.
type advance struct {
	level int
}

type Options struct {
	Level int
	Bank  []string
	Rand  sanji.Rand
	Chime chime.Player
	Log   logrus.FieldLogger
}

type Game struct {
	screen   tcell.Screen
	renderer *Renderer
	opts     Options

	session  *sanji.Session
	cursor   int
	pressed  bool
	finished bool
}

func New(screen tcell.Screen, opts Options) (*Game, error) {
	if opts.Chime == nil {
		opts.Chime = chime.Nop{}
	}
	if opts.Log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		opts.Log = logger
	}
	g := &Game{
		screen:   screen,
		renderer: NewRenderer(screen),
		opts:     opts,
	}
	if err := g.start(opts.Level); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Session() *sanji.Session {
	return g.session
}

func (g *Game) Finished() bool {
	return g.finished
}

func (g *Game) start(level int) error {
	s, err := sanji.NewSession(level, g.opts.Bank, g.opts.Rand)
	if err != nil {
		return err
	}
	g.session = s
	g.cursor = 0
	g.finished = false
	g.opts.Log.WithFields(logrus.Fields{
		"level": level,
		"words": s.Words(),
	}).Debug("stage started")
	return nil
}

func (g *Game) Draw() {
	banner := ""
	if g.finished {
		banner = finishedBanner
	}
	g.renderer.Draw(g.session, g.cursor, banner)
}

// press feeds one pointer press or key activation to the session.
func (g *Game) press(indices ...int) {
	if len(indices) == 0 || g.session.Solved() {
		return
	}
	res, err := g.session.Press(indices...)
	if err != nil {
		g.opts.Log.WithError(err).Warn("press rejected")
		return
	}
	if len(res.Locked) == 0 {
		return
	}
	g.opts.Log.WithFields(logrus.Fields{
		"level":   g.session.Level(),
		"triples": res.Locked,
	}).Info("triples locked")

	if !res.Solved {
		g.opts.Chime.Lock()
		return
	}
	g.opts.Chime.Solve()
	level := g.session.Level()
	g.opts.Log.WithField("level", level).Info("stage solved")
	time.AfterFunc(advanceDelay, func() {
		g.screen.PostEvent(tcell.NewEventInterrupt(advance{level: level}))
	})
}

func (g *Game) onAdvance(a advance) error {
	if !g.session.Solved() || g.session.Level() != a.level {
		return nil
	}
	if a.level+1 >= sanji.LevelCount {
		g.finished = true
		return nil
	}
	next, err := sanji.NextLevel(g.session, g.opts.Bank, g.opts.Rand)
	if err != nil {
		return err
	}
	g.session = next
	g.cursor = 0
	g.opts.Log.WithFields(logrus.Fields{
		"level": next.Level(),
		"words": next.Words(),
	}).Debug("stage started")
	return nil
}

func (g *Game) moveCursor(delta int) {
	g.cursor = min(max(g.cursor+delta, 0), g.session.Len()-1)
}

// HandleEvent applies ev and reports whether the game should keep running.
func (g *Game) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false, nil
		case tcell.KeyLeft:
			g.moveCursor(-3)
		case tcell.KeyRight:
			g.moveCursor(3)
		case tcell.KeyUp:
			g.moveCursor(-1)
		case tcell.KeyDown:
			g.moveCursor(1)
		case tcell.KeyEnter:
			g.press(g.cursor)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false, nil
			case ' ':
				g.press(g.cursor)
			case 'r':
				if err := g.start(g.opts.Level); err != nil {
					return false, err
				}
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !g.pressed {
			x, y := ev.Position()
			if col, row, ok := g.renderer.Viewport().ToBoard(x, y); ok {
				bx, by := CellCenter(col, row)
				g.press(HitTest(g.session.Chips(), bx, by)...)
			}
		}
		g.pressed = down

	case *tcell.EventResize:
		g.renderer.Resize()
		g.screen.Sync()

	case *tcell.EventInterrupt:
		if a, ok := ev.Data().(advance); ok {
			if err := g.onAdvance(a); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// pollEvents forwards screen events until the screen is finalized or ctx
// ends. events is closed only when the screen stops.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run draws and handles events until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, g.screen, events)

	g.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			running, err := g.HandleEvent(ev)
			if err != nil || !running {
				return err
			}
			g.Draw()
		}
	}
}
