package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"lebdeal/internal/app"
	"lebdeal/internal/bot"
	"lebdeal/internal/domain"
)

// Options configures an offline session.
type Options struct {
	Seats     int
	HumanSeat int            // -1 for bots-only autoplay
	Levels    []bot.BotLevel // per seat, ignored for the human seat
	Rules     domain.Rules
	Seed      int64 // 0 seeds from the clock
	In        io.Reader
	Out       io.Writer
	MaxTurns  int // safety cap across the whole game, 0 picks a default
}

// ErrStalled aborts a run that exceeded the turn cap.
var ErrStalled = errors.New("game exceeded turn cap")

// ErrInputClosed ends a session whose human input ran dry.
var ErrInputClosed = errors.New("input closed")

// Runner drives one table through a full game in a single process. Every
// action, human, bot or auto-pass, goes through the same Submit entry point
// the networked runtimes use.
type Runner struct {
	svc      *app.Service
	table    domain.TableState
	agents   map[int]*bot.Agent
	names    []string
	human    int
	in       *bufio.Scanner
	out      io.Writer
	maxTurns int
	armed    bool
}

// New builds a runner. Bots fill every seat except the optional human one.
func New(opts Options) (*Runner, error) {
	seats := opts.Seats
	if seats == 0 {
		seats = 4
	}
	if seats < app.MinPlayersToStartGame || seats > 4 || domain.DeckSize%seats != 0 {
		return nil, fmt.Errorf("unsupported seat count %d", seats)
	}
	if opts.HumanSeat >= seats {
		return nil, fmt.Errorf("human seat %d out of range", opts.HumanSeat)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := opts.Rules
	if rules.ScoreLimit == 0 {
		rules = domain.DefaultRules()
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	r := &Runner{
		svc:      app.NewService(rand.New(rand.NewSource(seed)), rules, 0),
		agents:   make(map[int]*bot.Agent),
		names:    make([]string, seats),
		human:    opts.HumanSeat,
		out:      out,
		maxTurns: opts.MaxTurns,
	}
	if r.maxTurns == 0 {
		r.maxTurns = 200000
	}
	if opts.In != nil {
		r.in = bufio.NewScanner(opts.In)
	}
	if r.human >= 0 && r.in == nil {
		return nil, errors.New("human seat requires an input reader")
	}

	for seat := 0; seat < seats; seat++ {
		if seat == r.human {
			r.names[seat] = "you"
			continue
		}
		level := bot.BotLevelStandard
		if seat < len(opts.Levels) {
			level = opts.Levels[seat]
		}
		brain, err := bot.NewBrain(level)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("bot-%d", seat)
		r.agents[seat] = &bot.Agent{ID: name, Name: name, Seat: seat, Strategy: brain}
		r.names[seat] = name
	}
	return r, nil
}

// Table returns the current snapshot.
func (r *Runner) Table() domain.TableState {
	return r.table
}

// Run plays the session to the end of the game and returns the final table.
func (r *Runner) Run() (domain.TableState, error) {
	table, events, err := r.svc.StartGame(len(r.names), r.names)
	if err != nil {
		return domain.TableState{}, err
	}
	r.table = table
	r.render(events)

	turns := 0
	for r.table.Phase != domain.PhaseGameFinished {
		turns++
		if turns > r.maxTurns {
			return r.table, ErrStalled
		}

		seat := r.table.ActingSeat
		var action domain.Action
		if seat == r.human {
			action, err = r.promptAction(seat)
			if err != nil {
				return r.table, err
			}
		} else {
			move, err := r.agents[seat].Play(r.table)
			if err != nil {
				return r.table, err
			}
			action = move.Action()
		}

		next, events, rej, err := r.svc.Submit(r.table, seat, action, r.names)
		if err != nil {
			return r.table, err
		}
		if rej != nil {
			if seat == r.human {
				fmt.Fprintf(r.out, "refused: %s\n", rej)
				continue
			}
			return r.table, fmt.Errorf("bot at seat %d refused: %s", seat, rej)
		}
		r.table = next
		r.render(events)

		// Offline there is no countdown clock; an armed auto-pass fires at
		// once, still as plain passes through the validator.
		if r.armed {
			r.armed = false
			if err := r.drainAutoPass(); err != nil {
				return r.table, err
			}
		}
	}
	return r.table, nil
}

func (r *Runner) drainAutoPass() error {
	for i := 0; i < len(r.names); i++ {
		if r.table.Phase != domain.PhaseInProgress || r.table.LastCombo == nil {
			return nil
		}
		seat := r.table.ActingSeat
		next, events, rej, err := r.svc.Submit(r.table, seat, domain.PassAction(), r.names)
		if err != nil {
			return err
		}
		if rej != nil {
			return fmt.Errorf("auto-pass for seat %d refused: %s", seat, rej)
		}
		fmt.Fprintf(r.out, "%s is auto-passed\n", r.names[seat])
		r.table = next
		r.render(events)
	}
	return nil
}

func (r *Runner) promptAction(seat int) (domain.Action, error) {
	for {
		fmt.Fprintf(r.out, "your hand: %s\n", cardsString(r.table.Hands[seat]))
		if r.table.LastCombo != nil {
			fmt.Fprintf(r.out, "to beat: %s (%s)\n", cardsString(r.table.LastCombo.Cards), r.table.LastCombo.Kind)
			fmt.Fprint(r.out, "play cards or pass> ")
		} else {
			fmt.Fprint(r.out, "lead cards> ")
		}
		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return domain.Action{}, err
			}
			return domain.Action{}, ErrInputClosed
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		action, err := ParseAction(line)
		if err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			continue
		}
		return action, nil
	}
}

func (r *Runner) render(events []app.Event) {
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.HandDealtPayload:
			if p.Seat == r.human {
				fmt.Fprintf(r.out, "match %d, your hand: %s\n", r.table.Match+1, cardsString(p.Hand))
			}
		case app.TableStateChangedPayload:
			t := p.Table
			if t.LastCombo != nil {
				fmt.Fprintf(r.out, "%s played %s, %s to act\n",
					r.names[t.LastSeat], cardsString(t.LastCombo.Cards), r.names[t.ActingSeat])
			} else if t.Phase == domain.PhaseInProgress {
				fmt.Fprintf(r.out, "trick over, %s leads\n", r.names[t.ActingSeat])
			}
		case app.AutoPassArmedPayload:
			fmt.Fprintf(r.out, "%s's play cannot be beaten\n", r.names[p.Seat])
			r.armed = true
		case app.MatchEndedPayload:
			fmt.Fprintf(r.out, "match %d won by %s, penalties %v, totals %v\n",
				p.Match+1, r.names[p.Winner], p.Deltas, p.Scores.Totals)
		case app.GameEndedPayload:
			fmt.Fprintf(r.out, "game over, %s wins with %d points\n",
				r.names[p.Winner], p.Scores.Totals[p.Winner])
		}
	}
}

func cardsString(cards []domain.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
