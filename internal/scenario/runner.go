package scenario

import (
	"math/rand"

	"go.uber.org/zap"

	"shardring/internal/app"
	"shardring/internal/config"
	"shardring/internal/domain"
)

// Result is the outcome of a single step. Err is the reason a request was
// dropped; Mismatch is set when the step's expectation did not hold.
type Result struct {
	Index    int
	Step     Step
	Err      error
	Lines    []string
	Mismatch bool
}

// Report is the outcome of a whole run.
type Report struct {
	Seed    int64
	Results []Result
	Match   *domain.MatchState
}

// Mismatches returns the steps whose expectation failed.
func (r Report) Mismatches() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Mismatch {
			out = append(out, res)
		}
	}
	return out
}

// Runner applies scenario steps to a fresh match.
type Runner struct {
	cfg    config.GameConfig
	logger *zap.Logger
}

// NewRunner builds a runner. A nil logger discards output.
func NewRunner(cfg config.GameConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run replays sc with the given seed. Steps are applied in order; a dropped
// step does not stop the run.
func (r *Runner) Run(sc Scenario, seed int64) Report {
	svc := app.NewService(r.cfg, rand.New(rand.NewSource(seed)))
	m := svc.NewMatch()
	report := Report{Seed: seed, Match: m}

	log := r.logger.With(zap.String("scenario", sc.Name), zap.Int64("seed", seed))
	for i, st := range sc.Steps {
		req := toRequest(st)
		events, err := svc.Apply(m, req)

		res := Result{Index: i + 1, Step: st, Err: err}
		for _, ev := range events {
			res.Lines = append(res.Lines, ev.Line)
		}
		switch st.Expect {
		case ExpectOK:
			res.Mismatch = err != nil
		case ExpectDropped:
			res.Mismatch = err == nil
		}

		fields := []zap.Field{
			zap.Int("step", res.Index),
			zap.String("player", st.Player),
			zap.String("do", st.Do),
		}
		if err != nil {
			log.Info("request dropped", append(fields, zap.Error(err))...)
		} else {
			log.Debug("request applied", append(fields,
				zap.Int("events", len(events)),
				zap.Int("alive", m.AliveCount()),
			)...)
			for _, ev := range events {
				log.Debug("match event", append([]zap.Field{zap.Int("step", res.Index)}, eventFields(ev)...)...)
			}
		}
		if res.Mismatch {
			log.Warn("expectation failed", append(fields, zap.String("expect", st.Expect))...)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func toRequest(st Step) app.Request {
	req := app.Request{UserID: UserID(st.Player), Name: st.Name}
	switch st.Do {
	case DoJoin:
		req.Kind = app.RequestJoin
	case DoStart:
		req.Kind = app.RequestStart
	case DoRoll:
		req.Kind = app.RequestRoll
	case DoLeave:
		req.Kind = app.RequestDisconnect
	case DoEnd:
		req.Kind = app.RequestAction
		req.Action = app.Action{Kind: app.ActionEndTurn}
	case DoRotate, DoMove, DoSwap:
		req.Kind = app.RequestAction
		req.Action = app.Action{Kind: actionKinds[st.Do]}
		if st.Room != nil && st.Slot != nil {
			req.Action.Target = &domain.Position{Room: *st.Room, Slot: *st.Slot}
		}
	}
	return req
}

var actionKinds = map[string]app.ActionKind{
	DoRotate: app.ActionRotate,
	DoMove:   app.ActionMove,
	DoSwap:   app.ActionSwap,
}

// eventFields flattens an event and its payload into log fields.
func eventFields(ev app.Event) []zap.Field {
	fields := []zap.Field{zap.String("kind", string(ev.Kind)), zap.String("line", ev.Line)}
	switch p := ev.Payload.(type) {
	case app.PlayerJoinedPayload:
		fields = append(fields, zap.String("user", p.UserID), zap.Int("public_id", p.PublicID))
	case app.PlayerLeftPayload:
		fields = append(fields, zap.String("user", p.UserID), zap.Bool("removed", p.Removed))
	case app.DiceRolledPayload:
		fields = append(fields, zap.String("user", p.UserID), zap.Int("room", p.Room))
	case app.DemonSummonedPayload:
		fields = append(fields, zap.Int("room", p.Room))
	case app.ShardRotatedPayload:
		fields = append(fields, zap.String("user", p.UserID), posField("target", p.Target), zap.Int("rotation", p.Rotation))
	case app.PlayerMovedPayload:
		fields = append(fields, zap.String("user", p.UserID), posField("from", p.From), posField("to", p.To))
	case app.ShardsSwappedPayload:
		fields = append(fields, zap.String("user", p.UserID), posField("a", p.A), posField("b", p.B))
	case app.TurnEndedPayload:
		fields = append(fields, zap.String("user", p.UserID), zap.Int("next_turn", p.NextTurnIdx), zap.Bool("new_round", p.NewRound))
	case app.DemonMovedPayload:
		fields = append(fields, zap.Int("room", p.Room))
	case app.PlayerDamagedPayload:
		fields = append(fields, zap.String("user", p.UserID), zap.Int("hp", p.HP))
	case app.PlayerSlainPayload:
		fields = append(fields, zap.String("user", p.UserID))
	}
	return fields
}

func posField(key string, p domain.Position) zap.Field {
	return zap.Ints(key, []int{p.Room, p.Slot})
}
