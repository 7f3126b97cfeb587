package nakama

import (
	"encoding/json"
	"errors"
	"fmt"

	"shardring/internal/app"
	"shardring/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var errUnknownOpCode = errors.New("unknown op code")

type joinGameRequest struct {
	Name string `json:"name"`
}

type positionMessage struct {
	Room int `json:"room"`
	Slot int `json:"slot"`
}

type actionRequest struct {
	Type   string           `json:"type"`
	Target *positionMessage `json:"target,omitempty"`
}

// decodeRequest maps an inbound match message to an app request. Start and
// roll messages carry no payload.
func decodeRequest(msg runtime.MatchData) (app.Request, error) {
	req := app.Request{UserID: msg.GetUserId()}
	data := msg.GetData()

	switch msg.GetOpCode() {
	case OpJoinGame:
		req.Kind = app.RequestJoin
		if len(data) > 0 {
			var body joinGameRequest
			if err := json.Unmarshal(data, &body); err != nil {
				return req, fmt.Errorf("decode join: %w", err)
			}
			req.Name = body.Name
		}
	case OpStartGame:
		req.Kind = app.RequestStart
	case OpRollDice:
		req.Kind = app.RequestRoll
	case OpAction:
		var body actionRequest
		if err := json.Unmarshal(data, &body); err != nil {
			return req, fmt.Errorf("decode action: %w", err)
		}
		req.Kind = app.RequestAction
		req.Action = app.Action{Kind: app.ActionKind(body.Type)}
		if body.Target != nil {
			req.Action.Target = &domain.Position{Room: body.Target.Room, Slot: body.Target.Slot}
		}
	default:
		return req, fmt.Errorf("%w: %d", errUnknownOpCode, msg.GetOpCode())
	}
	return req, nil
}

type playerView struct {
	ID       string `json:"id"`
	PublicID int    `json:"publicId"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Room     *int   `json:"r"`
	Slot     *int   `json:"s"`
	HP       int    `json:"hp"`
	AP       int    `json:"ap"`
	Alive    bool   `json:"alive"`
}

type demonView struct {
	Room *int `json:"r"`
}

type shardView struct {
	Room     int    `json:"r"`
	Slot     int    `json:"s"`
	Rotation int    `json:"rot"`
	Edges    [3]int `json:"edges"`
}

// snapshotView is the full match state as sent to every observer.
type snapshotView struct {
	Phase     string       `json:"phase"`
	TurnIdx   int          `json:"turnIdx"`
	SetupStep int          `json:"setupStep"`
	Players   []playerView `json:"players"`
	Demon     demonView    `json:"demon"`
	Shards    []shardView  `json:"shards"`
	Logs      []string     `json:"logs"`
}

type messageView struct {
	Message string `json:"message"`
}

func toSnapshot(m *domain.MatchState) snapshotView {
	view := snapshotView{
		Phase:     string(m.Phase),
		TurnIdx:   m.TurnIdx,
		SetupStep: m.SetupStep,
		Players:   make([]playerView, 0, len(m.Players)),
		Logs:      append([]string{}, m.Log...),
	}
	for _, p := range m.Players {
		pv := playerView{
			ID:       p.UserID,
			PublicID: p.PublicID,
			Name:     p.Name,
			Color:    p.Color,
			HP:       p.HP,
			AP:       p.AP,
			Alive:    p.Alive,
		}
		if p.Pos != nil {
			pv.Room = domain.IntPtr(p.Pos.Room)
			pv.Slot = domain.IntPtr(p.Pos.Slot)
		}
		view.Players = append(view.Players, pv)
	}
	if room, ok := m.DemonRoom(); ok {
		view.Demon.Room = domain.IntPtr(room)
	}
	if m.Grid != nil {
		view.Shards = make([]shardView, 0, len(m.Grid.Shards))
		for _, sh := range m.Grid.Shards {
			view.Shards = append(view.Shards, shardView{
				Room:     sh.Room,
				Slot:     sh.Slot,
				Rotation: sh.Rotation,
				Edges:    sh.Edges,
			})
		}
	}
	return view
}

// EncodeSnapshot renders the full match state in the client wire shape.
func EncodeSnapshot(m *domain.MatchState) ([]byte, error) {
	return json.Marshal(toSnapshot(m))
}

func encodeMessage(text string) ([]byte, error) {
	return json.Marshal(messageView{Message: text})
}

// encodeLabel renders the match label used by quick-match queries. open is
// the remaining capacity while the lobby accepts joins.
func encodeLabel(m *domain.MatchState, maxPlayers int) (string, error) {
	open := 0
	if m.Phase == domain.PhaseLobby {
		open = max(maxPlayers-len(m.Players), 0)
	}
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":  GameLabel,
		"phase": string(m.Phase),
		"open":  open,
	})
	if err != nil {
		return "", err
	}
	labelBytes, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}
