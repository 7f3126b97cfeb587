package nakama

import (
	"encoding/json"
	"errors"
	"testing"

	"shardring/internal/app"
	"shardring/internal/domain"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		msg     mockMatchData
		want    app.Request
		wantErr bool
	}{
		{
			name: "JoinWithName",
			msg:  mockMatchData{userID: "u1", opCode: OpJoinGame, data: []byte(`{"name":"Ann"}`)},
			want: app.Request{Kind: app.RequestJoin, UserID: "u1", Name: "Ann"},
		},
		{
			name: "JoinWithoutPayload",
			msg:  mockMatchData{userID: "u1", opCode: OpJoinGame},
			want: app.Request{Kind: app.RequestJoin, UserID: "u1"},
		},
		{
			name: "Start",
			msg:  mockMatchData{userID: "u1", opCode: OpStartGame, data: []byte(`ignored`)},
			want: app.Request{Kind: app.RequestStart, UserID: "u1"},
		},
		{
			name: "Roll",
			msg:  mockMatchData{userID: "u1", opCode: OpRollDice},
			want: app.Request{Kind: app.RequestRoll, UserID: "u1"},
		},
		{
			name: "EndTurn",
			msg:  mockMatchData{userID: "u1", opCode: OpAction, data: []byte(`{"type":"endTurn"}`)},
			want: app.Request{Kind: app.RequestAction, UserID: "u1", Action: app.Action{Kind: app.ActionEndTurn}},
		},
		{
			name:    "BadJoin",
			msg:     mockMatchData{userID: "u1", opCode: OpJoinGame, data: []byte(`[`)},
			wantErr: true,
		},
		{
			name:    "ActionWithoutPayload",
			msg:     mockMatchData{userID: "u1", opCode: OpAction},
			wantErr: true,
		},
		{
			name:    "UnknownOpCode",
			msg:     mockMatchData{userID: "u1", opCode: 42},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := decodeRequest(test.msg)
			if test.wantErr {
				if err == nil {
					t.Fatalf("decodeRequest() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeRequest() error: %v", err)
			}
			if got.Kind != test.want.Kind || got.UserID != test.want.UserID || got.Name != test.want.Name || got.Action.Kind != test.want.Action.Kind {
				t.Fatalf("decodeRequest() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestDecodeRequestActionTarget(t *testing.T) {
	msg := mockMatchData{userID: "u1", opCode: OpAction, data: []byte(`{"type":"swap","target":{"room":3,"slot":2}}`)}
	req, err := decodeRequest(msg)
	if err != nil {
		t.Fatalf("decodeRequest() error: %v", err)
	}
	if req.Action.Kind != app.ActionSwap {
		t.Fatalf("kind = %s, want swap", req.Action.Kind)
	}
	if req.Action.Target == nil || *req.Action.Target != (domain.Position{Room: 3, Slot: 2}) {
		t.Fatalf("target = %v", req.Action.Target)
	}
}

func TestDecodeRequestUnknownOpCodeIsTyped(t *testing.T) {
	_, err := decodeRequest(mockMatchData{opCode: 7})
	if !errors.Is(err, errUnknownOpCode) {
		t.Fatalf("err = %v, want errUnknownOpCode", err)
	}
}

func TestEncodeLabel(t *testing.T) {
	m := domain.NewMatchState(nil)
	m.Players = append(m.Players, domain.NewPlayer("u1", "", 0, 3, 3), domain.NewPlayer("u2", "", 1, 3, 3))

	tests := []struct {
		name  string
		phase domain.Phase
		open  float64
	}{
		{"Lobby", domain.PhaseLobby, 3},
		{"Setup", domain.PhaseSetup, 0},
		{"Playing", domain.PhasePlaying, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m.Phase = test.phase
			label, err := encodeLabel(m, 5)
			if err != nil {
				t.Fatalf("encodeLabel() error: %v", err)
			}
			got := decodeLabel(t, label)
			if got["game"] != GameLabel || got["phase"] != string(test.phase) || got["open"] != test.open {
				t.Fatalf("label = %v", got)
			}
		})
	}
}

func TestSnapshotWireShape(t *testing.T) {
	m := domain.NewMatchState(&domain.Grid{
		Rooms:  2,
		Slots:  1,
		Shards: []domain.Shard{{Room: 0, Slot: 0, Rotation: 120, Edges: [3]int{0, 1, 2}}, {Room: 1, Slot: 0}},
	})
	pl := domain.NewPlayer("u1", "Ann", 0, 3, 2)
	pl.Pos = &domain.Position{Room: 1, Slot: 0}
	m.Players = append(m.Players, pl, domain.NewPlayer("u2", "", 1, 3, 3))
	m.Demon.Room = domain.IntPtr(1)
	m.Phase = domain.PhasePlaying
	m.AppendLog("hello")

	data, err := EncodeSnapshot(m)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"phase", "turnIdx", "setupStep", "players", "demon", "shards", "logs"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("snapshot missing %q: %s", key, data)
		}
	}

	players := raw["players"].([]interface{})
	first := players[0].(map[string]interface{})
	if first["id"] != "u1" || first["publicId"] != float64(0) || first["r"] != float64(1) || first["s"] != float64(0) || first["ap"] != float64(2) {
		t.Fatalf("player = %v", first)
	}
	second := players[1].(map[string]interface{})
	if second["r"] != nil || second["name"] != "Player 2" {
		t.Fatalf("unplaced player = %v", second)
	}

	if demon := raw["demon"].(map[string]interface{}); demon["r"] != float64(1) {
		t.Fatalf("demon = %v", demon)
	}
	shard := raw["shards"].([]interface{})[0].(map[string]interface{})
	if shard["rot"] != float64(120) || len(shard["edges"].([]interface{})) != 3 {
		t.Fatalf("shard = %v", shard)
	}
	if logs := raw["logs"].([]interface{}); len(logs) != 1 || logs[0] != "hello" {
		t.Fatalf("logs = %v", logs)
	}
}
