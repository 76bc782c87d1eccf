package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
)

const (
	ServerKey = "defaultkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// Wire constants mirrored from the server module; internal packages are not
// importable from here.
const (
	OpCodeStartGame      int64 = 2
	OpCodeStartPlacement int64 = 3
	OpCodePlaceCard      int64 = 4

	OpCodeLobbyState  int64 = 24
	OpCodeGameStarted int64 = 25
	OpCodeCardDealt   int64 = 27
	OpCodeRoundResult int64 = 32
)

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string
	Name    string
}

// NewTestClient authenticates a fresh device account under the given display
// name and opens a realtime socket.
func NewTestClient(t *testing.T, name string) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("test_device_%s_%d", name, time.Now().UnixNano())
	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, name)
	if err != nil {
		t.Fatalf("Failed to authenticate %s: %v", name, err)
	}

	socket := client.NewSocket()
	if err := socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket for %s: %v", name, err)
	}

	return &TestClient{
		Client:  client,
		Session: session,
		Socket:  socket,
		UserID:  session.UserId,
		Name:    name,
	}
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

// CreateRoom calls the create_room RPC and joins the returned match.
func (tc *TestClient) CreateRoom(t *testing.T) (code, matchID string) {
	payload, _ := json.Marshal(map[string]string{"name": tc.Name})
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "create_room", string(payload))
	if err != nil {
		t.Fatalf("RPC create_room failed: %v", err)
	}

	var resp struct {
		Code    string `json:"code"`
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("Failed to decode create_room response: %v", err)
	}
	if resp.Code == "" || resp.MatchID == "" {
		t.Fatalf("create_room returned incomplete response: %+v", resp)
	}

	if _, err := tc.Socket.JoinMatch(context.Background(), nil, resp.MatchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", resp.MatchID, err)
	}
	return resp.Code, resp.MatchID
}

// JoinRoom resolves a room code via the join_room RPC and joins the match.
func (tc *TestClient) JoinRoom(t *testing.T, code string) string {
	payload, _ := json.Marshal(map[string]string{"code": code})
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "join_room", string(payload))
	if err != nil {
		t.Fatalf("RPC join_room failed: %v", err)
	}

	var resp struct {
		MatchID string `json:"match_id"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil {
		t.Fatalf("Failed to decode join_room response: %v", err)
	}

	if _, err := tc.Socket.JoinMatch(context.Background(), nil, resp.MatchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", resp.MatchID, err)
	}
	return resp.MatchID
}

// WaitForMatchState waits for a specific opcode from the socket.
func (tc *TestClient) WaitForMatchState(t *testing.T, opCode int64, timeout time.Duration) *rtapi.MatchData {
	ch := make(chan *rtapi.MatchData, 1)

	originalHandler := tc.Socket.OnMatchData
	tc.Socket.OnMatchData = func(data *rtapi.MatchData) {
		if data.OpCode == opCode {
			select {
			case ch <- data:
			default:
			}
		}
		if originalHandler != nil {
			originalHandler(data)
		}
	}

	select {
	case data := <-ch:
		return data
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for OpCode %d", opCode)
		return nil
	}
}
