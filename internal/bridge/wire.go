package bridge

import (
	"encoding/json"
	"fmt"

	whacamole "github.com/darragh0/emb-whacamole"
)

// Wire line shapes. One JSON object per line; field names and order are
// the protocol, so each variant gets its own struct.

type wireSessionStart struct {
	EventType string `json:"event_type"`
}

type wirePopResult struct {
	EventType  string `json:"event_type"`
	MoleID     int    `json:"mole_id"`
	Outcome    string `json:"outcome"`
	ReactionMS uint   `json:"reaction_ms"`
	Lives      int    `json:"lives"`
	Lvl        int    `json:"lvl"`
	Pop        int    `json:"pop"`
	PopsTotal  int    `json:"pops_total"`
}

type wireLevelComplete struct {
	EventType string `json:"event_type"`
	Lvl       int    `json:"lvl"`
}

type wireSessionEnd struct {
	EventType string `json:"event_type"`
	Win       bool   `json:"win"`
}

type wireIdentify struct {
	EventType string `json:"event_type"`
	DeviceID  string `json:"device_id"`
}

// encodeEvent serializes an event to its wire line (without the trailing
// newline). The type switch is exhaustive over the event variants.
func encodeEvent(ev whacamole.Event) ([]byte, error) {
	switch e := ev.(type) {
	case whacamole.SessionStart:
		return json.Marshal(wireSessionStart{EventType: "session_start"})
	case whacamole.PopResult:
		return json.Marshal(wirePopResult{
			EventType:  "pop_result",
			MoleID:     e.Mole,
			Outcome:    e.Outcome.String(),
			ReactionMS: e.ReactionMS,
			Lives:      e.Lives,
			Lvl:        e.Level,
			Pop:        e.Pop,
			PopsTotal:  e.PopsTotal,
		})
	case whacamole.LevelComplete:
		return json.Marshal(wireLevelComplete{EventType: "lvl_complete", Lvl: e.Level})
	case whacamole.SessionEnd:
		return json.Marshal(wireSessionEnd{EventType: "session_end", Win: e.Won})
	}
	return nil, fmt.Errorf("unknown event type %T", ev)
}

func encodeIdentify(deviceID string) ([]byte, error) {
	return json.Marshal(wireIdentify{EventType: "identify", DeviceID: deviceID})
}
