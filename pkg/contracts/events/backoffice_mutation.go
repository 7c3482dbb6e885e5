package events

import (
	"encoding/json"
	"time"
)

// Evento publicado no tópico "backoffice_audit" após cada escrita bem-sucedida no backend.
type BackofficeMutation struct {
	ID        string          `json:"id"`
	Entity    string          `json:"entity"`    // "bets" | "bookies" | "customers" | "events"
	Operation string          `json:"operation"` // "create" | "update" | "delete"
	TargetID  string          `json:"target_id,omitempty"`
	Version   string          `json:"version,omitempty"` // token da linha no momento da escrita
	Payload   json.RawMessage `json:"payload,omitempty"`
	Ts        time.Time       `json:"ts"`
}
