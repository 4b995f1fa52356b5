package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Command is the verb carried by a POST to an entity endpoint.
type Command string

const (
	CommandCreate Command = "create"
	CommandUpdate Command = "update"
	CommandDelete Command = "delete"
)

// Envelope is the part of a mutate request every entity kind shares.
type Envelope struct {
	Command string `json:"command"`
	ID      *int   `json:"id"`
}

// ParseEnvelope decodes the command and id of a mutate body. The rest of the
// body is decoded by the entity-specific service.
func ParseEnvelope(body []byte) (Command, int, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if env.ID == nil || *env.ID < 0 {
		return "", 0, fmt.Errorf("%w: id is required", ErrInvalid)
	}
	cmd := Command(strings.ToLower(strings.TrimSpace(env.Command)))
	switch cmd {
	case CommandCreate, CommandUpdate, CommandDelete:
		return cmd, *env.ID, nil
	default:
		return "", 0, fmt.Errorf("%w: unknown command %q", ErrInvalid, env.Command)
	}
}

// ParseID reads the single "/{id}" segment captured by a catch-all route.
// Extra segments and non-integer or negative ids are rejected.
func ParseID(rest string) (int, bool) {
	seg := strings.TrimPrefix(rest, "/")
	if seg == "" || strings.Contains(seg, "/") {
		return 0, false
	}
	id, err := strconv.Atoi(seg)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
