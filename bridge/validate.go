package bridge

import (
	"encoding/json"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// validDID tells if s is a base58 encoded 16 or 32 byte DID.
func validDID(s string) bool {
	b, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(b) == 16 || len(b) == 32
}

func checkDID(d errcode.Domain, s string) error {
	if s == "" {
		return d.New(errcode.InvalidDID, "DID is not configured")
	}
	if _, err := base58.Decode(s); err != nil {
		return d.New(errcode.NotBase58, "%s", s)
	}
	if !validDID(s) {
		return d.New(errcode.InvalidDID, "%s", s)
	}
	return nil
}

func required(d errcode.Domain, name, value string) error {
	if value == "" {
		return d.New(errcode.InvalidOption, "%s is required", name)
	}
	return nil
}

func parseStrings(d errcode.Domain, data string) (ss []string, err error) {
	if err = json.Unmarshal([]byte(data), &ss); err != nil {
		return nil, d.New(errcode.InvalidJSON, "%v", err)
	}
	return ss, nil
}

// sourceID returns id or a new UUID if it's empty.
func sourceID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}
