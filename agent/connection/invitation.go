package connection

// InvitationType is the Aries message type of the connection invitation.
const InvitationType = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/connections/1.0/invitation"

// Invitation is the Aries RFC 0160 connection invitation which is given to the
// other party as invite details.
type Invitation struct {
	Type            string   `json:"@type"`
	ID              string   `json:"@id"`
	Label           string   `json:"label,omitempty"`
	RecipientKeys   []string `json:"recipientKeys"`
	ServiceEndpoint string   `json:"serviceEndpoint,omitempty"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
}
