package integration

// Envelope type discriminators exchanged over the cross-origin channel.
const (
	TypeUniversityReady        = "UNIVERSITY_READY"
	TypeRecommendationRequest  = "RECOMMENDATION_REQUEST"
	TypeRecommendationSent     = "RECOMMENDATION_SENT"
	TypeRecommendationStatus   = "RECOMMENDATION_STATUS_UPDATE"
	TypeRecommendationReceived = "RECOMMENDATION_RECEIVED"
	TypePing                   = "PING"
	TypePong                   = "PONG"
)

// Envelope is a typed cross-origin message. The wire shape is a flat
// JSON object with a type discriminator plus payload fields.
type Envelope map[string]any

func (e Envelope) Type() string {
	t, _ := e["type"].(string)
	return t
}

func (e Envelope) String(key string) string {
	v, _ := e[key].(string)
	return v
}

func (e Envelope) Map(key string) map[string]any {
	v, _ := e[key].(map[string]any)
	return v
}

// Poster delivers an envelope to a window at a target origin. The
// embedding window and the opener window each provide one; either may
// be absent.
type Poster interface {
	Post(envelope Envelope, targetOrigin string) error
}

// InboundMessage is a message received on the window channel. Origin is
// the sender's declared origin and is checked before anything else;
// Source addresses a direct reply to the sending window.
type InboundMessage struct {
	Origin string
	Source Poster
	Data   Envelope
}
