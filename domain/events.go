package domain

// CodeDeliveryTopic is the channel code-delivery events are published
// on. Delivery is fire-and-forget, at most once: a failed publish never
// rolls back code creation, the client simply requests a resend.
const CodeDeliveryTopic = "code-topic"

// CodeDeliveryEvent tells the out-of-band dispatcher to deliver a
// freshly created verification code to its destination.
type CodeDeliveryEvent struct {
	Code        string      `json:"code"`
	Channel     ChannelKind `json:"channel"`
	Destination string      `json:"destination"`
	Locale      string      `json:"locale,omitempty"`
}
