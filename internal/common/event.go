package common

import (
	"context"
	"encoding/json"

	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/xcontext"
)

// PublishEvent sends a json encoded event. Events are notifications only, a
// failure is logged and never fails the operation which produced it.
func PublishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, event any) {
	if publisher == nil {
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal event of topic %s: %v", topic, err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish event of topic %s: %v", topic, err)
	}
}
