package port

import (
	"context"

	"github.com/bnema/legible/internal/domain/entity"
)

// Delivery is the outcome of sending to one target.
type Delivery struct {
	Target string `json:"target"`
	Err    error  `json:"-"`
}

// OK reports whether the delivery succeeded.
func (d Delivery) OK() bool {
	return d.Err == nil
}

// SettingsBroadcaster publishes the full record to listening configuration UIs.
// It returns one Delivery per listener so fan-out failures stay observable.
type SettingsBroadcaster interface {
	Publish(ctx context.Context, settings *entity.Settings) []Delivery
}
