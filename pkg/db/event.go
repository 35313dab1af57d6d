package db

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

// EventProcessed reports whether an event with this id was already applied.
func (s *Store) EventProcessed(ctx context.Context, id string) (bool, error) {
	var evs []model.SyncEvent
	res := s.conn(ctx).Select("id").Where(query.SyncEvent.ID.Eq(id)).Limit(1).Find(&evs)
	if res.Error != nil {
		return false, translate(res.Error, "")
	}
	return res.RowsAffected > 0, nil
}

// RecordEvent marks an event as applied. Recording the same id twice is a
// conflict, which lets concurrent deliveries detect each other.
func (s *Store) RecordEvent(ctx context.Context, id, name string, payload []byte, at time.Time) error {
	ev := &model.SyncEvent{
		ID:          id,
		Name:        name,
		Payload:     datatypes.JSON(payload),
		ProcessedAt: at.UTC(),
	}
	return translate(s.conn(ctx).Create(ev).Error, "")
}
