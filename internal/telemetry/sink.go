package telemetry

import (
	"context"
	"encoding/json"

	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

// pollutionCollection is the single append-only collection every snapshot
// lands in, the document-store analog of the original's pollution_records
// table.
const pollutionCollection = "pollution_records"

// Sink consumes pollution_data_queue and inserts each snapshot verbatim
// into the document store. A body that fails to parse is poison: logged
// and acked, never requeued.
type Sink struct {
	store interfaces.DocumentStore
	log   arbor.ILogger
}

func NewSink(store interfaces.DocumentStore) *Sink {
	return &Sink{store: store, log: common.GetLogger()}
}

// HandleMessage is the broker delivery callback.
func (s *Sink) HandleMessage(ctx context.Context, body []byte) error {
	var snapshot models.TelemetrySnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		s.log.Warn().Err(err).Msg("telemetry: sink received unparseable snapshot, acking (poison)")
		return nil
	}
	if err := s.store.InsertSnapshot(ctx, pollutionCollection, snapshot); err != nil {
		return err
	}
	return nil
}
