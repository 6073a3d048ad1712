package virtualdrive

//go:generate mockgen -destination=mock_publisher_test.go -package=virtualdrive . Publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/audit"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/eventloop"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/mqtt"
)

// storeTimeout bounds a single Store call made from a reactor callback.
const storeTimeout = 2 * time.Second

// Publisher is the MQTT surface the driver uses. mqttloop.Adapter satisfies it.
type Publisher interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Publish(topic string, payload []byte, qos byte, userContext any) (bool, error)
	IsReady() bool
}

// Recorder mirrors published measure values. influxdb.Client satisfies it.
type Recorder interface {
	WriteMeasure(ctrlName, measure string, value any, ts time.Time)
}

// Auditor records the outcome of every write. audit.SQLiteRepository satisfies it.
type Auditor interface {
	Create(ctx context.Context, entry *audit.Entry) error
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Driver publishes simulated measure values and applies write requests.
//
// Thread Safety:
//   - Start, Stop and the handlers must run on the reactor goroutine.
type Driver struct {
	client   Publisher
	logger   Logger
	store    Store
	recorder Recorder
	auditor  Auditor
	topics   mqtt.Topics

	controllers []config.ControllerConfig
	measures    []config.MeasureConfig
	dataTypes   map[measureKey]string
	values      map[measureKey]any

	qos      byte
	interval time.Duration
	now      func() time.Time
	timer    eventloop.Timer
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver's logger.
func WithLogger(logger Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithStore persists written values in store.
func WithStore(store Store) Option {
	return func(d *Driver) {
		d.store = store
	}
}

// WithRecorder mirrors every published value to recorder.
func WithRecorder(recorder Recorder) Option {
	return func(d *Driver) {
		d.recorder = recorder
	}
}

// WithAuditor records every write request entry with auditor.
func WithAuditor(auditor Auditor) Option {
	return func(d *Driver) {
		d.auditor = auditor
	}
}

// WithInterval overrides app.publish_interval.
func WithInterval(interval time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a driver for the controllers and measures in cfg.
// It neither subscribes nor publishes until Start.
func New(cfg *config.Config, client Publisher, opts ...Option) *Driver {
	d := &Driver{
		client:      client,
		logger:      slog.New(slog.DiscardHandler),
		controllers: cfg.Controllers,
		measures:    cfg.Measures,
		dataTypes:   make(map[measureKey]string, len(cfg.Measures)),
		values:      make(map[measureKey]any),
		qos:         byte(cfg.App.QoS), // #nosec G115 -- validated to 0..2
		interval:    cfg.GetPublishInterval(),
		now:         time.Now,
	}
	for _, m := range cfg.Measures {
		key := measureKey{ctrl: m.CtrlName, name: m.Name}
		if _, dup := d.dataTypes[key]; !dup {
			d.dataTypes[key] = m.DataType
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Restore loads previously written values from the store. Stored values of
// measures that are no longer configured are ignored.
func (d *Driver) Restore(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	stored, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restoring measure values: %w", err)
	}

	restored := 0
	for _, v := range stored {
		key := measureKey{ctrl: v.CtrlName, name: v.Name}
		if _, ok := d.dataTypes[key]; !ok {
			d.logger.Debug("ignoring stored value of unknown measure", "controller", v.CtrlName, "measure", v.Name)
			continue
		}
		d.values[key] = v.Value
		restored++
	}
	d.logger.Info("measure values restored", "count", restored)
	return nil
}

// Start subscribes to write requests and arms the publish timer on reactor.
//
// The subscription is kept by the client and re-sent on every connect, so
// Start may run before the broker connection is up.
func (d *Driver) Start(reactor eventloop.Reactor) error {
	if d.timer != nil {
		return ErrAlreadyStarted
	}
	if err := d.client.Subscribe(d.topics.AllWriteRequests(), d.qos, d.HandleWrite); err != nil {
		return fmt.Errorf("subscribing to write requests: %w", err)
	}
	d.timer = reactor.NewTimer(d.onTimer)
	d.timer.Schedule(d.interval)
	return nil
}

// Stop disarms the publish timer.
func (d *Driver) Stop() {
	if d.timer != nil {
		d.timer.Cancel()
	}
}

// onTimer publishes a snapshot and re-arms the timer, including after a
// skipped or failed publish.
func (d *Driver) onTimer() error {
	if _, err := d.PublishSnapshot(d.now()); err != nil {
		d.logger.Warn("snapshot publish failed", "error", err)
	}
	d.timer.Schedule(d.interval)
	return nil
}

// Value returns the current value of a measure: the last written value, or
// the data-type default. ok is false for a measure that is not configured.
func (d *Driver) Value(ctrlName, name string) (value any, ok bool) {
	key := measureKey{ctrl: ctrlName, name: name}
	dataType, ok := d.dataTypes[key]
	if !ok {
		return nil, false
	}
	if v, written := d.values[key]; written {
		return v, true
	}
	return DefaultValue(dataType), true
}

// Snapshot builds the document describing every controller at now.
// Timestamps are Unix seconds.
func (d *Driver) Snapshot(now time.Time) Snapshot {
	ts := now.Round(time.Second).Unix()

	snap := Snapshot{Controllers: make([]ControllerSnapshot, 0, len(d.controllers))}
	for _, ctrl := range d.controllers {
		measures := make([]MeasureSnapshot, 0)
		for _, m := range d.measures {
			if m.CtrlName != ctrl.Name {
				continue
			}
			value, _ := d.Value(ctrl.Name, m.Name)
			measures = append(measures, MeasureSnapshot{
				Name:      m.Name,
				Health:    healthy,
				Timestamp: ts,
				Value:     value,
			})
		}
		snap.Controllers = append(snap.Controllers, ControllerSnapshot{
			Name:      ctrl.Name,
			Version:   "",
			Health:    healthy,
			Timestamp: ts,
			Measures:  measures,
		})
	}
	return snap
}

// PublishSnapshot publishes the snapshot for now on the read topic.
//
// Nothing is sent while the client is not ready. Accepted snapshots are
// mirrored to the recorder, if any.
//
// Returns:
//   - bool: true if the client accepted the snapshot
//   - error: Encoding or client errors
func (d *Driver) PublishSnapshot(now time.Time) (bool, error) {
	if !d.client.IsReady() {
		d.logger.Debug("client not ready, snapshot skipped")
		return false, nil
	}

	snap := d.Snapshot(now)
	payload, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("encoding snapshot: %w", err)
	}

	d.logger.Debug("publishing snapshot", "topic", d.topics.Read(), "payload", string(payload))
	accepted, err := d.client.Publish(d.topics.Read(), payload, d.qos, nil)
	if err != nil || !accepted {
		return false, err
	}

	if d.recorder != nil {
		for _, ctrl := range snap.Controllers {
			for _, m := range ctrl.Measures {
				d.recorder.WriteMeasure(ctrl.Name, m.Name, m.Value, now)
			}
		}
	}
	return true, nil
}

// HandleWrite applies a write request and publishes the response.
//
// The request has the form {"payload":[{"name":ctrl,"measures":[{"name":m,"value":v}]}]}.
// Each measure entry gets error_code 0 and error_reason "Success" when the
// measure exists, or 1 and "Failed" otherwise, and loses its value. Other
// fields are echoed unchanged. The response goes to the write response topic
// of the service named by the last level of topic.
func (d *Driver) HandleWrite(topic string, payload []byte) error {
	d.logger.Info("write request received", "topic", topic)

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	entries, err := writeEntries(doc)
	if err != nil {
		return err
	}

	serviceID := d.topics.ServiceID(topic)
	for _, e := range entries {
		value, present := e.measure["value"]
		applied := present && d.apply(e.ctrl, e.name, value)

		code, reason := writeFailed, reasonFailed
		if applied {
			code, reason = writeSucceeded, reasonSuccess
		}
		e.measure["error_code"] = code
		e.measure["error_reason"] = reason
		delete(e.measure, "value")

		d.recordWrite(serviceID, e, value, applied)
	}

	reply, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding write response: %w", err)
	}
	respTopic := d.topics.WriteResponse(serviceID)
	if _, err := d.client.Publish(respTopic, reply, d.qos, nil); err != nil {
		return fmt.Errorf("publishing write response: %w", err)
	}
	return nil
}

// writeEntry is one measure of a write request.
type writeEntry struct {
	ctrl    string
	name    string
	measure map[string]any
}

// writeEntries validates the request structure before anything is applied.
func writeEntries(doc map[string]any) ([]writeEntry, error) {
	ctrls, ok := doc["payload"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: payload is not a list", ErrMalformedRequest)
	}

	var entries []writeEntry
	for i, c := range ctrls {
		ctrl, ok := c.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: payload[%d] is not an object", ErrMalformedRequest, i)
		}
		ctrlName, _ := ctrl["name"].(string)
		measures, ok := ctrl["measures"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: payload[%d].measures is not a list", ErrMalformedRequest, i)
		}
		for j, m := range measures {
			measure, ok := m.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: payload[%d].measures[%d] is not an object", ErrMalformedRequest, i, j)
			}
			name, _ := measure["name"].(string)
			entries = append(entries, writeEntry{ctrl: ctrlName, name: name, measure: measure})
		}
	}
	return entries, nil
}

// apply stores value for a configured measure and reports whether it exists.
// A failure to persist is logged; the in-memory value still changes.
func (d *Driver) apply(ctrlName, name string, value any) bool {
	key := measureKey{ctrl: ctrlName, name: name}
	dataType, ok := d.dataTypes[key]
	if !ok {
		d.logger.Warn("write to unknown measure", "controller", ctrlName, "measure", name)
		return false
	}
	d.values[key] = value

	if d.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		err := d.store.Save(ctx, StoredValue{
			CtrlName:  ctrlName,
			Name:      name,
			DataType:  dataType,
			Value:     value,
			UpdatedAt: d.now(),
		})
		if err != nil {
			d.logger.Error("persisting measure value failed", "controller", ctrlName, "measure", name, "error", err)
		}
	}
	return true
}

// recordWrite audits one write entry. Failures are logged only.
func (d *Driver) recordWrite(serviceID string, e writeEntry, value any, applied bool) {
	if d.auditor == nil {
		return
	}

	entry := &audit.Entry{
		Action:     audit.ActionRejected,
		Controller: e.ctrl,
		Measure:    e.name,
		ServiceID:  serviceID,
		CreatedAt:  d.now(),
	}
	if applied {
		entry.Action = audit.ActionApplied
		entry.Details = map[string]any{"value": value}
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := d.auditor.Create(ctx, entry); err != nil {
		d.logger.Warn("recording write audit failed", "controller", e.ctrl, "measure", e.name, "error", err)
	}
}
