package mqttloop

//go:generate mockgen -destination=mock_core_test.go -package=mqttloop . Core

import (
	"errors"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/eventloop"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/mqtt"
)

// Housekeeping defaults.
const (
	defaultInterval      = time.Second
	defaultRetryInterval = 15 * time.Second
	defaultProbeTimeout  = time.Second
)

// Core is the part of mqtt.Client the adapter drives.
type Core interface {
	Connect()
	Reconnect() error
	Disconnect() error
	LoopRead() error
	LoopWrite() error
	LoopMisc() error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
	Publish(topic string, payload []byte, qos byte, userContext any) (bool, error)
	SetPublishAckHandler(topic string, handler mqtt.AckHandler)
	IsReady() bool
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ProbeFunc checks that something accepts TCP connections at addr.
type ProbeFunc func(addr string, timeout time.Duration) error

// Adapter runs an MQTT client on a reactor.
//
// A recurring housekeeping timer keeps the session alive while connected and
// probes the broker while it is not, reconnecting once the probe succeeds.
// While a broker socket exists the adapter watches it: read readiness pumps
// LoopRead, and a one-shot write registration, renewed by every accepted
// Publish, pumps LoopWrite.
//
// Thread Safety:
//   - All methods must run on the reactor goroutine.
type Adapter struct {
	reactor eventloop.Reactor
	core    Core
	logger  Logger
	hooks   mqtt.Hooks
	factory mqtt.EngineFactory

	addr          string
	probe         ProbeFunc
	probeTimeout  time.Duration
	now           func() time.Time
	timer         eventloop.Timer
	interval      time.Duration
	baseInterval  time.Duration
	retryInterval time.Duration

	readEvt  eventloop.Event
	writeEvt eventloop.Event
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used by the adapter and its client.
func WithLogger(logger Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithHooks sets callbacks run after the adapter's own lifecycle handling.
func WithHooks(hooks mqtt.Hooks) Option {
	return func(a *Adapter) {
		a.hooks = hooks
	}
}

// WithEngineFactory replaces the client's protocol engine.
func WithEngineFactory(factory mqtt.EngineFactory) Option {
	return func(a *Adapter) {
		a.factory = factory
	}
}

// WithProbe replaces the TCP reachability probe.
func WithProbe(probe ProbeFunc) Option {
	return func(a *Adapter) {
		if probe != nil {
			a.probe = probe
		}
	}
}

// New creates an adapter and the MQTT client it drives. It does not connect.
//
// Parameters:
//   - reactor: Reactor all callbacks run on
//   - cfg: MQTT configuration; reconnect intervals default to 1s, 15s and a
//     1s probe timeout
//   - opts: logger, hooks, engine factory, probe
//
// Returns:
//   - *Adapter: Call Connect from the reactor goroutine to start
func New(reactor eventloop.Reactor, cfg config.MQTTConfig, opts ...Option) *Adapter {
	return newAdapter(reactor, cfg, func(a *Adapter, hooks mqtt.Hooks) Core {
		clientOpts := []mqtt.Option{mqtt.WithHooks(hooks), mqtt.WithLogger(a.logger)}
		if a.factory != nil {
			clientOpts = append(clientOpts, mqtt.WithEngineFactory(a.factory))
		}
		return mqtt.New(cfg, clientOpts...)
	}, opts...)
}

func newAdapter(reactor eventloop.Reactor, cfg config.MQTTConfig, build func(*Adapter, mqtt.Hooks) Core, opts ...Option) *Adapter {
	port := cfg.Broker.Port
	if port == 0 {
		port = mqtt.BrokerPort(cfg.Broker.PortFile)
	}

	a := &Adapter{
		reactor:       reactor,
		logger:        slog.New(slog.DiscardHandler),
		addr:          net.JoinHostPort(cfg.Broker.Host, strconv.Itoa(port)),
		probe:         tcpProbe,
		probeTimeout:  seconds(cfg.Reconnect.ProbeTimeout, defaultProbeTimeout),
		now:           time.Now,
		baseInterval:  seconds(cfg.Reconnect.Interval, defaultInterval),
		retryInterval: seconds(cfg.Reconnect.RetryInterval, defaultRetryInterval),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.interval = a.baseInterval

	a.core = build(a, mqtt.Hooks{
		AfterConnect:   a.afterConnect,
		OnConnected:    a.onConnected,
		OnDisconnected: a.onDisconnected,
	})
	a.timer = reactor.NewTimer(a.onTimer)
	return a
}

// Connect connects if the broker answers the probe and starts housekeeping
// either way.
func (a *Adapter) Connect() {
	if a.reachable() {
		a.core.Connect()
	}
	a.timer.Schedule(a.interval)
}

// Disconnect stops housekeeping and closes the session.
func (a *Adapter) Disconnect() error {
	a.timer.Cancel()
	return a.core.Disconnect()
}

// Subscribe registers handler for filter. See mqtt.Client.Subscribe.
func (a *Adapter) Subscribe(filter string, qos byte, handler mqtt.MessageHandler) error {
	return a.core.Subscribe(filter, qos, handler)
}

// Unsubscribe removes the subscription for filter.
func (a *Adapter) Unsubscribe(filter string) error {
	return a.core.Unsubscribe(filter)
}

// Publish queues a message and asks the reactor to flush it.
// See mqtt.Client.Publish for the results.
func (a *Adapter) Publish(topic string, payload []byte, qos byte, userContext any) (bool, error) {
	ok, err := a.core.Publish(topic, payload, qos, userContext)
	if ok && a.writeEvt != nil {
		a.writeEvt.Add()
	}
	return ok, err
}

// SetPublishAckHandler registers the acknowledgement callback for topic.
func (a *Adapter) SetPublishAckHandler(topic string, handler mqtt.AckHandler) {
	a.core.SetPublishAckHandler(topic, handler)
}

// IsReady reports whether the broker accepted the session.
func (a *Adapter) IsReady() bool {
	return a.core.IsReady()
}

// onTimer is the housekeeping tick. It re-arms itself so that ticks start
// one interval after the previous tick finished.
func (a *Adapter) onTimer() error {
	start := a.now()

	var err error
	switch {
	case a.readEvt != nil:
		err = errors.Join(
			a.check("loop_misc", a.core.LoopMisc()),
			a.check("loop_write", a.core.LoopWrite()),
		)
	case a.reachable():
		err = a.check("reconnect", a.core.Reconnect())
	default:
		a.interval = a.retryInterval
	}
	if err != nil {
		return err
	}

	a.timer.Schedule(a.now().Sub(start) + a.interval)
	return nil
}

func (a *Adapter) onReadable(eventloop.Interest) error {
	err := a.check("loop_read", a.core.LoopRead())
	if a.readEvt != nil {
		a.readEvt.Add()
	}
	return err
}

func (a *Adapter) onWritable(eventloop.Interest) error {
	return a.check("loop_write", a.core.LoopWrite())
}

func (a *Adapter) afterConnect(sock mqtt.Socket) {
	if sock != nil {
		a.cancelEvents()
		a.readEvt = a.reactor.NewEvent(sock, eventloop.Read|eventloop.Persist, a.onReadable)
		a.writeEvt = a.reactor.NewEvent(sock, eventloop.Write, a.onWritable)
		a.readEvt.Add()
		a.writeEvt.Add()
		a.interval = a.baseInterval
		a.logger.Debug("mqtt socket events registered", "addr", a.addr)
	}

	if a.hooks.AfterConnect != nil {
		a.hooks.AfterConnect(sock)
	}
}

func (a *Adapter) onConnected() {
	if a.hooks.OnConnected != nil {
		a.hooks.OnConnected()
	}
}

func (a *Adapter) onDisconnected() {
	a.logger.Warn("mqtt socket events removed", "addr", a.addr)
	a.cancelEvents()

	if a.hooks.OnDisconnected != nil {
		a.hooks.OnDisconnected()
	}
}

func (a *Adapter) cancelEvents() {
	if a.readEvt != nil {
		a.readEvt.Cancel()
		a.readEvt = nil
	}
	if a.writeEvt != nil {
		a.writeEvt.Cancel()
		a.writeEvt = nil
	}
}

func (a *Adapter) reachable() bool {
	if err := a.probe(a.addr, a.probeTimeout); err != nil {
		a.logger.Warn("mqtt broker unreachable", "addr", a.addr, "error", err)
		return false
	}
	a.logger.Debug("mqtt broker reachable", "addr", a.addr)
	return true
}

// check logs err and decides whether it stops the reactor. Only a broker
// refusal that no retry can fix does.
func (a *Adapter) check(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		badCfg *mqtt.BadConfigurationError
		resErr *mqtt.AddressResolutionError
	)
	switch {
	case errors.As(err, &badCfg):
		a.logger.Error("mqtt session refused, giving up", "op", op, "code", byte(badCfg.Code), "error", err)
		return err
	case errors.As(err, &resErr):
		a.logger.Warn("mqtt broker name not resolved, retrying on next tick", "op", op, "host", resErr.Host)
	default:
		a.logger.Warn("mqtt "+op+" failed", "error", err)
	}
	return nil
}

func tcpProbe(addr string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}

func seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
