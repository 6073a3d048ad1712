package mqtt

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/eclipse/paho.mqtt.golang/packets"
)

// disconnectQuiesce is the time paho may spend finishing work on Disconnect, in milliseconds.
const disconnectQuiesce = 250

// PahoEngine is an Engine backed by paho.mqtt.golang.
//
// Paho runs its own goroutines. PahoEngine turns their callbacks into events
// that are queued and only handed to the EventHandler from LoopRead, so that
// the owner sees every state change on its own goroutine. The broker socket
// is dialled synchronously by Connect and handed to paho, so resolution and
// socket failures are returned to the caller.
//
// Outbound messages wait in a FIFO bounded by EngineConfig.MaxQueued and are
// handed to paho at most MaxInflight at a time, from LoopWrite.
//
// Thread Safety:
//   - Methods must be called from one goroutine. Paho callbacks only touch
//     the event queue, which is locked.
type PahoEngine struct {
	cfg     EngineConfig
	handler EventHandler
	logger  Logger
	dialer  *net.Dialer

	host      string
	port      int
	keepAlive time.Duration
	username  string
	password  string
	tlsConfig *tls.Config
	dialled   bool

	client    pahomqtt.Client
	connected bool

	outbound []*outboundMessage
	inflight []*outboundMessage
	lastMID  uint16

	mu         sync.Mutex
	generation uint64
	events     []queuedEvent
	socket     *pahoSocket
}

// queuedEvent is an event together with the paho client generation that raised it.
type queuedEvent struct {
	gen uint64
	ev  Event
}

type outboundMessage struct {
	mid     uint16
	topic   string
	payload []byte
	qos     byte
}

// publishCompleted is queued when paho finishes with an outbound message.
type publishCompleted struct {
	msg *outboundMessage
	err error
}

func (publishCompleted) isEvent() {}

// pahoSocket signals readiness of a PahoEngine connection.
type pahoSocket struct {
	readable chan struct{}
	writable chan struct{}
}

func newPahoSocket() *pahoSocket {
	return &pahoSocket{
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
	}
}

func (s *pahoSocket) Readable() <-chan struct{} { return s.readable }
func (s *pahoSocket) Writable() <-chan struct{} { return s.writable }

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// NewPahoEngine creates an engine. It does not connect.
func NewPahoEngine(cfg EngineConfig, handler EventHandler) *PahoEngine {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.MaxInflight < 1 {
		cfg.MaxInflight = maxInflight
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger()
	}

	return &PahoEngine{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		dialer:  &net.Dialer{Timeout: cfg.ConnectTimeout},
	}
}

// SetCredentials sets the username and password sent on the next connect.
func (e *PahoEngine) SetCredentials(username, password string) {
	e.username = username
	e.password = password
}

// SetTLS enables TLS for the next connect.
func (e *PahoEngine) SetTLS(cfg *tls.Config) {
	e.tlsConfig = cfg
}

// Connect dials host:port and starts the MQTT handshake in the background.
func (e *PahoEngine) Connect(host string, port int, keepAlive time.Duration) error {
	e.host = host
	e.port = port
	e.keepAlive = keepAlive
	e.dialled = true
	return e.open()
}

// Reconnect repeats the last Connect with a fresh paho client.
func (e *PahoEngine) Reconnect() error {
	if !e.dialled {
		return fmt.Errorf("%w: reconnect before connect", ErrEngineConfig)
	}
	return e.open()
}

func (e *PahoEngine) open() error {
	e.closeClient(0)

	conn, err := e.dial()
	if err != nil {
		return err
	}

	sock := newPahoSocket()
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.socket = sock
	e.mu.Unlock()

	// Messages handed to the previous client are resent in order.
	e.outbound = append(e.inflight, e.outbound...)
	e.inflight = nil

	e.client = pahomqtt.NewClient(e.clientOptions(gen, conn))
	token := e.client.Connect()
	go e.awaitConnect(gen, token)
	return nil
}

func (e *PahoEngine) dial() (net.Conn, error) {
	addr := net.JoinHostPort(e.host, strconv.Itoa(e.port))
	if e.tlsConfig != nil {
		cfg := e.tlsConfig.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = e.host
		}
		return tls.DialWithDialer(e.dialer, "tcp", addr, cfg)
	}
	return e.dialer.DialContext(context.Background(), "tcp", addr)
}

func (e *PahoEngine) clientOptions(gen uint64, conn net.Conn) *pahomqtt.ClientOptions {
	scheme := "tcp"
	if e.tlsConfig != nil {
		scheme = "ssl"
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(e.host, strconv.Itoa(e.port))))
	opts.SetClientID(e.cfg.ClientID)
	opts.SetCleanSession(e.cfg.CleanSession)
	opts.SetProtocolVersion(e.cfg.ProtocolVersion)
	opts.SetKeepAlive(e.keepAlive)
	opts.SetConnectTimeout(e.cfg.ConnectTimeout)
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetOrderMatters(true)
	if e.username != "" {
		opts.SetUsername(e.username)
		opts.SetPassword(e.password)
	}

	// The first dial was done by open; later ones are paho's own.
	var once sync.Once
	opts.SetCustomOpenConnectionFn(func(_ *url.URL, _ pahomqtt.ClientOptions) (net.Conn, error) {
		var first net.Conn
		once.Do(func() { first = conn })
		if first != nil {
			return first, nil
		}
		return e.dial()
	})

	opts.SetDefaultPublishHandler(func(_ pahomqtt.Client, msg pahomqtt.Message) {
		e.post(gen, MessageReceived{
			Topic:    msg.Topic(),
			Payload:  msg.Payload(),
			QoS:      msg.Qos(),
			Retained: msg.Retained(),
		})
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		e.post(gen, Disconnected{Reason: RCConnLost, Err: err})
	})

	return opts
}

// awaitConnect turns the outcome of the CONNECT into an event.
func (e *PahoEngine) awaitConnect(gen uint64, token pahomqtt.Token) {
	token.Wait()

	ct, _ := token.(*pahomqtt.ConnectToken)
	err := token.Error()
	switch {
	case err == nil:
		var sessionPresent bool
		if ct != nil {
			sessionPresent = ct.SessionPresent()
		}
		e.post(gen, ConnectAccepted{SessionPresent: sessionPresent})

	case ct != nil && ct.ReturnCode() != packets.Accepted && ct.ReturnCode() < packets.ErrNetworkError:
		e.post(gen, ConnectRefused{Code: ConnackCode(ct.ReturnCode())})

	default:
		e.post(gen, Disconnected{Reason: RCConnLost, Err: err})
	}
}

// post queues ev unless it comes from a replaced paho client.
func (e *PahoEngine) post(gen uint64, ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return
	}
	e.events = append(e.events, queuedEvent{gen: gen, ev: ev})
	if e.socket != nil {
		notify(e.socket.readable)
	}
}

// Disconnect closes the session and reports it to the handler.
func (e *PahoEngine) Disconnect() error {
	if e.client == nil {
		return RCNoConn
	}
	e.closeClient(disconnectQuiesce)
	return e.handler(Disconnected{Reason: RCSuccess})
}

// closeClient stops the paho client and drops events it queued.
func (e *PahoEngine) closeClient(quiesce uint) {
	if e.client == nil {
		return
	}

	e.mu.Lock()
	e.generation++
	e.events = nil
	e.socket = nil
	e.mu.Unlock()

	e.client.Disconnect(quiesce)
	e.client = nil
	e.connected = false
}

// Loop waits up to timeout for queued events and then pumps the engine.
func (e *PahoEngine) Loop(timeout time.Duration) error {
	sock, _ := e.Socket().(*pahoSocket)
	if sock == nil {
		return RCNoConn
	}

	if timeout > 0 {
		t := time.NewTimer(timeout)
		select {
		case <-sock.readable:
		case <-t.C:
		}
		t.Stop()
	}

	if err := e.LoopRead(); err != nil {
		return err
	}
	if e.WantWrite() {
		if err := e.LoopWrite(); err != nil {
			return err
		}
	}
	return e.LoopMisc()
}

// LoopRead hands every queued event to the handler, in arrival order.
// Events of a client replaced while the queue is drained are dropped.
// Handler errors are joined and returned after the queue is drained.
func (e *PahoEngine) LoopRead() error {
	e.mu.Lock()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	var errs []error
	for _, qe := range events {
		if qe.gen != e.currentGeneration() {
			continue
		}
		if err := e.dispatch(qe.ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *PahoEngine) dispatch(ev Event) error {
	switch ev := ev.(type) {
	case publishCompleted:
		return e.completePublish(ev)
	case ConnectAccepted:
		e.connected = true
		e.signalWritable()
	case ConnectRefused, Disconnected:
		e.connected = false
	}
	return e.handler(ev)
}

func (e *PahoEngine) completePublish(ev publishCompleted) error {
	found := false
	for i, msg := range e.inflight {
		if msg == ev.msg {
			e.inflight = append(e.inflight[:i], e.inflight[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if ev.err != nil {
		e.logger.Warn("mqtt publish not completed, requeued", "mid", ev.msg.mid, "topic", ev.msg.topic, "error", ev.err)
		e.outbound = append([]*outboundMessage{ev.msg}, e.outbound...)
		return nil
	}

	err := e.handler(PublishAcked{MessageID: ev.msg.mid})
	if e.WantWrite() {
		err = errors.Join(err, e.LoopWrite())
	}
	return err
}

// LoopWrite hands queued messages to paho while in-flight slots are free.
func (e *PahoEngine) LoopWrite() error {
	if e.client == nil || !e.connected {
		return RCNoConn
	}

	gen := e.currentGeneration()
	for len(e.outbound) > 0 && len(e.inflight) < e.cfg.MaxInflight {
		msg := e.outbound[0]
		e.outbound = e.outbound[1:]
		e.inflight = append(e.inflight, msg)

		token := e.client.Publish(msg.topic, msg.qos, false, msg.payload)
		go e.awaitPublish(gen, msg, token)
	}
	return nil
}

func (e *PahoEngine) awaitPublish(gen uint64, msg *outboundMessage, token pahomqtt.Token) {
	token.Wait()
	e.post(gen, publishCompleted{msg: msg, err: token.Error()})
}

// LoopMisc checks that paho still holds an open connection.
func (e *PahoEngine) LoopMisc() error {
	if e.client == nil {
		return RCNoConn
	}
	if e.connected && !e.client.IsConnectionOpen() {
		e.logger.Debug("mqtt connection closed, waiting for connection lost event")
	}
	return nil
}

// WantWrite reports whether LoopWrite has a message to hand to paho.
func (e *PahoEngine) WantWrite() bool {
	return e.client != nil && e.connected && len(e.outbound) > 0 && len(e.inflight) < e.cfg.MaxInflight
}

// Socket returns the readiness channels of the current connection.
func (e *PahoEngine) Socket() Socket {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.socket == nil {
		return nil
	}
	return e.socket
}

// Publish queues a message. See Engine.
func (e *PahoEngine) Publish(topic string, payload []byte, qos byte) (uint16, error) {
	if qos > maxQoS {
		return 0, RCInval
	}
	if e.cfg.MaxQueued > 0 && len(e.outbound)+len(e.inflight) >= e.cfg.MaxQueued {
		return 0, RCQueueSize
	}

	msg := &outboundMessage{
		mid:     e.nextMID(),
		topic:   topic,
		payload: payload,
		qos:     qos,
	}
	e.outbound = append(e.outbound, msg)

	if e.client == nil || !e.connected {
		return msg.mid, RCNoConn
	}
	e.signalWritable()
	return msg.mid, nil
}

// Subscribe sends a SUBSCRIBE. Failures reported later by the broker are logged.
func (e *PahoEngine) Subscribe(topic string, qos byte) error {
	if e.client == nil || !e.connected {
		return RCNoConn
	}
	token := e.client.Subscribe(topic, qos, nil)
	go e.awaitAck("subscribe", topic, token)
	return nil
}

// Unsubscribe sends an UNSUBSCRIBE. Failures reported later are logged.
func (e *PahoEngine) Unsubscribe(topic string) error {
	if e.client == nil || !e.connected {
		return RCNoConn
	}
	token := e.client.Unsubscribe(topic)
	go e.awaitAck("unsubscribe", topic, token)
	return nil
}

func (e *PahoEngine) awaitAck(op, topic string, token pahomqtt.Token) {
	token.Wait()
	if err := token.Error(); err != nil {
		e.logger.Warn("mqtt "+op+" failed", "topic", topic, "error", err)
	}
}

func (e *PahoEngine) nextMID() uint16 {
	e.lastMID++
	if e.lastMID == 0 {
		e.lastMID = 1
	}
	return e.lastMID
}

func (e *PahoEngine) currentGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

func (e *PahoEngine) signalWritable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.socket != nil && len(e.outbound) > 0 {
		notify(e.socket.writable)
	}
}
