package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/audit"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/database"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/eventloop"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/influxdb"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/logging"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/mqtt"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/mqttloop"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/virtualdrive"
	_ "github.com/inhandnet/MobiusPi-Project-Templates/migrations"
)

// App is the assembled virtual drive.
type App struct {
	loop   *eventloop.Loop
	client *mqttloop.Adapter
	driver *virtualdrive.Driver
	log    *logging.Logger
}

// NewApp wires the reactor, the MQTT adapter and the driver together.
func NewApp(loop *eventloop.Loop, client *mqttloop.Adapter, driver *virtualdrive.Driver, log *logging.Logger) *App {
	return &App{loop: loop, client: client, driver: driver, log: log}
}

// Run restores written values, connects and runs the reactor until ctx is
// done or a callback fails fatally.
//
// Connect and Disconnect run on this goroutine before and after the reactor,
// so the adapter is never touched from two goroutines.
func (a *App) Run(ctx context.Context) error {
	if err := a.driver.Restore(ctx); err != nil {
		return err
	}
	if err := a.driver.Start(a.loop); err != nil {
		return fmt.Errorf("starting driver: %w", err)
	}

	a.client.Connect()
	a.log.Info("Virtual Drive running")

	err := a.loop.Run(ctx)

	a.log.Info("shutting down")
	a.driver.Stop()
	if dErr := a.client.Disconnect(); dErr != nil && !errors.Is(dErr, mqtt.RCNoConn) {
		a.log.Warn("MQTT disconnect failed", "error", dErr)
	}

	if err != nil {
		return fmt.Errorf("event loop stopped: %w", err)
	}
	return nil
}

func provideLoop() *eventloop.Loop {
	return eventloop.New()
}

func provideClient(loop *eventloop.Loop, cfg *config.Config, log *logging.Logger) *mqttloop.Adapter {
	broker := cfg.MQTT.Broker
	return mqttloop.New(loop, cfg.MQTT,
		mqttloop.WithLogger(log),
		mqttloop.WithHooks(mqtt.Hooks{
			OnConnected: func() {
				log.Info("MQTT connected", "host", broker.Host, "client_id", broker.ClientID)
			},
			OnDisconnected: func() {
				log.Warn("MQTT disconnected")
			},
		}),
	)
}

func provideDatabase(ctx context.Context, cfg *config.Config, log *logging.Logger) (*database.DB, func(), error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, nil, fmt.Errorf("checking database: %w", err)
	}
	log.Info("database ready", "path", db.Path())

	return db, func() {
		log.Info("closing database")
		if err := db.Close(); err != nil {
			log.Error("error closing database", "error", err)
		}
	}, nil
}

// provideRecorder connects the optional InfluxDB mirror. A nil Recorder means
// snapshots are only published over MQTT.
func provideRecorder(ctx context.Context, cfg *config.Config, log *logging.Logger) (virtualdrive.Recorder, func(), error) {
	if !cfg.InfluxDB.Enabled {
		log.Info("InfluxDB disabled")
		return nil, func() {}, nil
	}

	client, err := influxdb.Connect(cfg.InfluxDB)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	if err := client.HealthCheck(ctx); err != nil {
		client.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, nil, fmt.Errorf("checking InfluxDB: %w", err)
	}
	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})
	log.Info("InfluxDB connected",
		"url", cfg.InfluxDB.URL,
		"org", cfg.InfluxDB.Org,
		"bucket", cfg.InfluxDB.Bucket,
	)

	return client, func() {
		log.Info("closing InfluxDB connection")
		if err := client.Close(); err != nil {
			log.Error("error closing InfluxDB", "error", err)
		}
	}, nil
}

func provideAuditor(db *database.DB) *audit.SQLiteRepository {
	return audit.NewSQLiteRepository(db.DB)
}

func provideDriver(
	cfg *config.Config,
	client *mqttloop.Adapter,
	store virtualdrive.Store,
	recorder virtualdrive.Recorder,
	auditor virtualdrive.Auditor,
	log *logging.Logger,
) *virtualdrive.Driver {
	return virtualdrive.New(cfg, client,
		virtualdrive.WithLogger(log),
		virtualdrive.WithStore(store),
		virtualdrive.WithRecorder(recorder),
		virtualdrive.WithAuditor(auditor),
	)
}
