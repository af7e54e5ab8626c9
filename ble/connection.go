package ble

import (
	"context"
	"net"

	"github.com/go-ble/ble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	successfulConnectionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brainconnect_ble_successful_connections_total",
	})
	failedConnectionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brainconnect_ble_failed_connections_total",
	})
	disconnectsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brainconnect_ble_disconnections_total",
	})
)

func (h *Handle) Connect(ctx context.Context, addr net.HardwareAddr) (Client, error) {
	conn, err := ble.Dial(ctx, addr)

	if err != nil {
		failedConnectionsCounter.Inc()
		return nil, err
	}

	successfulConnectionsCounter.Inc()
	log.Debug().Stringer("Addr", addr).Msg("ble: successfully opened new connection to device")

	// count broken connections, whether we initiated the teardown or not.
	go func() {
		<-conn.Disconnected()

		disconnectsCounter.Inc()
		log.Debug().Stringer("Addr", addr).Msg("ble: connection with device closed")
	}()

	return conn, nil
}
