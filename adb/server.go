package adb

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kvnxiao/aim/adb/wire"
	"github.com/kvnxiao/aim/internal/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// AdbPort is the default port the adb server listens on.
	AdbPort = 5037

	// AdbExecutableName is the name of the adb binary used to spawn the
	// server when it is not running. Overridable with ADB_PATH.
	AdbExecutableName = "adb"

	defaultDialTimeout = 2 * time.Second
	probeTimeout       = 500 * time.Millisecond
	serverStartDelay   = 1 * time.Second
	serverRestartDelay = 500 * time.Millisecond
)

// Environment variables recognized by ServerConfig.fillDefaults.
const (
	EnvAdbPath       = "ADB_PATH"
	EnvAdbServerHost = "ADB_SERVER_HOST"
	EnvAdbServerPort = "ADB_SERVER_PORT"
)

// ServerConfig configures where the adb server is and how to talk to it.
// Zero values fall back to the environment and then to the defaults.
type ServerConfig struct {
	// Host of the adb server, default localhost.
	Host string
	// Port of the adb server, default 5037.
	Port int

	// Timeout applied to each socket read and write. Default 2s.
	DialTimeout time.Duration

	// PathToAdb is the adb executable used to start the server.
	PathToAdb string

	// LegacyStatusBytes makes the wire scanner accept the undocumented
	// numeric success patterns some old servers emit. Off by default.
	LegacyStatusBytes bool

	Dialer
}

// Server knows how to dial, probe and manage the lifecycle of an adb
// server process.
type server interface {
	Dial() (*wire.Conn, error)

	Start() error
	Kill() error
	Probe() bool

	Address() string
}

func (c *ServerConfig) fillDefaults() {
	if c.Host == "" {
		if h := os.Getenv(EnvAdbServerHost); h != "" {
			c.Host = h
		} else {
			c.Host = "localhost"
		}
	}
	if c.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv(EnvAdbServerPort)); err == nil && p > 0 {
			c.Port = p
		} else {
			c.Port = AdbPort
		}
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.PathToAdb == "" {
		if p := os.Getenv(EnvAdbPath); p != "" {
			c.PathToAdb = p
		} else {
			c.PathToAdb = AdbExecutableName
		}
	}
	if c.Dialer == nil {
		c.Dialer = tcpDialer{}
	}
}

type realServer struct {
	config ServerConfig

	// Caches address so it doesn't have to be resolved for every dial.
	address string
}

func newServer(config ServerConfig) (server, error) {
	config.fillDefaults()
	return &realServer{
		config:  config,
		address: fmt.Sprintf("%s:%d", resolveHost(config.Host), config.Port),
	}, nil
}

// Dial tries to connect to the server. If the first attempt fails with a
// connection error the server is started and the dial retried once.
func (s *realServer) Dial() (*wire.Conn, error) {
	conn, err := s.config.Dial(s.address, s.config.DialTimeout, s.config.LegacyStatusBytes)
	if err != nil {
		// Attempt to start the server and try again.
		if err = s.Start(); err != nil {
			return nil, errors.WrapErrf(err, "error starting server for dial")
		}

		conn, err = s.config.Dial(s.address, s.config.DialTimeout, s.config.LegacyStatusBytes)
		if err != nil {
			return nil, err
		}
	}
	return conn, nil
}

func (s *realServer) Address() string {
	return s.address
}

// Probe reports whether an adb server is accepting connections, bounded by
// a 500ms connect attempt. A refused connection is the one place a network
// failure is treated as a recoverable signal rather than an error.
func (s *realServer) Probe() bool {
	conn, err := net.DialTimeout("tcp", s.address, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

/*
Start ensures there is a server running, spawning one if the probe fails.

Corresponds to the command:

	adb start-server

The child is fully detached: its own process group, all standard streams to
null. After the fixed settle delay the probe is repeated a few times with
backoff before giving up.
*/
func (s *realServer) Start() error {
	if s.Probe() {
		return nil
	}

	log.Debugf("starting adb server on port %d", s.config.Port)
	cmd := exec.Command(s.config.PathToAdb, "-P", strconv.Itoa(s.config.Port), "start-server")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return errors.WrapErrorf(err, errors.ServerSpawnError, "error starting adb server (%s)", s.config.PathToAdb)
	}
	// The child re-execs itself as a daemon; don't wait for it, just reap.
	go cmd.Wait()

	time.Sleep(serverStartDelay)

	probe := func() error {
		if s.Probe() {
			return nil
		}
		return errors.Errorf(errors.ServerSpawnError, "adb server did not come up on %s", s.address)
	}
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(serverRestartDelay), 3)
	return backoff.Retry(probe, policy)
}

/*
Kill tells the server to quit immediately.

Corresponds to the command:

	adb kill-server

A server that is not running is not an error.
*/
func (s *realServer) Kill() error {
	if !s.Probe() {
		return nil
	}

	conn, err := s.config.Dial(s.address, s.config.DialTimeout, s.config.LegacyStatusBytes)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err = wire.SendMessageString(conn, "host:kill"); err != nil {
		return errors.WrapErrf(err, "error killing server")
	}
	// The server closes the socket without answering; a status read that
	// fails with EOF here is success.
	if _, err = conn.ReadStatus("host:kill"); err != nil && !errors.HasErrCode(err, errors.NetworkError) {
		return err
	}
	return nil
}
