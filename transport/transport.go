// Package transport implements the HTTP boundary the dispatcher posts
// events across (spec §4.5, §6.1, §6.2): event and throttling-state
// collector endpoints, Basic auth, a 5-second timeout, optional TLS with
// hot-reloadable client certificates, and the primary/backup failover
// policy. Post is exposed as an interface so the dispatcher can be
// driven by a fake in tests without touching the network.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/att-ves/vesagent/errdefs"
	"github.com/att-ves/vesagent/log"
)

// DefaultTimeout is the per-POST deadline mandated by spec §5 ("HTTP
// operations time out after 5 seconds").
const DefaultTimeout = 5 * time.Second

// EndpointConfig describes one collector target (spec §6.1's
// primary_fqdn/port/backup_fqdn/port option group).
type EndpointConfig struct {
	FQDN     string
	Port     int
	Secure   bool
	Path     string
	Topic    string
	Username string
	Password string
	SourceIP string

	CertFile   string
	KeyFile    string
	CAInfo     string
	CAPath     string
	VerifyPeer bool
	VerifyHost bool
}

// apiVersion is the event-listener API major version segment of the
// collector URL. No minor version is written, so the segment is plain
// "v5".
const apiVersion = "5"

// EventURL builds the event-listener URL per spec §6.2:
// scheme://host:port[/path]/eventListener/v<api-version>[/topic].
func (c EndpointConfig) EventURL() string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s:%d", scheme, c.FQDN, c.Port)
	if c.Path != "" {
		url += "/" + c.Path
	}
	url += "/eventListener/v" + apiVersion
	if c.Topic != "" {
		url += "/" + c.Topic
	}
	return url
}

// ThrottlingStateURL builds the priority-post target for a
// provideThrottlingState response (spec §6.2).
func (c EndpointConfig) ThrottlingStateURL() string {
	return c.EventURL() + "/clientThrottlingState"
}

// URLKind selects which of a session's two collector paths to target.
type URLKind int

const (
	EventURL URLKind = iota
	ThrottlingStateURL
)

// Poster is the transport boundary the dispatcher depends on, satisfied
// by *Collector in production and by a fake in dispatcher tests.
type Poster interface {
	Post(ctx context.Context, urlKind URLKind, body []byte) (status int, respBody []byte, err error)
}

// session is one configured HTTP client for a single collector endpoint.
type session struct {
	cfg    EndpointConfig
	client *http.Client
	tlsCfg atomic.Pointer[tls.Config]
	watch  *fsnotify.Watcher
}

func newSession(cfg EndpointConfig) (*session, error) {
	s := &session{cfg: cfg}

	transport := &http.Transport{}
	if cfg.Secure {
		tlsCfg, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errdefs.ErrHTTPLibraryFail, err)
		}
		s.tlsCfg.Store(tlsCfg)
		transport.TLSClientConfig = tlsCfg

		if cfg.CertFile != "" && cfg.KeyFile != "" {
			w, err := fsnotify.NewWatcher()
			if err == nil {
				_ = w.Add(cfg.CertFile)
				_ = w.Add(cfg.KeyFile)
				s.watch = w
				go s.watchCertReload(transport)
			} else {
				log.Logger.Warnw("failed to watch collector cert/key for reload", "error", err)
			}
		}
	}
	if cfg.SourceIP != "" {
		transport.DialContext = localAddrDialer(cfg.SourceIP)
	}

	s.client = &http.Client{Transport: transport, Timeout: DefaultTimeout}
	return s, nil
}

// watchCertReload rebuilds the client certificate whenever the watched
// cert or key file changes on disk, so a collector certificate rotation
// does not require an agent restart.
func (s *session) watchCertReload(transport *http.Transport) {
	for event := range s.watch.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		tlsCfg, err := buildTLSConfig(s.cfg)
		if err != nil {
			log.Logger.Errorw("failed to reload collector TLS material", "error", err, "path", event.Name)
			continue
		}
		s.tlsCfg.Store(tlsCfg)
		transport.TLSClientConfig = tlsCfg
		log.Logger.Infow("reloaded collector TLS material", "path", event.Name)
	}
}

func buildTLSConfig(cfg EndpointConfig) (*tls.Config, error) {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: !cfg.VerifyPeer, //nolint:gosec // operator-selected per spec §6.1 verify_peer option
	}
	if !cfg.VerifyHost {
		tlsCfg.InsecureSkipVerify = true
	}
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, err
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

func (s *session) close() {
	if s.watch != nil {
		_ = s.watch.Close()
	}
}

func (s *session) post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("building collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Expect", "")
	if s.cfg.Username != "" {
		req.SetBasicAuth(s.cfg.Username, s.cfg.Password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errdefs.ErrHTTPLibraryFail, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading collector response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// Collector is the dispatcher-owned Poster implementing the
// primary/backup failover policy (spec §4.5): a failed POST switches the
// active session to the other collector for subsequent posts, and it
// stays there until the next failure. With no backup configured it
// behaves as a single fixed endpoint.
type Collector struct {
	primary *session
	backup  *session

	active atomic.Int32 // 0 = primary, 1 = backup
}

// NewCollector constructs the dispatcher's transport from the primary
// (required) and backup (optional, pass nil to skip)
// endpoint configurations.
func NewCollector(primary EndpointConfig, backup *EndpointConfig) (*Collector, error) {
	p, err := newSession(primary)
	if err != nil {
		return nil, err
	}
	c := &Collector{primary: p}
	if backup != nil {
		b, err := newSession(*backup)
		if err != nil {
			p.close()
			return nil, err
		}
		c.backup = b
	}
	return c, nil
}

// Post sends body to the URL urlKind selects (either the event URL or
// the throttling-state URL of the currently active collector) and, on
// failure, alternates the active collector for subsequent calls (spec
// §4.5 "Primary/backup policy").
func (c *Collector) Post(ctx context.Context, urlKind URLKind, body []byte) (int, []byte, error) {
	s := c.currentSession()
	url := s.cfg.EventURL()
	if urlKind == ThrottlingStateURL {
		url = s.cfg.ThrottlingStateURL()
	}

	status, respBody, err := s.post(ctx, url, body)
	if err != nil || status < 200 || status >= 300 {
		c.failover()
		if err == nil {
			err = fmt.Errorf("%w: collector responded %d", errdefs.ErrHTTPLibraryFail, status)
		}
		return status, respBody, err
	}
	return status, respBody, nil
}

func (c *Collector) currentSession() *session {
	if c.backup == nil || c.active.Load() == 0 {
		return c.primary
	}
	return c.backup
}

func (c *Collector) failover() {
	if c.backup == nil {
		return
	}
	next := int32(1) - c.active.Load()
	c.active.Store(next)
	log.Logger.Warnw("collector POST failed, switching active collector", "active_is_backup", next == 1)
}

// Close releases any watchers held by the underlying sessions.
func (c *Collector) Close() {
	c.primary.close()
	if c.backup != nil {
		c.backup.close()
	}
}

var _ Poster = (*Collector)(nil)
