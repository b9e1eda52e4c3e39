package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
)

type hostLock struct {
	mux  sync.Mutex
	refs int
}

// ServerService represents our server.Registry implementation
type ServerService struct {
	log     logger.Logger
	repo    Repo
	locksMu sync.Mutex
	locks   map[string]*hostLock
	now     func() time.Time
}

// NewService returns a new instance ServerService
func NewService(repo Repo) *ServerService {
	return &ServerService{
		log:   logger.New().Component("registry"),
		repo:  repo,
		locks: map[string]*hostLock{},
		now:   time.Now,
	}
}

// GetAllServers returns all servers from the database
func (s *ServerService) GetAllServers(ctx context.Context) ([]*Server, error) {
	servers, err := s.repo.GetAllServers(ctx)

	if err != nil {
		return nil, exception.NewRegistryError("read", "", err)
	}

	return servers, nil
}

// GetAllServersInNetworkTargets returns all servers in database that have ips
// within the provided list of network targets
func (s *ServerService) GetAllServersInNetworkTargets(ctx context.Context, targets []string) ([]*Server, error) {
	allServers, err := s.GetAllServers(ctx)

	if err != nil {
		return nil, err
	}

	result := []*Server{}

	for _, server := range allServers {
		if server.IP == nil {
			continue
		}

		for _, target := range targets {
			_, ipnet, err := net.ParseCIDR(target)

			if err != nil {
				// non CIDR target just check if target matches IP
				if *server.IP == target {
					result = append(result, server)
					break
				}

				continue
			}

			if ipnet.Contains(net.ParseIP(*server.IP)) {
				result = append(result, server)
				break
			}
		}
	}

	return result, nil
}

// GetServer returns a single server by hostname. A missing server yields
// exception.ErrRecordNotFound.
func (s *ServerService) GetServer(ctx context.Context, hostname string) (*Server, error) {
	server, err := s.repo.GetServerByHostname(ctx, hostname)

	if errors.Is(err, exception.ErrRecordNotFound) {
		return nil, err
	}

	if err != nil {
		return nil, exception.NewRegistryError("read", hostname, err)
	}

	return server, nil
}

// Upsert adds or updates a server keyed by hostname. Upserts for the same
// hostname are applied one at a time in arrival order; different hostnames
// do not wait on each other here.
func (s *ServerService) Upsert(ctx context.Context, req *Server) (*Server, error) {
	if req.Hostname == "" {
		return nil, exception.NewRegistryError(
			"upsert",
			"",
			errors.New("server hostname cannot be empty"),
		)
	}

	unlock := s.lock(req.Hostname)
	defer unlock()

	toSave := *req
	toSave.ScanTime = s.now()

	saved, err := s.repo.UpsertServer(ctx, &toSave)

	if err != nil {
		return nil, exception.NewRegistryError("upsert", req.Hostname, err)
	}

	s.log.Debug().
		Uint("id", saved.ID).
		Str("hostname", saved.Hostname).
		Str("ip", saved.IPAddress()).
		Msg("upserted server")

	return saved, nil
}

// RemoveServer removes a server from the registry by hostname
func (s *ServerService) RemoveServer(ctx context.Context, hostname string) error {
	server, err := s.GetServer(ctx, hostname)

	if errors.Is(err, exception.ErrRecordNotFound) {
		// nothing to remove
		return nil
	}

	if err != nil {
		return err
	}

	return s.repo.RemoveServer(ctx, server.ID)
}

// lock serializes callers per hostname. Entries are dropped once no caller
// holds or waits on them.
func (s *ServerService) lock(hostname string) func() {
	s.locksMu.Lock()

	l, ok := s.locks[hostname]

	if !ok {
		l = &hostLock{}
		s.locks[hostname] = l
	}

	l.refs++

	s.locksMu.Unlock()

	l.mux.Lock()

	return func() {
		l.mux.Unlock()

		s.locksMu.Lock()
		defer s.locksMu.Unlock()

		l.refs--

		if l.refs == 0 {
			delete(s.locks, hostname)
		}
	}
}
