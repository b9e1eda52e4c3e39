// Package freshness classifies how recently each server was backed up by
// correlating the server registry with the file inventory.
//
// A file belongs to a server when the server's lowercased hostname or ip is
// a literal substring of the file's lowercased name. A server whose hostname
// is contained in another server's hostname (web1 / web10) will match the
// other server's files too.
package freshness

import (
	"strings"
	"time"

	"github.com/robgonnella/backupcheck/internal/inventory"
	"github.com/robgonnella/backupcheck/internal/server"
)

// DefaultMaxAge the oldest a backup can be and still count as fresh
const DefaultMaxAge = 365 * 24 * time.Hour

// Verdict represents the backup freshness of a single server
type Verdict string

const (
	// Fresh newest matching backup is within the max age
	Fresh Verdict = "fresh"
	// Stale matching backups exist but the newest is older than the max age
	Stale Verdict = "stale"
	// Absent no backup file matches the server
	Absent Verdict = "absent"
)

// Color returns the traffic light colour used to display the verdict
func (v Verdict) Color() string {
	switch v {
	case Fresh:
		return "green"
	case Stale:
		return "yellow"
	default:
		return "red"
	}
}

// Classify returns the verdict for srv using the default max age
func Classify(srv *server.Server, files []*inventory.File, now time.Time) Verdict {
	verdict, _ := classify(srv, files, now, DefaultMaxAge)
	return verdict
}

// Status pairs a server with its verdict and the newest matching backup
type Status struct {
	Server  *server.Server
	Verdict Verdict
	Latest  *inventory.File
}

// Classifier classifies servers with a configurable max age
type Classifier struct {
	MaxAge time.Duration
}

// NewClassifier returns a Classifier. A non-positive maxAge means
// DefaultMaxAge.
func NewClassifier(maxAge time.Duration) *Classifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	return &Classifier{MaxAge: maxAge}
}

// Classify returns the verdict for srv
func (c *Classifier) Classify(srv *server.Server, files []*inventory.File, now time.Time) Verdict {
	verdict, _ := classify(srv, files, now, c.maxAge())
	return verdict
}

// Report classifies every server against the same file set
func (c *Classifier) Report(servers []*server.Server, files []*inventory.File, now time.Time) []*Status {
	statuses := make([]*Status, 0, len(servers))

	for _, srv := range servers {
		verdict, latest := classify(srv, files, now, c.maxAge())

		statuses = append(statuses, &Status{
			Server:  srv,
			Verdict: verdict,
			Latest:  latest,
		})
	}

	return statuses
}

func (c *Classifier) maxAge() time.Duration {
	if c == nil || c.MaxAge <= 0 {
		return DefaultMaxAge
	}

	return c.MaxAge
}

func classify(
	srv *server.Server,
	files []*inventory.File,
	now time.Time,
	maxAge time.Duration,
) (Verdict, *inventory.File) {
	ids := identifiers(srv)

	var latest *inventory.File

	for _, f := range files {
		if f == nil || !matches(ids, f.Filename) {
			continue
		}

		// first of equally new files wins
		if latest == nil || f.LastModified.After(latest.LastModified) {
			latest = f
		}
	}

	if latest == nil {
		return Absent, nil
	}

	if now.Sub(latest.LastModified) <= maxAge {
		return Fresh, latest
	}

	return Stale, latest
}

func identifiers(srv *server.Server) []string {
	if srv == nil {
		return nil
	}

	ids := []string{}

	if hostname := strings.ToLower(srv.Hostname); hostname != "" {
		ids = append(ids, hostname)
	}

	if ip := strings.ToLower(srv.IPAddress()); ip != "" {
		ids = append(ids, ip)
	}

	return ids
}

func matches(ids []string, filename string) bool {
	name := strings.ToLower(filename)

	for _, id := range ids {
		if strings.Contains(name, id) {
			return true
		}
	}

	return false
}
