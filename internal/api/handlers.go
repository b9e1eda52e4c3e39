package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robgonnella/backupcheck/internal/config"
	"github.com/robgonnella/backupcheck/internal/core"
	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/freshness"
	"github.com/robgonnella/backupcheck/internal/inventory"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, &HealthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
	})
}

func (s *Server) listServers(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.app.ServerStatuses(r.Context())

	if err != nil {
		s.writeError(w, err)
		return
	}

	servers := make([]*ServerResponse, 0, len(statuses))

	for _, status := range statuses {
		servers = append(servers, toServerResponse(status))
	}

	if err := sortItems(r, servers, serverSortKeys); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &ServersResponse{
		Status:  statusSuccess,
		Count:   len(servers),
		Servers: servers,
	})
}

func (s *Server) removeServer(w http.ResponseWriter, r *http.Request) {
	hostname := mux.Vars(r)["hostname"]

	if err := s.app.RemoveServer(r.Context(), hostname); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &MessageResponse{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Server %s removed", hostname),
	})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.app.Files(r.Context())

	if err != nil {
		s.writeError(w, err)
		return
	}

	result := make([]*FileResponse, 0, len(files))

	for _, f := range files {
		result = append(result, toFileResponse(f))
	}

	if err := sortItems(r, result, fileSortKeys); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &FilesResponse{
		Status: statusSuccess,
		Count:  len(result),
		Files:  result,
	})
}

func (s *Server) scanServers(w http.ResponseWriter, r *http.Request) {
	report, err := s.app.DiscoverServers(r.Context())

	if err != nil {
		s.writeError(w, err)
		return
	}

	res := &ServerScanResponse{
		Status:  statusSuccess,
		RunID:   report.ID,
		Servers: len(report.Servers),
		Message: fmt.Sprintf(
			"Server scan completed successfully. Found %d servers.",
			len(report.Servers),
		),
	}

	if report.Empty() {
		res.Message = "No servers found during scan"
	}

	if len(report.FailedSubnets) > 0 {
		res.FailedSubnets = map[string]string{}

		for subnet, subnetErr := range report.FailedSubnets {
			res.FailedSubnets[subnet] = subnetErr.Error()
		}
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) scanDirectories(w http.ResponseWriter, r *http.Request) {
	report, err := s.app.ScanDirectories(r.Context())

	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &DirectoryScanResponse{
		Status:      statusSuccess,
		Files:       report.Total,
		Directories: report.Directories,
		Message: fmt.Sprintf(
			"Directory scan completed successfully. Found %d files.",
			report.Total,
		),
	})
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	conf, err := s.app.Conf()

	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, conf)
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	conf := &config.Config{}

	if err := json.NewDecoder(r.Body).Decode(conf); err != nil {
		s.writeError(w, exception.NewConfigurationError("", "invalid configuration format", err))
		return
	}

	if _, err := s.app.UpdateConfig(conf); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &MessageResponse{
		Status:  statusSuccess,
		Message: "Configuration updated successfully",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code, kind := classifyError(err)

	if code >= http.StatusInternalServerError {
		s.log.Error().Err(err).Int("code", code).Msg("request failed")
	}

	s.writeJSON(w, code, &ErrorResponse{
		Status:    statusError,
		Error:     kind,
		Message:   err.Error(),
		Timestamp: s.now(),
	})
}

// classifyError maps an application error to its http status and a short
// machine readable kind
func classifyError(err error) (int, string) {
	var sortErr *sortError

	switch {
	case errors.As(err, &sortErr):
		return http.StatusBadRequest, "bad_request"
	case exception.IsConfigurationError(err):
		return http.StatusBadRequest, "invalid_configuration"
	case exception.IsPrivilegeError(err):
		return http.StatusForbidden, "insufficient_privilege"
	case errors.Is(err, core.ErrRunInProgress):
		return http.StatusConflict, "scan_in_progress"
	case exception.IsRegistryError(err):
		return http.StatusServiceUnavailable, "registry_unavailable"
	case errors.Is(err, exception.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable, "scanner_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func toServerResponse(status *freshness.Status) *ServerResponse {
	srv := status.Server

	res := &ServerResponse{
		ID:           srv.ID,
		Hostname:     srv.Hostname,
		IPAddress:    srv.IPAddress(),
		DetectedOS:   srv.DetectedOS(),
		OpenPorts:    srv.OpenPorts(),
		Ports:        srv.Ports,
		LastScan:     srv.LastScan,
		IsReachable:  srv.Reachable,
		ScanTime:     srv.ScanTime,
		BackupStatus: status.Verdict.Color(),
		Verdict:      string(status.Verdict),
	}

	if status.Latest != nil {
		latest := status.Latest.Filepath
		res.LatestBackup = &latest
	}

	return res
}

func toFileResponse(f *inventory.File) *FileResponse {
	return &FileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		Filepath:     f.Filepath,
		LastModified: f.LastModified,
		Size:         f.Size,
		ScanTime:     f.ScanTime,
	}
}
