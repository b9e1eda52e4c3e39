package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/robgonnella/backupcheck/internal/exception"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// columns overwritten when a hostname already exists
var mutableColumns = []string{
	"ip_address",
	"detected_os",
	"ports",
	"open_ports",
	"is_reachable",
	"last_scan",
	"scan_time",
}

// ServerModel is the database representation of a Server
type ServerModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Hostname    string         `gorm:"column:hostname;uniqueIndex;not null"`
	IPAddress   *string        `gorm:"column:ip_address"`
	DetectedOS  *string        `gorm:"column:detected_os"`
	Ports       datatypes.JSON `gorm:"column:ports"`
	OpenPorts   string         `gorm:"column:open_ports"`
	LastScan    time.Time      `gorm:"column:last_scan"`
	IsReachable bool           `gorm:"column:is_reachable"`
	ScanTime    time.Time      `gorm:"column:scan_time"`
}

// TableName keeps the table name used by earlier versions of the database
func (ServerModel) TableName() string {
	return "servers"
}

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new server sqlite repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// GetAllServers returns all servers from the database
func (r *SqliteRepo) GetAllServers(ctx context.Context) ([]*Server, error) {
	models := []ServerModel{}

	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	servers := make([]*Server, 0, len(models))

	for i := range models {
		s, err := modelToServer(&models[i])

		if err != nil {
			return nil, err
		}

		servers = append(servers, s)
	}

	return servers, nil
}

// GetServerByHostname returns a server from the database by hostname
func (r *SqliteRepo) GetServerByHostname(ctx context.Context, hostname string) (*Server, error) {
	model := ServerModel{}

	result := r.db.WithContext(ctx).Where("hostname = ?", hostname).First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return modelToServer(&model)
}

// UpsertServer inserts server or, when its hostname already exists,
// overwrites the existing row's mutable columns keeping its id. The write
// and the read back happen in one transaction.
func (r *SqliteRepo) UpsertServer(ctx context.Context, server *Server) (*Server, error) {
	if server.Hostname == "" {
		return nil, errors.New("server hostname cannot be empty")
	}

	model, err := serverToModel(server)

	if err != nil {
		return nil, err
	}

	saved := ServerModel{}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hostname"}},
			DoUpdates: clause.AssignmentColumns(mutableColumns),
		}).Create(model)

		if result.Error != nil {
			return result.Error
		}

		return tx.Where("hostname = ?", server.Hostname).First(&saved).Error
	})

	if err != nil {
		return nil, err
	}

	return modelToServer(&saved)
}

// RemoveServer deletes a server by id
func (r *SqliteRepo) RemoveServer(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("server id cannot be empty")
	}

	return r.db.WithContext(ctx).Delete(&ServerModel{ID: id}).Error
}

// helpers
func modelToServer(model *ServerModel) (*Server, error) {
	ports := []Port{}

	if len(model.Ports) > 0 {
		if err := json.Unmarshal([]byte(model.Ports.String()), &ports); err != nil {
			return nil, err
		}
	}

	return &Server{
		ID:        model.ID,
		Hostname:  model.Hostname,
		IP:        model.IPAddress,
		OS:        model.DetectedOS,
		Ports:     ports,
		Reachable: model.IsReachable,
		LastScan:  model.LastScan,
		ScanTime:  model.ScanTime,
	}, nil
}

func serverToModel(server *Server) (*ServerModel, error) {
	ports := server.Ports

	if ports == nil {
		ports = []Port{}
	}

	portBytes, err := json.Marshal(ports)

	if err != nil {
		return nil, err
	}

	return &ServerModel{
		Hostname:    server.Hostname,
		IPAddress:   server.IP,
		DetectedOS:  server.OS,
		Ports:       datatypes.JSON(portBytes),
		OpenPorts:   FormatPorts(ports),
		LastScan:    server.LastScan,
		IsReachable: server.Reachable,
		ScanTime:    server.ScanTime,
	}, nil
}
