package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"sports-portal/internal/model"
	"sports-portal/internal/repository"
)

type Dashboard struct {
	Player        *model.Player         `json:"player"`
	Notifications []model.Notification  `json:"notifications"`
	Certificates  []model.Certificate   `json:"certificates"`
	Team          *model.Team           `json:"team"`
	Teammates     []model.PlayerSummary `json:"teammates"`
}

type DashboardService interface {
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	players       repository.PlayerRepository
	certs         repository.CertificateRepository
	notifications repository.NotificationRepository
}

func NewDashboardService(players repository.PlayerRepository, certs repository.CertificateRepository, notifications repository.NotificationRepository) DashboardService {
	return &dashboardService{players: players, certs: certs, notifications: notifications}
}

func (s *dashboardService) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	player, err := s.players.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	d := &Dashboard{Player: player, Teammates: []model.PlayerSummary{}}

	if d.Notifications, err = s.notifications.ListPersonal(ctx, userID); err != nil {
		return nil, err
	}
	if d.Certificates, err = s.certs.ListByPlayer(ctx, player.ID); err != nil {
		return nil, err
	}
	if d.Team, err = s.players.LatestTeam(ctx, player.ID); err != nil {
		return nil, err
	}
	if d.Team != nil {
		if d.Teammates, err = s.players.Teammates(ctx, d.Team.ID, player.ID); err != nil {
			return nil, err
		}
	}

	return d, nil
}
