package service

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"sports-portal/internal/model"
	"sports-portal/internal/repository"
)

// Candidates are the people an admin may put on a team for one sport.
type Candidates struct {
	Players []model.PlayerSummary `json:"players"`
	Coaches []model.Coach         `json:"coaches"`
}

// CandidatesForSport keeps the players registered for sportID and the coaches who teach it.
func CandidatesForSport(players []model.PlayerSummary, coaches []model.Coach, sportID uuid.UUID) Candidates {
	out := Candidates{Players: []model.PlayerSummary{}, Coaches: []model.Coach{}}
	for _, p := range players {
		if p.IsPlayer && p.SportID == sportID {
			out.Players = append(out.Players, p)
		}
	}
	for _, c := range coaches {
		if slices.Contains(c.SportIDs, sportID) {
			out.Coaches = append(out.Coaches, c)
		}
	}
	return out
}

type SportService interface {
	List(ctx context.Context) ([]model.Sport, error)
	Candidates(ctx context.Context, sportID uuid.UUID) (*Candidates, error)
}

type sportService struct {
	sports  repository.SportRepository
	players repository.PlayerRepository
}

func NewSportService(sports repository.SportRepository, players repository.PlayerRepository) SportService {
	return &sportService{sports: sports, players: players}
}

func (s *sportService) List(ctx context.Context) ([]model.Sport, error) {
	return s.sports.List(ctx)
}

func (s *sportService) Candidates(ctx context.Context, sportID uuid.UUID) (*Candidates, error) {
	exists, err := s.sports.Exists(ctx, sportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSportNotFound
	}

	players, err := s.players.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	coaches, err := s.sports.ListCoaches(ctx)
	if err != nil {
		return nil, err
	}

	c := CandidatesForSport(players, coaches, sportID)
	return &c, nil
}
