package worker

import (
	"fmt"
	"log"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"

	"sports-portal/internal/config"
)

// NewAPNsClient returns nil when credentials are absent, which puts the worker in mock mode.
func NewAPNsClient(cfg *config.Config) (*apns2.Client, error) {
	if cfg.APNSAuthKeyPath == "" || cfg.APNSAuthKeyPath[0] == '#' || cfg.APNSKeyID == "" || cfg.APNSTeamID == "" {
		log.Println("APNs credentials not found or invalid. Worker will run in MOCK mode.")
		return nil, nil
	}

	log.Println("APNs credentials found, initializing APNs client...")
	authKey, err := token.AuthKeyFromFile(cfg.APNSAuthKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read APNs auth key: %w", err)
	}

	authToken := &token.Token{
		AuthKey: authKey,
		KeyID:   cfg.APNSKeyID,
		TeamID:  cfg.APNSTeamID,
	}

	if cfg.APNSMode == "production" {
		return apns2.NewTokenClient(authToken).Production(), nil
	}
	return apns2.NewTokenClient(authToken).Development(), nil
}
