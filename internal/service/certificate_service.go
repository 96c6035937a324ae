package service

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"sports-portal/internal/model"
	"sports-portal/internal/preview"
	"sports-portal/internal/repository"
	"sports-portal/internal/storage"
	"sports-portal/internal/validation"
)

var documentExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}

type CertificateView struct {
	Certificate *model.Certificate `json:"certificate"`
	Preview     preview.Result     `json:"preview"`
	FileURL     string             `json:"file_url,omitempty"`
}

type CertificateService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Certificate, error)
	View(ctx context.Context, userID, certificateID uuid.UUID) (*CertificateView, error)
	Download(ctx context.Context, userID, certificateID uuid.UUID) (io.ReadCloser, string, error)
	Create(ctx context.Context, playerID uuid.UUID, title, documentKey string) (*model.Certificate, error)
	UploadURL(ctx context.Context, filename string) (*UploadTarget, error)
}

type certificateService struct {
	certs    repository.CertificateRepository
	players  repository.PlayerRepository
	store    storage.Store
	pipeline *preview.Pipeline
}

func NewCertificateService(certs repository.CertificateRepository, players repository.PlayerRepository, store storage.Store, pipeline *preview.Pipeline) CertificateService {
	return &certificateService{certs: certs, players: players, store: store, pipeline: pipeline}
}

func (s *certificateService) List(ctx context.Context, userID uuid.UUID) ([]model.Certificate, error) {
	player, err := s.players.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.certs.ListByPlayer(ctx, player.ID)
}

func (s *certificateService) owned(ctx context.Context, userID, certificateID uuid.UUID) (*model.Certificate, error) {
	cert, err := s.certs.FindOwned(ctx, certificateID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

// View returns the certificate with its preview. A certificate of another player
// is reported as not found.
func (s *certificateService) View(ctx context.Context, userID, certificateID uuid.UUID) (*CertificateView, error) {
	cert, err := s.owned(ctx, userID, certificateID)
	if err != nil {
		return nil, err
	}

	view := &CertificateView{
		Certificate: cert,
		Preview:     s.pipeline.Preview(ctx, cert.DocumentKey),
	}
	if u, err := s.store.URL(ctx, cert.DocumentKey); err == nil {
		view.FileURL = u
	}
	return view, nil
}

// Download returns the stored document and its file name. The caller closes the reader.
func (s *certificateService) Download(ctx context.Context, userID, certificateID uuid.UUID) (io.ReadCloser, string, error) {
	cert, err := s.owned(ctx, userID, certificateID)
	if err != nil {
		return nil, "", err
	}

	rc, err := s.store.Open(ctx, cert.DocumentKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrCertificateNotFound
		}
		return nil, "", err
	}
	return rc, path.Base(cert.DocumentKey), nil
}

func (s *certificateService) Create(ctx context.Context, playerID uuid.UUID, title, documentKey string) (*model.Certificate, error) {
	var errs validation.Errors
	title = cleanText(title)
	if title == "" {
		errs.Add(&validation.MissingFieldError{Field: "title"})
	}
	if documentKey == "" {
		errs.Add(&validation.MissingFieldError{Field: "document_key"})
	} else if !documentExtensions[strings.ToLower(path.Ext(documentKey))] {
		errs.Add(&validation.FormatError{Field: "document_key", Expected: "a .pdf, .jpg, .jpeg or .png file"})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	cert, err := s.certs.Create(ctx, &model.Certificate{PlayerID: playerID, Title: title, DocumentKey: documentKey})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (s *certificateService) UploadURL(ctx context.Context, filename string) (*UploadTarget, error) {
	if !documentExtensions[strings.ToLower(path.Ext(filename))] {
		return nil, validation.Errors{&validation.FormatError{Field: "filename", Expected: "a .pdf, .jpg, .jpeg or .png file"}}
	}

	key := storage.NewKey("certificates", filename)
	url, err := s.store.UploadURL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &UploadTarget{UploadURL: url, Key: key}, nil
}
