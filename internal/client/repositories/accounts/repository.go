// Package accounts is the domain-facing authentication repository.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/eatsbalance/internal/client/client"
	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
)

type Repository interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
}

type RemoteRepository struct {
	client client.Client
}

var _ Repository = (*RemoteRepository)(nil)

func NewRemoteRepository(c client.Client) *RemoteRepository {
	return &RemoteRepository{client: c}
}

func (r *RemoteRepository) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return r.client.Login(ctx, creds)
}

func (r *RemoteRepository) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return r.client.Register(ctx, creds)
}
