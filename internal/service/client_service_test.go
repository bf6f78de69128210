package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sgbank/bank-account-api/internal/errs"
	"github.com/sgbank/bank-account-api/internal/storage/memory"
)

func TestCreateClient(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateClientRequest
		wantErr bool
	}{
		{
			name: "success - both names",
			req:  &CreateClientRequest{LastName: "Doe", FirstName: "John"},
		},
		{
			name: "success - last name only",
			req:  &CreateClientRequest{LastName: "Doe"},
		},
		{
			name: "success - first name only",
			req:  &CreateClientRequest{FirstName: "John"},
		},
		{
			name:    "validation error - both names blank",
			req:     &CreateClientRequest{},
			wantErr: true,
		},
		{
			name:    "validation error - whitespace-only names",
			req:     &CreateClientRequest{LastName: "   ", FirstName: "\t"},
			wantErr: true,
		},
		{
			name:    "validation error - nil request",
			req:     nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClientService(memory.NewClientStore())

			client, err := svc.CreateClient(context.Background(), tt.req)
			if tt.wantErr {
				var validationErr *errs.ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(client.ID, "cli-") {
				t.Errorf("expected generated client ID, got %q", client.ID)
			}
			if client.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestGetClientByID(t *testing.T) {
	store := memory.NewClientStore()
	svc := NewClientService(store)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, &CreateClientRequest{LastName: "Doe", FirstName: "John"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetClientByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastName != "Doe" || got.FirstName != "John" {
		t.Errorf("unexpected client: %+v", got)
	}

	_, err = svc.GetClientByID(ctx, "cli-missing")
	var notFoundErr *errs.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
