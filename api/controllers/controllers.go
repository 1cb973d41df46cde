package controllers

import (
	"net/http"

	"github.com/cmbeauty/storefront-backend/api/middleware"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

// shopperID extracts the authenticated user's id seeded by the auth middleware.
func shopperID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}

// pathUUID parses a uuid route parameter.
func pathUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path")
	}
	return id, nil
}
