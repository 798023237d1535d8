package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dancepractice/practice-api/internal/models"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type userLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

type locationLookup interface {
	FindByID(ctx context.Context, id string) (*models.Location, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Location, error)
}

type sessionLookup interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
}

func loadUser(ctx context.Context, users userLookup, id, missing string) (*models.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(missing)
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	return user, nil
}

func loadLocation(ctx context.Context, locations locationLookup, id string) (*models.Location, error) {
	location, err := locations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("location not found")
		}
		return nil, appErrors.Internal(err, "failed to load location")
	}
	return location, nil
}

func loadSession(ctx context.Context, sessions sessionLookup, id string) (*models.Session, error) {
	session, err := sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("session not found")
		}
		return nil, appErrors.Internal(err, "failed to load session")
	}
	return session, nil
}

// resolveUsers loads every id or fails with missing; the result follows ids order.
func resolveUsers(ctx context.Context, users userLookup, ids []string, missing string) ([]models.User, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load users")
	}
	byID := make(map[string]models.User, len(found))
	for _, user := range found {
		byID[user.ID] = user
	}
	resolved := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, ok := byID[id]
		if !ok {
			return nil, notFound(missing)
		}
		resolved = append(resolved, user)
	}
	return resolved, nil
}

// resolveLocations loads every id or fails with missing; the result follows ids order.
func resolveLocations(ctx context.Context, locations locationLookup, ids []string, missing string) ([]models.Location, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	found, err := locations.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load locations")
	}
	byID := make(map[string]models.Location, len(found))
	for _, location := range found {
		byID[location.ID] = location
	}
	resolved := make([]models.Location, 0, len(ids))
	for _, id := range ids {
		location, ok := byID[id]
		if !ok {
			return nil, notFound(missing)
		}
		resolved = append(resolved, location)
	}
	return resolved, nil
}

// usersByID fetches whatever users exist for ids, ignoring missing ones.
func usersByID(ctx context.Context, users userLookup, ids []string) (map[string]models.User, error) {
	found, err := users.FindByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load users")
	}
	byID := make(map[string]models.User, len(found))
	for _, user := range found {
		byID[user.ID] = user
	}
	return byID, nil
}

func locationsByID(ctx context.Context, locations locationLookup, ids []string) (map[string]models.Location, error) {
	found, err := locations.FindByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load locations")
	}
	byID := make(map[string]models.Location, len(found))
	for _, location := range found {
		byID[location.ID] = location
	}
	return byID, nil
}
